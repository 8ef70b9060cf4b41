package catalog

import (
	"context"

	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// TxRunner puerto de transacciones del catálogo: ejecuta fn con repos atados
// a una misma transacción y hace Commit/Rollback.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.ProductRepository,
		variants repository.VariantRepository,
		sizes repository.SizeRepository,
		sequences repository.SequenceRepository,
	) error) error
}
