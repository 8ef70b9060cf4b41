package auth

import (
	"context"

	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// TxRunner puerto de transacciones de auth: usuarios y tokens en una misma
// transacción (reseteo de password: actualizar hash + consumir token).
type TxRunner interface {
	RunAuth(ctx context.Context, fn func(
		users repository.UserRepository,
		tokens repository.TokenRepository,
	) error) error
}
