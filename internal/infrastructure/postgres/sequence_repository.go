package postgres

import (
	"context"
	"fmt"

	"github.com/kynshop/storefront-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de SKU por prefijo sobre PostgreSQL.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next asigna el siguiente número del prefijo en una sola sentencia atómica:
// el upsert-increment con RETURNING garantiza que dos llamadas concurrentes
// sobre el mismo prefijo nunca reciben el mismo número, sin locking en la
// aplicación. La primera llamada de un prefijo devuelve 1.
func (r *SequenceRepo) Next(prefix string) (int, error) {
	query := `
		INSERT INTO sku_sequences (prefix, last_number, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (prefix) DO UPDATE
		SET last_number = sku_sequences.last_number + 1, updated_at = now()
		RETURNING last_number`
	var n int
	if err := r.q.QueryRow(context.Background(), query, prefix).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sku number: %w", err)
	}
	return n, nil
}
