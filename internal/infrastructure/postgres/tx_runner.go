package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/catalog"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// Ensure TxRunner implements catalog.TxRunner and auth.TxRunner.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCatalog inicia una transacción con los repos de catálogo atados a la tx
// y hace Commit o Rollback. La asignación de SKU (contador + insert) y los
// lotes de variantes corren por acá.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	products repository.ProductRepository,
	variants repository.VariantRepository,
	sizes repository.SizeRepository,
	sequences repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProductRepository(tx),
		NewVariantRepository(tx),
		NewSizeRepository(tx),
		NewSequenceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAuth inicia una transacción con repos de usuarios y tokens (consumo de
// token y efecto asociado en el mismo commit: verificación de email, reset).
func (r *TxRunner) RunAuth(ctx context.Context, fn func(
	users repository.UserRepository,
	tokens repository.TokenRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewTokenRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
