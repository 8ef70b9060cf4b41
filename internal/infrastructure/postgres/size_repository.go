package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

var _ repository.SizeRepository = (*SizeRepo)(nil)

// SizeRepo implementación del puerto SizeRepository sobre PostgreSQL.
type SizeRepo struct {
	q Querier
}

// NewSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSizeRepository(q Querier) *SizeRepo {
	return &SizeRepo{q: q}
}

// Create persiste una nueva talla.
func (r *SizeRepo) Create(size *entity.ProductSize) error {
	query := `
		INSERT INTO product_sizes (id, variant_id, sku, size, stock, price, old_price, moysklad_href, moysklad_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		size.ID, size.VariantID, size.SKU, size.Size, size.Stock, size.Price, size.OldPrice,
		size.MoySkladHref, size.MoySkladType, size.CreatedAt, size.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert size: %w", err)
	}
	return nil
}

// GetByID obtiene una talla por ID.
func (r *SizeRepo) GetByID(id string) (*entity.ProductSize, error) {
	query := `
		SELECT id, variant_id, sku, size, stock, price, old_price, moysklad_href, moysklad_type, created_at, updated_at
		FROM product_sizes WHERE id = $1`
	var s entity.ProductSize
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.VariantID, &s.SKU, &s.Size, &s.Stock, &s.Price, &s.OldPrice,
		&s.MoySkladHref, &s.MoySkladType, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

// ListByVariant lista las tallas de una variante.
func (r *SizeRepo) ListByVariant(variantID string) ([]*entity.ProductSize, error) {
	query := `
		SELECT id, variant_id, sku, size, stock, price, old_price, moysklad_href, moysklad_type, created_at, updated_at
		FROM product_sizes WHERE variant_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductSize
	for rows.Next() {
		var s entity.ProductSize
		if err := rows.Scan(&s.ID, &s.VariantID, &s.SKU, &s.Size, &s.Stock, &s.Price, &s.OldPrice,
			&s.MoySkladHref, &s.MoySkladType, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza stock, precios y vínculo externo de una talla.
func (r *SizeRepo) Update(size *entity.ProductSize) error {
	query := `
		UPDATE product_sizes SET stock = $2, price = $3, old_price = $4, moysklad_href = $5, moysklad_type = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		size.ID, size.Stock, size.Price, size.OldPrice, size.MoySkladHref, size.MoySkladType, size.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update size: %w", err)
	}
	return nil
}

// Delete elimina una talla por ID.
func (r *SizeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete size: %w", err)
	}
	return nil
}
