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

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una nueva variante.
func (r *VariantRepo) Create(variant *entity.Variant) error {
	query := `
		INSERT INTO variants (id, product_id, sku, color, moysklad_href, moysklad_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.SKU, variant.Color,
		variant.MoySkladHref, variant.MoySkladType, variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `
		SELECT id, product_id, sku, color, moysklad_href, moysklad_type, created_at, updated_at
		FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Color, &v.MoySkladHref, &v.MoySkladType, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListByProduct lista las variantes de un producto en orden de creación
// (el orden define el sufijo V<N> de cada una).
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	query := `
		SELECT id, product_id, sku, color, moysklad_href, moysklad_type, created_at, updated_at
		FROM variants WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Color, &v.MoySkladHref,
			&v.MoySkladType, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// CountByProduct cuenta las variantes existentes del producto.
func (r *VariantRepo) CountByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM variants WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count variants: %w", err)
	}
	return n, nil
}

// Update actualiza una variante existente (color y vínculo externo; el SKU no cambia).
func (r *VariantRepo) Update(variant *entity.Variant) error {
	query := `
		UPDATE variants SET color = $2, moysklad_href = $3, moysklad_type = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.Color, variant.MoySkladHref, variant.MoySkladType, variant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// Delete elimina una variante por ID.
func (r *VariantRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}
