package repository

import "github.com/kynshop/storefront-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	List(categoryID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

// VariantRepository define el puerto de persistencia para Variant.
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	ListByProduct(productID string) ([]*entity.Variant, error)
	// CountByProduct cuenta las variantes existentes del producto
	// (determina el sufijo V<N> del próximo SKU de variante).
	CountByProduct(productID string) (int, error)
	Update(variant *entity.Variant) error
	Delete(id string) error
}

// SizeRepository define el puerto de persistencia para ProductSize.
type SizeRepository interface {
	Create(size *entity.ProductSize) error
	GetByID(id string) (*entity.ProductSize, error)
	ListByVariant(variantID string) ([]*entity.ProductSize, error)
	Update(size *entity.ProductSize) error
	Delete(id string) error
}
