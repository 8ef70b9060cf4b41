package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/internal/domain/sku"
	"github.com/kynshop/storefront-api/pkg/slug"
)

// ProductUseCase altas y CRUD de productos, variantes y tallas.
// La asignación de SKU pasa por el contador atómico por prefijo: la secuencia
// y el insert del producto van en la misma transacción, así un insert fallido
// no deja huecos visibles aunque el número consumido nunca se reutilice.
type ProductUseCase struct {
	tx         TxRunner
	categories repository.CategoryRepository
	products   repository.ProductRepository
	variants   repository.VariantRepository
	sizes      repository.SizeRepository
	org        string
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso. org es el prefijo de
// organización de los SKU (ej. "KYN").
func NewProductUseCase(
	tx TxRunner,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	variants repository.VariantRepository,
	sizes repository.SizeRepository,
	org string,
) *ProductUseCase {
	return &ProductUseCase{
		tx:         tx,
		categories: categories,
		products:   products,
		variants:   variants,
		sizes:      sizes,
		org:        org,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests del prefijo MMYY).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// Create crea un producto asignando el siguiente SKU del prefijo
// <ORG>-<CATCODE>-<MMYY>. Una categoría inexistente o sin código es fatal:
// sin prefijo no se puede emitir SKU.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	prefix, err := sku.Prefix(uc.org, cat.Code, uc.now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Published:   in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunCatalog(ctx, func(
		products repository.ProductRepository,
		_ repository.VariantRepository,
		_ repository.SizeRepository,
		sequences repository.SequenceRepository,
	) error {
		n, err := sequences.Next(prefix)
		if err != nil {
			return err
		}
		composed, err := sku.Compose(prefix, n)
		if err != nil {
			return err
		}
		product.SKU = composed
		return products.Create(product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// GetBySlug obtiene un producto por slug (vitrina pública).
func (uc *ProductUseCase) GetBySlug(s string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(categoryID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto (el SKU nunca cambia).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
		p.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	p.UpdatedAt = uc.now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto. El contador de su prefijo no se toca: los
// números asignados no se reutilizan.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.products.Delete(id)
}

// ── Variantes ─────────────────────────────────────────────────────────────────

// CreateVariant crea una variante con SKU <parentSKU>-V<N>. El conteo de
// variantes y el insert van en la misma transacción para que dos altas
// concurrentes no deriven el mismo sufijo.
func (uc *ProductUseCase) CreateVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	p, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.MoySkladType != "" && in.MoySkladType != entity.AssortmentProduct && in.MoySkladType != entity.AssortmentVariant {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	variant := &entity.Variant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Color:        in.Color,
		MoySkladHref: in.MoySkladHref,
		MoySkladType: in.MoySkladType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunCatalog(ctx, func(
		_ repository.ProductRepository,
		variants repository.VariantRepository,
		_ repository.SizeRepository,
		_ repository.SequenceRepository,
	) error {
		count, err := variants.CountByProduct(productID)
		if err != nil {
			return err
		}
		vsku, err := sku.VariantSKU(p.SKU, count)
		if err != nil {
			return err
		}
		variant.SKU = vsku
		return variants.Create(variant)
	})
	if err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

// ListVariants lista las variantes de un producto.
func (uc *ProductUseCase) ListVariants(productID string) ([]dto.VariantResponse, error) {
	list, err := uc.variants.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVariantResponse(v))
	}
	return items, nil
}

// ── Tallas ────────────────────────────────────────────────────────────────────

// CreateSize crea una talla con SKU <variantSKU>-S<TALLA>. Una talla vacía es
// error de validación, nunca un SKU malformado.
func (uc *ProductUseCase) CreateSize(variantID string, in dto.CreateSizeRequest) (*dto.SizeResponse, error) {
	v, err := uc.variants.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	ssku, err := sku.SizeSKU(v.SKU, in.Size)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.Price.IsNegative() || in.OldPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MoySkladType != "" && in.MoySkladType != entity.AssortmentProduct && in.MoySkladType != entity.AssortmentVariant {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	size := &entity.ProductSize{
		ID:           uuid.New().String(),
		VariantID:    variantID,
		SKU:          ssku,
		Size:         in.Size,
		Stock:        in.Stock,
		Price:        in.Price,
		OldPrice:     in.OldPrice,
		MoySkladHref: in.MoySkladHref,
		MoySkladType: in.MoySkladType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if size.OldPrice.IsZero() {
		size.OldPrice = decimal.Zero
	}
	if err := uc.sizes.Create(size); err != nil {
		return nil, err
	}
	return toSizeResponse(size), nil
}

// ListSizes lista las tallas de una variante.
func (uc *ProductUseCase) ListSizes(variantID string) ([]dto.SizeResponse, error) {
	list, err := uc.sizes.ListByVariant(variantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SizeResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSizeResponse(s))
	}
	return items, nil
}

// ── mapeos ────────────────────────────────────────────────────────────────────

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		SKU:          v.SKU,
		Color:        v.Color,
		MoySkladHref: v.MoySkladHref,
		MoySkladType: v.MoySkladType,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toSizeResponse(s *entity.ProductSize) *dto.SizeResponse {
	return &dto.SizeResponse{
		ID:           s.ID,
		VariantID:    s.VariantID,
		SKU:          s.SKU,
		Size:         s.Size,
		Stock:        s.Stock,
		Price:        s.Price,
		OldPrice:     s.OldPrice,
		MoySkladHref: s.MoySkladHref,
		MoySkladType: s.MoySkladType,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
