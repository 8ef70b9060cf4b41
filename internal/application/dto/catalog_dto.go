package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategoryRequest alta de categoría. Code es el namespace corto de SKU.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// UpdateCategoryRequest campos opcionales; Code solo es modificable si la
// categoría no tiene productos.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CreateProductRequest alta de producto; el SKU se asigna en el servidor.
type CreateProductRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

// UpdateProductRequest campos opcionales de actualización (el SKU nunca cambia).
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ── Variantes y tallas ────────────────────────────────────────────────────────

// CreateVariantRequest alta de variante; el SKU -V<N> se deriva en el servidor.
type CreateVariantRequest struct {
	Color        string `json:"color"`
	MoySkladHref string `json:"moysklad_href"`
	MoySkladType string `json:"moysklad_type"`
}

// VariantResponse representación HTTP de una variante.
type VariantResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	SKU          string    `json:"sku"`
	Color        string    `json:"color"`
	MoySkladHref string    `json:"moysklad_href,omitempty"`
	MoySkladType string    `json:"moysklad_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSizeRequest alta de talla; el SKU -S<TALLA> se deriva en el servidor.
type CreateSizeRequest struct {
	Size         string          `json:"size"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	OldPrice     decimal.Decimal `json:"old_price"`
	MoySkladHref string          `json:"moysklad_href"`
	MoySkladType string          `json:"moysklad_type"`
}

// SizeResponse representación HTTP de una talla/unidad de inventario.
type SizeResponse struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	SKU          string          `json:"sku"`
	Size         string          `json:"size"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	OldPrice     decimal.Decimal `json:"old_price"`
	MoySkladHref string          `json:"moysklad_href,omitempty"`
	MoySkladType string          `json:"moysklad_type,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
