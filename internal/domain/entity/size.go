package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSize unidad de inventario con talla: stock y precios de una variante.
// SKU = <variantSKU>-S<TALLA>. El href de MoySklad direcciona los empujes de
// stock/precio hacia el sistema externo.
type ProductSize struct {
	ID           string
	VariantID    string
	SKU          string
	Size         string // token original (ej. "one_size", "m")
	Stock        int
	Price        decimal.Decimal
	OldPrice     decimal.Decimal // cero si no hay precio tachado
	MoySkladHref string
	MoySkladType string // AssortmentProduct | AssortmentVariant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Linked indica si la unidad tiene referencia en el sistema externo.
func (s *ProductSize) Linked() bool {
	return s.MoySkladHref != "" && s.MoySkladType != ""
}
