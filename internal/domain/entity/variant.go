package entity

import "time"

// Tipos de ensamble en la ontología de MoySklad.
const (
	AssortmentProduct = "product" // producto simple
	AssortmentVariant = "variant" // modificación (variante)
)

// Variant variante de un producto (ej. por color). SKU = <parentSKU>-V<N>.
// MoySkladHref/MoySkladType referencian el ensamble en el sistema externo;
// vacíos si la variante aún no está vinculada.
type Variant struct {
	ID           string
	ProductID    string
	SKU          string
	Color        string
	MoySkladHref string
	MoySkladType string // AssortmentProduct | AssortmentVariant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
