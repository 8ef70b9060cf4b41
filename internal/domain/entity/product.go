package entity

import "time"

// Product producto del catálogo. El SKU se asigna al crear
// (secuencia atómica por prefijo de categoría+mes) y no cambia después.
type Product struct {
	ID          string
	CategoryID  string
	SKU         string
	Name        string
	Slug        string
	Description string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
