package entity

import "time"

// Category categoría del catálogo. Code es el espacio de nombres corto para
// los prefijos de SKU (ej. "kp2"); es inmutable una vez que hay productos
// que referencian la categoría.
type Category struct {
	ID        string
	Name      string
	Code      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
