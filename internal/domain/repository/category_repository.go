package repository

import "github.com/kynshop/storefront-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// HasProducts indica si algún producto referencia la categoría
	// (el código pasa a ser inmutable y la categoría no se puede borrar).
	HasProducts(id string) (bool, error)
}
