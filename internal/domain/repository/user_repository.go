package repository

import "github.com/kynshop/storefront-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindByTelegramID(telegramID int64) (*entity.User, error)
	Update(user *entity.User) error
	// UpdatePasswordHash cambia solo el hash (flujo de password reset, dentro de tx).
	UpdatePasswordHash(userID, hash string) error
}
