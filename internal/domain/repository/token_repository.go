package repository

import (
	"time"

	"github.com/kynshop/storefront-api/internal/domain/entity"
)

// TokenRepository define el puerto de persistencia para VerificationToken.
type TokenRepository interface {
	Create(token *entity.VerificationToken) error
	// FindByTokenHash busca un token no consumido por propósito y hash.
	FindByTokenHash(purpose, tokenHash string) (*entity.VerificationToken, error)
	// FindLatestByDestination busca el token activo más reciente para un
	// destino (flujos por código corto, donde el cliente no conoce el token).
	FindLatestByDestination(purpose, destination string) (*entity.VerificationToken, error)
	IncrementAttempts(id string) error
	// BindUser asocia un usuario a un token emitido sin usuario
	// (login por Telegram: el usuario se conoce recién al confirmar).
	BindUser(id, userID string) error
	// Consume marca el token como usado. Devuelve domain.ErrTokenInvalid si ya
	// estaba consumido (garantiza un solo uso incluso bajo concurrencia).
	Consume(id string, at time.Time) error
	Delete(id string) error
	DeleteExpired(before time.Time) (int, error)
}
