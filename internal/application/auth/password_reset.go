package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// RequestPasswordReset emite el token de reseteo y lo envía por magic link.
// Un email inexistente no se revela: la respuesta es idéntica.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, in dto.PasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	_, err = uc.lifecycle.Issue(ctx, entity.PurposePasswordReset, user.ID, email)
	return err
}

// ConfirmPasswordReset valida el token y, en una sola transacción, actualiza
// el hash y consume el token. Un token expirado siempre se rechaza; un
// segundo intento con el mismo token falla con ErrTokenInvalid (un solo uso).
func (uc *AuthUseCase) ConfirmPasswordReset(ctx context.Context, in dto.PasswordResetConfirm) error {
	if len(in.NewPassword) < 8 {
		return domain.ErrInvalidInput
	}
	rec, err := uc.lifecycle.VerifyToken(entity.PurposePasswordReset, in.Token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.tx.RunAuth(ctx, func(users repository.UserRepository, tokens repository.TokenRepository) error {
		// Consumir primero: si el token ya fue usado en paralelo, el update
		// del hash no debe aplicarse.
		if err := tokens.Consume(rec.ID, time.Now()); err != nil {
			return err
		}
		return users.UpdatePasswordHash(rec.UserID, string(hash))
	})
}
