package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/token"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// Estados del login por Telegram expuestos por Status.
const (
	TelegramPending   = "pending"
	TelegramConfirmed = "confirmed"
	TelegramExpired   = "expired"
)

// WidgetVerifier valida la autenticidad del payload del widget de Telegram
// (HMAC-SHA256 sobre el data-check-string, clave SHA256(botToken)).
type WidgetVerifier interface {
	Verify(in dto.TelegramWidgetRequest) error
}

// Notifier envía mensajes por el bot (confirmación de inicio de sesión).
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramLoginUseCase login por Telegram en tres pasos:
// init emite el token, confirm lo liga al usuario autenticado por el widget,
// status lo consume y entrega la sesión.
type TelegramLoginUseCase struct {
	users     repository.UserRepository
	lifecycle *token.Lifecycle
	auth      *AuthUseCase
	verifier  WidgetVerifier
	notifier  Notifier
}

// NewTelegramLoginUseCase construye el caso de uso. notifier puede ser nil
// (sin bot configurado no se envía confirmación).
func NewTelegramLoginUseCase(users repository.UserRepository, lifecycle *token.Lifecycle, auth *AuthUseCase, verifier WidgetVerifier, notifier Notifier) *TelegramLoginUseCase {
	return &TelegramLoginUseCase{users: users, lifecycle: lifecycle, auth: auth, verifier: verifier, notifier: notifier}
}

// Init emite un token de login; el cliente lo embebe en el deep-link del bot
// y consulta Status hasta la confirmación.
func (uc *TelegramLoginUseCase) Init(ctx context.Context) (*dto.TelegramInitResponse, error) {
	issued, err := uc.lifecycle.Issue(ctx, entity.PurposeTelegramLogin, "", "")
	if err != nil {
		return nil, err
	}
	return &dto.TelegramInitResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt}, nil
}

// Confirm liga el token al usuario del payload del widget. Crea el usuario
// en el primer login por Telegram.
func (uc *TelegramLoginUseCase) Confirm(ctx context.Context, tokenPlain string, widget dto.TelegramWidgetRequest) error {
	if err := uc.verifier.Verify(widget); err != nil {
		return domain.ErrUnauthorized
	}
	rec, err := uc.lifecycle.VerifyToken(entity.PurposeTelegramLogin, tokenPlain)
	if err != nil {
		return err
	}
	if rec.UserID != "" {
		return domain.ErrConflict // ya confirmado
	}

	user, err := uc.users.FindByTelegramID(widget.ID)
	if err != nil {
		return err
	}
	if user == nil {
		now := time.Now()
		name := widget.FirstName
		if widget.Username != "" {
			name = widget.Username
		}
		user = &entity.User{
			ID: uuid.New().String(),
			// Email sintético: el esquema exige unicidad y estos usuarios
			// no tienen email real hasta que lo agreguen en su perfil.
			Email:      fmt.Sprintf("tg%d@telegram.local", widget.ID),
			Name:       name,
			Role:       entity.RoleCliente,
			TelegramID: widget.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.users.Create(user); err != nil {
			return err
		}
	}
	if err := uc.lifecycle.Bind(rec.ID, user.ID); err != nil {
		return err
	}
	if uc.notifier != nil {
		if err := uc.notifier.SendMessage(ctx, widget.ID, "Inicio de sesión confirmado. Ya puedes volver a la tienda."); err != nil {
			// La confirmación ya quedó; el mensaje es cortesía.
			return nil
		}
	}
	return nil
}

// Status consulta el estado del token. Al encontrarlo confirmado lo consume
// (un solo uso) y devuelve la sesión.
func (uc *TelegramLoginUseCase) Status(tokenPlain string) (*dto.TelegramStatusResponse, error) {
	rec, err := uc.lifecycle.VerifyToken(entity.PurposeTelegramLogin, tokenPlain)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return &dto.TelegramStatusResponse{Status: TelegramExpired}, nil
		}
		return nil, err
	}
	if rec.UserID == "" {
		return &dto.TelegramStatusResponse{Status: TelegramPending}, nil
	}
	if err := uc.lifecycle.Consume(rec.ID); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(rec.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	session, err := uc.auth.sessionFor(user)
	if err != nil {
		return nil, err
	}
	return &dto.TelegramStatusResponse{Status: TelegramConfirmed, Session: session}, nil
}
