package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/token"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login y verificación de email. Los flujos con token
// (verificación, reseteo, Telegram) pasan por el ciclo de vida unificado.
type AuthUseCase struct {
	users     repository.UserRepository
	lifecycle *token.Lifecycle
	tx        TxRunner
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, lifecycle *token.Lifecycle, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, lifecycle: lifecycle, tx: tx, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt, persiste y emite el
// código de verificación por email. Devuelve ErrEmailAlreadyExists si el
// email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleCliente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	if _, err := uc.lifecycle.Issue(ctx, entity.PurposeEmailVerify, user.ID, email); err != nil {
		// El alta ya quedó; el código se puede reenviar después.
		return toUserResponse(user), nil
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera el token de sesión y lo retorna.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.sessionFor(user)
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// VerifyEmail confirma el código de 6 dígitos: consumir el token y marcar el
// email como verificado van en la misma transacción.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, in dto.VerifyEmailRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	rec, err := uc.lifecycle.VerifyCode(entity.PurposeEmailVerify, email, in.Code)
	if err != nil {
		return err
	}
	return uc.tx.RunAuth(ctx, func(users repository.UserRepository, tokens repository.TokenRepository) error {
		if err := tokens.Consume(rec.ID, time.Now()); err != nil {
			return err
		}
		user, err := users.GetByID(rec.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		user.EmailVerified = true
		user.UpdatedAt = time.Now()
		return users.Update(user)
	})
}

// ResendVerification reemite el código de verificación.
func (uc *AuthUseCase) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil || user.EmailVerified {
		// No revelar si el email existe
		return nil
	}
	_, err = uc.lifecycle.Issue(ctx, entity.PurposeEmailVerify, user.ID, email)
	return err
}

func (uc *AuthUseCase) sessionFor(user *entity.User) (*dto.LoginResponse, error) {
	tok, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: tok, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		TelegramID:    u.TelegramID,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
