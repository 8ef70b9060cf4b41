package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/token"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: map[string]*entity.User{}} }

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByTelegramID(id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.TelegramID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(userID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = hash
	}
	return nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.VerificationToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entity.VerificationToken{}}
}

func (r *memTokenRepo) Create(t *entity.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *memTokenRepo) FindByTokenHash(purpose, hash string) (*entity.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Purpose == purpose && t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepo) FindLatestByDestination(purpose, destination string) (*entity.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.VerificationToken
	for _, t := range r.tokens {
		if t.Purpose == purpose && t.Destination == destination {
			if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
				latest = t
			}
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *memTokenRepo) IncrementAttempts(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		t.Attempts++
	}
	return nil
}

func (r *memTokenRepo) BindUser(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		t.UserID = userID
	}
	return nil
}

func (r *memTokenRepo) Consume(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.UsedAt != nil {
		return domain.ErrTokenInvalid
	}
	t.UsedAt = &at
	return nil
}

func (r *memTokenRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *memTokenRepo) DeleteExpired(before time.Time) (int, error) { return 0, nil }

// memTxRunner no-op: pasa los mismos repos (suficiente para la semántica).
type memTxRunner struct {
	users  *memUserRepo
	tokens *memTokenRepo
}

func (t *memTxRunner) RunAuth(_ context.Context, fn func(repository.UserRepository, repository.TokenRepository) error) error {
	return fn(t.users, t.tokens)
}

// captureChannel guarda la última entrega.
type captureChannel struct {
	mu   sync.Mutex
	last *token.Issued
}

func (c *captureChannel) Send(_ context.Context, _ string, issued token.Issued) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := issued
	c.last = &cp
	return nil
}

func buildAuth(t *testing.T) (*auth.AuthUseCase, *memUserRepo, *captureChannel, *token.Lifecycle) {
	t.Helper()
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	ch := &captureChannel{}
	lc := token.NewLifecycle(tokens, map[string]token.Channel{
		entity.PurposeEmailVerify:   ch,
		entity.PurposePasswordReset: ch,
	}, nil)
	tx := &memTxRunner{users: users, tokens: tokens}
	uc := auth.NewAuthUseCase(users, lc, tx, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "test",
	})
	return uc, users, ch, lc
}

func registerUser(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{Email: email, Password: password, Name: "Ana"})
	require.NoError(t, err)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y login
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Login(t *testing.T) {
	uc, _, ch, _ := buildAuth(t)
	registerUser(t, uc, "ana@example.com", "password123")
	require.NotNil(t, ch.last, "el registro debe emitir código de verificación")

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleCliente, out.User.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _, _ := buildAuth(t)
	registerUser(t, uc, "ana@example.com", "password123")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "Ana@Example.com", Password: "otropass123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "el email se normaliza a minúsculas")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, _, _ := buildAuth(t)
	registerUser(t, uc, "ana@example.com", "password123")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyEmail_MarcaVerificado(t *testing.T) {
	uc, users, ch, _ := buildAuth(t)
	u := registerUser(t, uc, "ana@example.com", "password123")

	err := uc.VerifyEmail(context.Background(), dto.VerifyEmailRequest{Email: "ana@example.com", Code: ch.last.Code})
	require.NoError(t, err)

	stored, err := users.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)
}

// ──────────────────────────────────────────────────────────────────────────────
// Password reset (propiedades de la sección de tokens)
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_Completo(t *testing.T) {
	uc, users, ch, _ := buildAuth(t)
	u := registerUser(t, uc, "ana@example.com", "password123")

	require.NoError(t, uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@example.com"}))
	require.NotNil(t, ch.last)

	err := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{
		Token:       ch.last.Token,
		NewPassword: "nuevopass456",
	})
	require.NoError(t, err)

	stored, err := users.GetByID(u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nuevopass456")),
		"el hash debe corresponder al password nuevo")

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	assert.Error(t, err, "el password anterior ya no sirve")
}

// TestPasswordReset_UnSoloUso el segundo intento de confirmación con el mismo
// token debe fallar con token inválido.
func TestPasswordReset_UnSoloUso(t *testing.T) {
	uc, _, ch, _ := buildAuth(t)
	registerUser(t, uc, "ana@example.com", "password123")
	require.NoError(t, uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@example.com"}))

	first := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{Token: ch.last.Token, NewPassword: "nuevopass456"})
	require.NoError(t, first)

	second := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{Token: ch.last.Token, NewPassword: "otropass789"})
	assert.ErrorIs(t, second, domain.ErrTokenInvalid, "un token consumido no puede reutilizarse")
}

// TestPasswordReset_ExpiradoRechazado un token vencido se rechaza aunque sea
// válido en todo lo demás.
func TestPasswordReset_ExpiradoRechazado(t *testing.T) {
	uc, _, ch, lc := buildAuth(t)
	registerUser(t, uc, "ana@example.com", "password123")
	require.NoError(t, uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@example.com"}))

	lc.WithClock(func() time.Time { return time.Now().Add(31 * time.Minute) })

	err := uc.ConfirmPasswordReset(context.Background(), dto.PasswordResetConfirm{Token: ch.last.Token, NewPassword: "nuevopass456"})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestPasswordReset_EmailInexistenteNoRevela(t *testing.T) {
	uc, _, ch, _ := buildAuth(t)
	err := uc.RequestPasswordReset(context.Background(), dto.PasswordResetRequest{Email: "nadie@example.com"})
	assert.NoError(t, err, "no se revela si el email existe")
	assert.Nil(t, ch.last, "no se entrega nada")
}
