// Package token implementa el ciclo de vida unificado de tokens de
// verificación: emitido -> verificado | expirado | intentos agotados.
// Los flujos por email (código y magic link) y por Telegram comparten esta
// máquina; solo cambia el canal de entrega.
package token

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// Issued valores planos de un token recién emitido. Solo viven en memoria y
// en el canal de entrega; en la DB quedan únicamente los hashes.
type Issued struct {
	ID        string
	Purpose   string
	Token     string
	Code      string // vacío si la política no usa código corto
	ExpiresAt time.Time
}

// Channel puerto de entrega de un token (email, Telegram, ...).
type Channel interface {
	Send(ctx context.Context, destination string, issued Issued) error
}

// Policy parámetros por propósito.
type Policy struct {
	TTL         time.Duration
	MaxAttempts int  // 0 = sin límite de intentos
	WithCode    bool // además del token opaco se emite un código de 6 dígitos
}

// DefaultPolicies políticas de los tres flujos de la tienda.
func DefaultPolicies() map[string]Policy {
	return map[string]Policy{
		entity.PurposeEmailVerify:   {TTL: 15 * time.Minute, MaxAttempts: 5, WithCode: true},
		entity.PurposePasswordReset: {TTL: 30 * time.Minute, MaxAttempts: 0, WithCode: false},
		entity.PurposeTelegramLogin: {TTL: 5 * time.Minute, MaxAttempts: 0, WithCode: false},
	}
}

// Lifecycle emite, verifica y consume tokens de verificación.
type Lifecycle struct {
	repo     repository.TokenRepository
	channels map[string]Channel
	policies map[string]Policy
	now      func() time.Time
}

// NewLifecycle construye el componente. channels mapea propósito -> canal;
// un propósito sin canal se puede emitir pero no entregar (útil en tests).
func NewLifecycle(repo repository.TokenRepository, channels map[string]Channel, policies map[string]Policy) *Lifecycle {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Lifecycle{
		repo:     repo,
		channels: channels,
		policies: policies,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests de expiración).
func (l *Lifecycle) WithClock(now func() time.Time) *Lifecycle {
	l.now = now
	return l
}

// Issue emite un token para purpose y lo entrega por el canal del propósito.
// destination es el email o el chat id según el canal.
func (l *Lifecycle) Issue(ctx context.Context, purpose, userID, destination string) (*Issued, error) {
	policy, ok := l.policies[purpose]
	if !ok {
		return nil, fmt.Errorf("token: propósito desconocido %q", purpose)
	}
	ch, hasChannel := l.channels[purpose]
	if hasChannel && destination == "" {
		return nil, domain.ErrInvalidInput
	}

	plain, err := randomToken()
	if err != nil {
		return nil, err
	}
	issued := &Issued{
		ID:        uuid.New().String(),
		Purpose:   purpose,
		Token:     plain,
		ExpiresAt: l.now().Add(policy.TTL),
	}
	if policy.WithCode {
		code, err := randomCode()
		if err != nil {
			return nil, err
		}
		issued.Code = code
	}

	rec := &entity.VerificationToken{
		ID:          issued.ID,
		UserID:      userID,
		Purpose:     purpose,
		Destination: destination,
		TokenHash:   Hash(issued.Token),
		Attempts:    0,
		MaxAttempts: policy.MaxAttempts,
		ExpiresAt:   issued.ExpiresAt,
		CreatedAt:   l.now(),
	}
	if issued.Code != "" {
		rec.CodeHash = Hash(issued.Code)
	}
	if err := l.repo.Create(rec); err != nil {
		return nil, fmt.Errorf("token: persistir: %w", err)
	}

	if hasChannel {
		if err := ch.Send(ctx, destination, *issued); err != nil {
			// El token queda emitido pero sin entregar; se invalida para no
			// dejar tokens huérfanos utilizables.
			_ = l.repo.Delete(rec.ID)
			return nil, fmt.Errorf("token: entregar por canal: %w", err)
		}
	}
	return issued, nil
}

// VerifyToken valida un token opaco (magic link, login Telegram) sin
// consumirlo. Un token expirado siempre se rechaza aunque el hash coincida.
func (l *Lifecycle) VerifyToken(purpose, plain string) (*entity.VerificationToken, error) {
	if plain == "" {
		return nil, domain.ErrTokenInvalid
	}
	rec, err := l.repo.FindByTokenHash(purpose, Hash(plain))
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UsedAt != nil {
		return nil, domain.ErrTokenInvalid
	}
	if rec.Expired(l.now()) {
		return nil, domain.ErrTokenExpired
	}
	return rec, nil
}

// VerifyCode valida un código corto contra el token activo del destino.
// Cada código incorrecto cuenta un intento; al agotar MaxAttempts el token
// queda inutilizable (estado intentos-agotados).
func (l *Lifecycle) VerifyCode(purpose, destination, code string) (*entity.VerificationToken, error) {
	if code == "" {
		return nil, domain.ErrTokenInvalid
	}
	rec, err := l.repo.FindLatestByDestination(purpose, destination)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.UsedAt != nil || rec.CodeHash == "" {
		return nil, domain.ErrTokenInvalid
	}
	if rec.Expired(l.now()) {
		return nil, domain.ErrTokenExpired
	}
	if rec.Exhausted() {
		return nil, domain.ErrTokenExhausted
	}
	if subtle.ConstantTimeCompare([]byte(rec.CodeHash), []byte(Hash(code))) != 1 {
		if err := l.repo.IncrementAttempts(rec.ID); err != nil {
			return nil, err
		}
		if rec.Attempts+1 >= rec.MaxAttempts && rec.MaxAttempts > 0 {
			return nil, domain.ErrTokenExhausted
		}
		return nil, domain.ErrTokenInvalid
	}
	return rec, nil
}

// Bind asocia un usuario a un token emitido sin usuario (login Telegram).
func (l *Lifecycle) Bind(id, userID string) error {
	return l.repo.BindUser(id, userID)
}

// Consume marca el token como usado (un solo uso). Para flujos que aplican
// efectos transaccionales (password reset) el consumo se hace con el repo
// atado a la transacción, no con este método.
func (l *Lifecycle) Consume(id string) error {
	return l.repo.Consume(id, l.now())
}

// PurgeExpired elimina tokens vencidos; pensado para un barrido periódico.
func (l *Lifecycle) PurgeExpired() (int, error) {
	return l.repo.DeleteExpired(l.now())
}

// Hash devuelve el SHA-256 hex de un token o código plano.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: generar aleatorio: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("token: generar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
