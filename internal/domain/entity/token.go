package entity

import "time"

// Propósitos del ciclo de vida de tokens de verificación.
const (
	PurposeEmailVerify   = "email_verify"
	PurposePasswordReset = "password_reset"
	PurposeTelegramLogin = "telegram_login"
)

// VerificationToken token de un solo uso con intentos acotados.
// Estados implícitos: emitido -> verificado | expirado | intentos agotados.
// TokenHash y CodeHash son SHA-256; el valor plano solo viaja por el canal
// de entrega (email o Telegram) y nunca se persiste.
type VerificationToken struct {
	ID          string
	UserID      string // puede ser vacío en flujos previos al registro
	Purpose     string
	Destination string // email o chat id según el canal
	TokenHash   string
	CodeHash    string // vacío si el propósito no usa código corto
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time
	UsedAt      *time.Time // nil mientras no se consuma
	CreatedAt   time.Time
}

// Expired indica si el token venció respecto a now.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Exhausted indica si se agotaron los intentos de verificación.
func (t *VerificationToken) Exhausted() bool {
	return t.MaxAttempts > 0 && t.Attempts >= t.MaxAttempts
}
