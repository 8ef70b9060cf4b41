package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// User usuario de la tienda (cliente o administrador).
// TelegramID queda poblado tras un login por Telegram.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // admin, cliente
	EmailVerified bool
	TelegramID    int64 // 0 si no está vinculado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
