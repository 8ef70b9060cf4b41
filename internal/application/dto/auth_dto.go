package dto

import "time"

// RegisterRequest alta de usuario por email y password.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representación HTTP de un usuario (sin hash).
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	TelegramID    int64     `json:"telegram_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginResponse token de sesión + usuario. El token también viaja en la
// cookie HTTP-only "session"; se incluye en el cuerpo para clientes no web.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyEmailRequest confirmación por código corto.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// PasswordResetRequest solicita el envío del token de reseteo.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirm confirma el reseteo con el token del magic link.
type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// TelegramInitRequest emite un token de login ligado a un chat de Telegram.
type TelegramInitRequest struct {
	ChatID int64 `json:"chat_id"`
}

// TelegramInitResponse token opaco que el cliente usa para consultar estado.
type TelegramInitResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TelegramStatusResponse estado del login por Telegram. Session solo viene
// poblado cuando Status == "confirmed".
type TelegramStatusResponse struct {
	Status  string         `json:"status"` // pending, confirmed, expired
	Session *LoginResponse `json:"session,omitempty"`
}

// TelegramWidgetRequest payload del widget de login de Telegram.
type TelegramWidgetRequest struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}
