package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/dto"
)

// AuthHandler maneja registro, login, verificación de email, password reset
// y login por Telegram.
type AuthHandler struct {
	uc            *auth.AuthUseCase
	telegram      *auth.TelegramLoginUseCase
	cookieMinutes int
	secureCookie  bool
}

// NewAuthHandler construye el handler de auth. cookieMinutes define la vida
// de la cookie de sesión (30 días por defecto en la config).
func NewAuthHandler(uc *auth.AuthUseCase, telegram *auth.TelegramLoginUseCase, cookieMinutes int, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, telegram: telegram, cookieMinutes: cookieMinutes, secureCookie: secureCookie}
}

// setSession deja el token de sesión en la cookie HTTP-only.
func (h *AuthHandler) setSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.cookieMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "password debe tener al menos 8 caracteres")
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	h.setSession(c, out.Token)
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      204  "sin contenido"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// VerifyEmail godoc
// @Summary      Confirmar email con código de 6 dígitos
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "email, code"
// @Success      204   "verificado"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Code == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email y code son requeridos")
	}
	if err := h.uc.VerifyEmail(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResendVerification godoc
// @Summary      Reenviar código de verificación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      204   "aceptado"
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email es requerido")
	}
	if err := h.uc.ResendVerification(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestPasswordReset godoc
// @Summary      Solicitar reseteo de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      204   "aceptado (no revela si el email existe)"
// @Router       /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "email es requerido")
	}
	if err := h.uc.RequestPasswordReset(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmPasswordReset godoc
// @Summary      Confirmar reseteo con el token del magic link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetConfirm  true  "token, new_password"
// @Success      204   "contraseña cambiada"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetConfirm
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ConfirmPasswordReset(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TelegramInit godoc
// @Summary      Iniciar login por Telegram
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.TelegramInitResponse
// @Router       /api/auth/telegram/init [post]
func (h *AuthHandler) TelegramInit(c *fiber.Ctx) error {
	out, err := h.telegram.Init(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TelegramConfirm godoc
// @Summary      Confirmar login por Telegram (payload del widget)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  query  string                     true  "token de init"
// @Param        body   body   dto.TelegramWidgetRequest  true  "payload firmado del widget"
// @Success      204    "confirmado"
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /api/auth/telegram/confirm [post]
func (h *AuthHandler) TelegramConfirm(c *fiber.Ctx) error {
	tok := c.Query("token")
	if tok == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "token es requerido")
	}
	var widget dto.TelegramWidgetRequest
	if err := c.BodyParser(&widget); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.telegram.Confirm(c.Context(), tok, widget); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TelegramStatus godoc
// @Summary      Consultar estado del login por Telegram
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "token de init"
// @Success      200    {object}  dto.TelegramStatusResponse
// @Router       /api/auth/telegram/status [get]
func (h *AuthHandler) TelegramStatus(c *fiber.Ctx) error {
	tok := c.Query("token")
	if tok == "" {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "token es requerido")
	}
	out, err := h.telegram.Status(tok)
	if err != nil {
		return respondError(c, err)
	}
	if out.Session != nil {
		h.setSession(c, out.Session.Token)
	}
	return c.JSON(out)
}
