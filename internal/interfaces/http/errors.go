package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
)

// respondError traduce los errores de dominio a la taxonomía HTTP:
// 400 validación, 401 sin autenticar, 403 sin permiso, 404 no existe,
// 409 conflicto de estado, 500 el resto. Siempre con el envelope
// {code, message}; el detalle interno solo va al log.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "entrada inválida")
	case errors.Is(err, domain.ErrTokenInvalid):
		return fail(c, fiber.StatusBadRequest, "TOKEN_INVALID", "token o código inválido")
	case errors.Is(err, domain.ErrTokenExpired):
		return fail(c, fiber.StatusBadRequest, "TOKEN_EXPIRED", "token o código expirado")
	case errors.Is(err, domain.ErrTokenExhausted):
		return fail(c, fiber.StatusBadRequest, "TOKEN_EXHAUSTED", "demasiados intentos; solicita un código nuevo")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "no tienes permiso para esta operación")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "el recurso no existe")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrCategoryInUse):
		return fail(c, fiber.StatusConflict, "CATEGORY_IN_USE", "la categoría tiene productos asociados")
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual del recurso")
	default:
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
	}
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
