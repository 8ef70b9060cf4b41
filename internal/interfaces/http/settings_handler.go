package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/settings"
)

// SettingsHandler configuración de proveedores (solo admin).
type SettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewSettingsHandler construye el handler de configuración.
func NewSettingsHandler(uc *settings.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// List godoc
// @Summary      Listar configuración de proveedores (credenciales enmascaradas)
// @Tags         settings
// @Produce      json
// @Success      200  {array}  dto.SettingsResponse
// @Security     BearerAuth
// @Router       /api/admin/settings [get]
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener configuración de un proveedor
// @Tags         settings
// @Produce      json
// @Param        provider  path  string  true  "payment | shipping | sync"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/settings/{provider} [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("provider"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "el proveedor no está configurado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar configuración de un proveedor (cifra credenciales)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        provider  path  string                     true  "payment | shipping | sync"
// @Param        body      body  dto.UpdateSettingsRequest  true  "enabled, credentials"
// @Success      200  {object}  dto.SettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/settings/{provider} [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("provider"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
