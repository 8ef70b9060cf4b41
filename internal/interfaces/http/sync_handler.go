package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/dto"
	appsync "github.com/kynshop/storefront-api/internal/application/sync"
)

// SyncHandler empujes de stock/precio hacia el sistema de inventario externo.
type SyncHandler struct {
	uc *appsync.SyncUseCase
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(uc *appsync.SyncUseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// PushStock godoc
// @Summary      Fijar stock absoluto de una talla y empujarlo
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PushStockRequest  true  "size_id, stock"
// @Success      200   {object}  dto.SyncResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sync/stock [post]
func (h *SyncHandler) PushStock(c *fiber.Ctx) error {
	var in dto.PushStockRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.PushStock(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PushPrice godoc
// @Summary      Actualizar precios de una talla y empujarlos
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PushPriceRequest  true  "size_id, price, old_price"
// @Success      200   {object}  dto.SyncResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sync/price [post]
func (h *SyncHandler) PushPrice(c *fiber.Ctx) error {
	var in dto.PushPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.PushPrice(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BatchUpdate godoc
// @Summary      Lote de actualizaciones de stock/precio en una sola transacción
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchUpdateRequest  true  "updates"
// @Success      200   {object}  dto.BatchUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/sync/batch [post]
func (h *SyncHandler) BatchUpdate(c *fiber.Ctx) error {
	var in dto.BatchUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.BatchUpdate(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
