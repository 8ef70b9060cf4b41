package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/tickets"
	"github.com/kynshop/storefront-api/internal/domain/entity"
)

// TicketHandler tickets de soporte.
type TicketHandler struct {
	uc *tickets.TicketUseCase
}

// NewTicketHandler construye el handler de tickets.
func NewTicketHandler(uc *tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

func isAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == entity.RoleAdmin
}

// Create godoc
// @Summary      Abrir ticket de soporte
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "subject, body"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Listar mis tickets
// @Tags         tickets
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TicketListResponse
// @Security     BearerAuth
// @Router       /api/tickets [get]
func (h *TicketHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.ListMine(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener ticket con su hilo
// @Tags         tickets
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      403  {object}  dto.ErrorResponse  "ticket de otro usuario"
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"), GetUserID(c), isAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddMessage godoc
// @Summary      Agregar mensaje al hilo
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ticket"
// @Param        body  body  dto.AddMessageRequest  true  "body"
// @Success      200   {object}  dto.TicketResponse
// @Failure      409   {object}  dto.ErrorResponse  "ticket cerrado"
// @Security     BearerAuth
// @Router       /api/tickets/{id}/messages [post]
func (h *TicketHandler) AddMessage(c *fiber.Ctx) error {
	var in dto.AddMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AddMessage(c.Params("id"), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todos los tickets (admin)
// @Tags         tickets
// @Produce      json
// @Param        status  query  string  false  "open | answered | closed"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TicketListResponse
// @Security     BearerAuth
// @Router       /api/admin/tickets [get]
func (h *TicketHandler) ListAll(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	out, err := h.uc.ListAll(c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un ticket (admin)
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketStatusRequest  true  "status"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
