// Package tickets maneja los tickets de soporte de la tienda: creación con
// primer mensaje, hilo de mensajes y transiciones de estado por admin.
package tickets

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

// TicketUseCase casos de uso de soporte.
type TicketUseCase struct {
	repo repository.TicketRepository
	now  func() time.Time
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.TicketRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo, now: time.Now}
}

// Create abre un ticket con su primer mensaje.
func (uc *TicketUseCase) Create(userID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Body)
	if subject == "" || body == "" {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	ticket := &entity.Ticket{
		ID:        uuid.New().String(),
		UserID:    userID,
		Subject:   subject,
		Status:    entity.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ticket); err != nil {
		return nil, err
	}
	msg := &entity.TicketMessage{
		ID:        uuid.New().String(),
		TicketID:  ticket.ID,
		AuthorID:  userID,
		FromAdmin: false,
		Body:      body,
		CreatedAt: now,
	}
	if err := uc.repo.AddMessage(msg); err != nil {
		return nil, err
	}
	return uc.toResponse(ticket, []*entity.TicketMessage{msg}), nil
}

// Get devuelve un ticket con su hilo. Un cliente solo ve sus propios tickets;
// un admin ve cualquiera.
func (uc *TicketUseCase) Get(ticketID, requesterID string, isAdmin bool) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && ticket.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	msgs, err := uc.repo.ListMessages(ticketID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ticket, msgs), nil
}

// ListMine lista los tickets del usuario autenticado.
func (uc *TicketUseCase) ListMine(userID string, page dto.PageRequest) (*dto.TicketListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// ListAll lista todos los tickets, opcionalmente filtrados por estado (admin).
func (uc *TicketUseCase) ListAll(status string, page dto.PageRequest) (*dto.TicketListResponse, error) {
	if status != "" && !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.ListAll(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// AddMessage agrega un mensaje al hilo. Un mensaje de admin mueve el ticket a
// "answered"; uno del dueño lo reabre si estaba respondido. Sobre un ticket
// cerrado no se puede escribir.
func (uc *TicketUseCase) AddMessage(ticketID, authorID string, isAdmin bool, in dto.AddMessageRequest) (*dto.TicketResponse, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, domain.ErrInvalidInput
	}
	ticket, err := uc.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && ticket.UserID != authorID {
		return nil, domain.ErrForbidden
	}
	if ticket.Status == entity.TicketClosed {
		return nil, domain.ErrConflict
	}

	msg := &entity.TicketMessage{
		ID:        uuid.New().String(),
		TicketID:  ticket.ID,
		AuthorID:  authorID,
		FromAdmin: isAdmin,
		Body:      body,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.AddMessage(msg); err != nil {
		return nil, err
	}

	next := entity.TicketOpen
	if isAdmin {
		next = entity.TicketAnswered
	}
	if next != ticket.Status {
		if err := uc.repo.UpdateStatus(ticket.ID, next); err != nil {
			return nil, err
		}
		ticket.Status = next
	}
	ticket.UpdatedAt = msg.CreatedAt

	msgs, err := uc.repo.ListMessages(ticket.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ticket, msgs), nil
}

// UpdateStatus transición manual de estado (solo admin).
func (uc *TicketUseCase) UpdateStatus(ticketID string, in dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	if !validStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	ticket, err := uc.repo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateStatus(ticket.ID, in.Status); err != nil {
		return nil, err
	}
	ticket.Status = in.Status
	ticket.UpdatedAt = uc.now()
	return uc.toResponse(ticket, nil), nil
}

func validStatus(s string) bool {
	return s == entity.TicketOpen || s == entity.TicketAnswered || s == entity.TicketClosed
}

func (uc *TicketUseCase) toResponse(t *entity.Ticket, msgs []*entity.TicketMessage) *dto.TicketResponse {
	out := &dto.TicketResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Subject:   t.Subject,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, dto.TicketMessageResponse{
			ID:        m.ID,
			AuthorID:  m.AuthorID,
			FromAdmin: m.FromAdmin,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func (uc *TicketUseCase) toList(list []*entity.Ticket, page dto.PageRequest) *dto.TicketListResponse {
	out := &dto.TicketListResponse{
		Items: make([]dto.TicketResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range list {
		out.Items = append(out.Items, *uc.toResponse(t, nil))
	}
	return out
}
