package repository

import "github.com/kynshop/storefront-api/internal/domain/entity"

// TicketRepository define el puerto de persistencia para tickets de soporte.
type TicketRepository interface {
	Create(ticket *entity.Ticket) error
	GetByID(id string) (*entity.Ticket, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Ticket, error)
	ListAll(status string, limit, offset int) ([]*entity.Ticket, error)
	UpdateStatus(id, status string) error
	AddMessage(msg *entity.TicketMessage) error
	ListMessages(ticketID string) ([]*entity.TicketMessage, error)
}
