package entity

import "time"

// Estados de un ticket de soporte.
const (
	TicketOpen     = "open"
	TicketAnswered = "answered"
	TicketClosed   = "closed"
)

// Ticket ticket de soporte de un usuario.
type Ticket struct {
	ID        string
	UserID    string
	Subject   string
	Status    string // open, answered, closed
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TicketMessage mensaje dentro de un ticket (del usuario o de un admin).
type TicketMessage struct {
	ID        string
	TicketID  string
	AuthorID  string
	FromAdmin bool
	Body      string
	CreatedAt time.Time
}
