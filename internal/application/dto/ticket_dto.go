package dto

import "time"

// CreateTicketRequest alta de ticket con su primer mensaje.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AddMessageRequest agrega un mensaje a un ticket existente.
type AddMessageRequest struct {
	Body string `json:"body"`
}

// UpdateTicketStatusRequest transición de estado (solo admin).
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// TicketMessageResponse mensaje de un ticket.
type TicketMessageResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	FromAdmin bool      `json:"from_admin"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketResponse ticket con mensajes opcionales.
type TicketResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	Subject   string                  `json:"subject"`
	Status    string                  `json:"status"`
	Messages  []TicketMessageResponse `json:"messages,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// TicketListResponse listado paginado de tickets.
type TicketListResponse struct {
	Items []TicketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
