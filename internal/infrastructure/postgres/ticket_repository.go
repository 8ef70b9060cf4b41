package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación del puerto TicketRepository sobre PostgreSQL.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create persiste un nuevo ticket.
func (r *TicketRepo) Create(ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, subject, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.UserID, ticket.Subject, ticket.Status, ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *TicketRepo) GetByID(id string) (*entity.Ticket, error) {
	query := `
		SELECT id, user_id, subject, status, created_at, updated_at
		FROM tickets WHERE id = $1`
	var t entity.Ticket
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// ListByUser lista los tickets de un usuario, más recientes primero.
func (r *TicketRepo) ListByUser(userID string, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, user_id, subject, status, created_at, updated_at
		FROM tickets WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// ListAll lista todos los tickets, opcionalmente filtrados por estado.
func (r *TicketRepo) ListAll(status string, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, user_id, subject, status, created_at, updated_at
		FROM tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

func (r *TicketRepo) list(query string, args ...any) ([]*entity.Ticket, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del ticket.
func (r *TicketRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tickets SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	return nil
}

// AddMessage agrega un mensaje al hilo y refresca updated_at del ticket.
func (r *TicketRepo) AddMessage(msg *entity.TicketMessage) error {
	query := `
		INSERT INTO ticket_messages (id, ticket_id, author_id, from_admin, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		msg.ID, msg.TicketID, msg.AuthorID, msg.FromAdmin, msg.Body, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket message: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE tickets SET updated_at = $2 WHERE id = $1`, msg.TicketID, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("touch ticket: %w", err)
	}
	return nil
}

// ListMessages lista el hilo completo de un ticket en orden cronológico.
func (r *TicketRepo) ListMessages(ticketID string) ([]*entity.TicketMessage, error) {
	query := `
		SELECT id, ticket_id, author_id, from_admin, body, created_at
		FROM ticket_messages WHERE ticket_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.TicketMessage
	for rows.Next() {
		var m entity.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorID, &m.FromAdmin, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
