package tickets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/application/tickets"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memTicketRepo struct {
	tickets  map[string]*entity.Ticket
	messages map[string][]*entity.TicketMessage
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{
		tickets:  map[string]*entity.Ticket{},
		messages: map[string][]*entity.TicketMessage{},
	}
}

func (r *memTicketRepo) Create(t *entity.Ticket) error {
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *memTicketRepo) GetByID(id string) (*entity.Ticket, error) {
	if t, ok := r.tickets[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *memTicketRepo) ListByUser(userID string, limit, offset int) ([]*entity.Ticket, error) {
	var out []*entity.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ListAll(status string, limit, offset int) ([]*entity.Ticket, error) {
	var out []*entity.Ticket
	for _, t := range r.tickets {
		if status == "" || t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTicketRepo) UpdateStatus(id, status string) error {
	if t, ok := r.tickets[id]; ok {
		t.Status = status
	}
	return nil
}

func (r *memTicketRepo) AddMessage(m *entity.TicketMessage) error {
	cp := *m
	r.messages[m.TicketID] = append(r.messages[m.TicketID], &cp)
	return nil
}

func (r *memTicketRepo) ListMessages(ticketID string) ([]*entity.TicketMessage, error) {
	return r.messages[ticketID], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID = "user-1"
	otherID = "user-2"
	adminID = "admin-1"
)

func openTicket(t *testing.T, uc *tickets.TicketUseCase) *dto.TicketResponse {
	t.Helper()
	out, err := uc.Create(ownerID, dto.CreateTicketRequest{
		Subject: "Pedido sin despachar",
		Body:    "Mi pedido lleva una semana sin moverse",
	})
	require.NoError(t, err)
	return out
}

func TestCreate_AbreTicketConPrimerMensaje(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())

	out := openTicket(t, uc)

	assert.Equal(t, entity.TicketOpen, out.Status, "un ticket nuevo nace abierto")
	assert.Equal(t, ownerID, out.UserID)
	require.Len(t, out.Messages, 1, "el cuerpo inicial es el primer mensaje del hilo")
	assert.Equal(t, ownerID, out.Messages[0].AuthorID)
	assert.False(t, out.Messages[0].FromAdmin)
}

func TestCreate_CamposVaciosRechazados(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())

	_, err := uc.Create(ownerID, dto.CreateTicketRequest{Subject: "  ", Body: "hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ownerID, dto.CreateTicketRequest{Subject: "asunto", Body: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_SoloDuenoOAdmin(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	got, err := uc.Get(created.ID, ownerID, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.Get(created.ID, otherID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden, "otro cliente no puede leer el ticket")

	_, err = uc.Get(created.ID, adminID, true)
	assert.NoError(t, err, "un admin ve cualquier ticket")
}

func TestGet_Inexistente(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	_, err := uc.Get("nope", ownerID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddMessage_AdminRespondeYCambiaEstado(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	out, err := uc.AddMessage(created.ID, adminID, true, dto.AddMessageRequest{Body: "Revisando con la transportadora"})
	require.NoError(t, err)

	assert.Equal(t, entity.TicketAnswered, out.Status, "mensaje de admin mueve el ticket a respondido")
	require.Len(t, out.Messages, 2)
	assert.True(t, out.Messages[1].FromAdmin)
}

func TestAddMessage_DuenoReabreTicketRespondido(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	_, err := uc.AddMessage(created.ID, adminID, true, dto.AddMessageRequest{Body: "respuesta"})
	require.NoError(t, err)

	out, err := uc.AddMessage(created.ID, ownerID, false, dto.AddMessageRequest{Body: "sigue igual"})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketOpen, out.Status, "la réplica del dueño reabre el ticket")
}

func TestAddMessage_TicketCerradoRechaza(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	_, err := uc.UpdateStatus(created.ID, dto.UpdateTicketStatusRequest{Status: entity.TicketClosed})
	require.NoError(t, err)

	_, err = uc.AddMessage(created.ID, ownerID, false, dto.AddMessageRequest{Body: "¿hola?"})
	assert.ErrorIs(t, err, domain.ErrConflict, "sobre un ticket cerrado no se escribe")
}

func TestAddMessage_OtroClienteBloqueado(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	_, err := uc.AddMessage(created.ID, otherID, false, dto.AddMessageRequest{Body: "intruso"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)

	_, err := uc.UpdateStatus(created.ID, dto.UpdateTicketStatusRequest{Status: "archivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMine_SoloLosPropios(t *testing.T) {
	repo := newMemTicketRepo()
	uc := tickets.NewTicketUseCase(repo)
	openTicket(t, uc)

	_, err := uc.Create(otherID, dto.CreateTicketRequest{Subject: "otro", Body: "cuerpo"})
	require.NoError(t, err)

	out, err := uc.ListMine(ownerID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, ownerID, out.Items[0].UserID)
}

func TestListAll_FiltraPorEstado(t *testing.T) {
	uc := tickets.NewTicketUseCase(newMemTicketRepo())
	created := openTicket(t, uc)
	_, err := uc.UpdateStatus(created.ID, dto.UpdateTicketStatusRequest{Status: entity.TicketClosed})
	require.NoError(t, err)

	_, err = uc.Create(otherID, dto.CreateTicketRequest{Subject: "otro", Body: "cuerpo"})
	require.NoError(t, err)

	out, err := uc.ListAll(entity.TicketClosed, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.TicketClosed, out.Items[0].Status)

	_, err = uc.ListAll("archivado", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
