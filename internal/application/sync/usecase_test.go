package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/internal/application/dto"
	appsync "github.com/kynshop/storefront-api/internal/application/sync"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memSizeRepo struct {
	byID map[string]*entity.ProductSize
}

func newMemSizeRepo(sizes ...*entity.ProductSize) *memSizeRepo {
	r := &memSizeRepo{byID: map[string]*entity.ProductSize{}}
	for _, s := range sizes {
		cp := *s
		r.byID[s.ID] = &cp
	}
	return r
}

func (r *memSizeRepo) Create(s *entity.ProductSize) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memSizeRepo) GetByID(id string) (*entity.ProductSize, error) {
	if s, ok := r.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memSizeRepo) ListByVariant(string) ([]*entity.ProductSize, error) { return nil, nil }

func (r *memSizeRepo) Update(s *entity.ProductSize) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memSizeRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// memTxRunner pasa los mismos repos; si fn falla no aplica nada más
// (suficiente para la semántica de los tests).
type memTxRunner struct {
	sizes *memSizeRepo
}

func (t *memTxRunner) RunCatalog(_ context.Context, fn func(
	repository.ProductRepository,
	repository.VariantRepository,
	repository.SizeRepository,
	repository.SequenceRepository,
) error) error {
	return fn(nil, nil, t.sizes, nil)
}

// mockBridge registra los empujes recibidos.
type mockBridge struct {
	stocks []appsync.StockPush
	prices []appsync.PricePush
	fail   bool
}

func (b *mockBridge) PushStock(_ context.Context, p appsync.StockPush) error {
	if b.fail {
		return errors.New("bridge caído")
	}
	b.stocks = append(b.stocks, p)
	return nil
}

func (b *mockBridge) PushPrice(_ context.Context, p appsync.PricePush) error {
	if b.fail {
		return errors.New("bridge caído")
	}
	b.prices = append(b.prices, p)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func linkedSize(id, sku string, stock int) *entity.ProductSize {
	return &entity.ProductSize{
		ID:           id,
		VariantID:    "v-1",
		SKU:          sku,
		Size:         "m",
		Stock:        stock,
		Price:        decimal.NewFromInt(1000),
		MoySkladHref: "http://api/entity/variant/" + id,
		MoySkladType: entity.AssortmentVariant,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PushStock / PushPrice
// ──────────────────────────────────────────────────────────────────────────────

func TestPushStock_ActualizaLocalYEmpuja(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "KYN-KP2-0925-0001-V1-SM", 3))
	bridge := &mockBridge{}
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, bridge, testLogger())

	out, err := uc.PushStock(context.Background(), dto.PushStockRequest{SizeID: "s-1", Stock: 7})
	require.NoError(t, err)

	assert.Equal(t, 3, out.PrevStock)
	assert.Equal(t, 7, out.NewStock)
	assert.True(t, out.Pushed)

	stored, _ := sizes.GetByID("s-1")
	assert.Equal(t, 7, stored.Stock, "el stock local queda fijado en el valor absoluto")

	require.Len(t, bridge.stocks, 1)
	assert.Equal(t, 7, bridge.stocks[0].NewQuantity, "al puente viaja la cantidad absoluta")
	assert.Equal(t, 3, bridge.stocks[0].PrevQuantity, "la cantidad anterior acompaña para auditoría")
}

func TestPushStock_SinVinculoNoEmpuja(t *testing.T) {
	size := linkedSize("s-1", "KYN-KP2-0925-0001-V1-SM", 3)
	size.MoySkladHref = ""
	size.MoySkladType = ""
	sizes := newMemSizeRepo(size)
	bridge := &mockBridge{}
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, bridge, testLogger())

	out, err := uc.PushStock(context.Background(), dto.PushStockRequest{SizeID: "s-1", Stock: 5})
	require.NoError(t, err)
	assert.False(t, out.Pushed, "sin href no hay empuje, solo actualización local")
	assert.Empty(t, bridge.stocks)
}

func TestPushStock_StockNegativoRechazado(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU", 3))
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, &mockBridge{}, testLogger())

	_, err := uc.PushStock(context.Background(), dto.PushStockRequest{SizeID: "s-1", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPushStock_TallaInexistente(t *testing.T) {
	sizes := newMemSizeRepo()
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, &mockBridge{}, testLogger())

	_, err := uc.PushStock(context.Background(), dto.PushStockRequest{SizeID: "nope", Stock: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPushPrice_EmpujaPrecios(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU", 3))
	bridge := &mockBridge{}
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, bridge, testLogger())

	_, err := uc.PushPrice(context.Background(), dto.PushPriceRequest{
		SizeID:   "s-1",
		Price:    decimal.NewFromInt(1299),
		OldPrice: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	require.Len(t, bridge.prices, 1)
	assert.True(t, bridge.prices[0].Price.Equal(decimal.NewFromInt(1299)))

	stored, _ := sizes.GetByID("s-1")
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(1299)))
}

func TestPushStock_FalloDelPuenteSePropaga(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU", 3))
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, &mockBridge{fail: true}, testLogger())

	_, err := uc.PushStock(context.Background(), dto.PushStockRequest{SizeID: "s-1", Stock: 9})
	assert.Error(t, err, "sin reintentos: el fallo llega al caller")

	stored, _ := sizes.GetByID("s-1")
	assert.Equal(t, 9, stored.Stock, "la verdad local ya quedó aplicada")
}

// ──────────────────────────────────────────────────────────────────────────────
// BatchUpdate
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchUpdate_AplicaTodoYEmpujaVinculadas(t *testing.T) {
	noLink := linkedSize("s-2", "SKU-2", 1)
	noLink.MoySkladHref = ""
	noLink.MoySkladType = ""
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU-1", 3), noLink)
	bridge := &mockBridge{}
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, bridge, testLogger())

	stock1, stock2 := 10, 20
	price := decimal.NewFromInt(999)
	out, err := uc.BatchUpdate(context.Background(), dto.BatchUpdateRequest{Updates: []dto.BatchVariantUpdate{
		{SizeID: "s-1", Stock: &stock1, Price: &price},
		{SizeID: "s-2", Stock: &stock2},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Updated)
	assert.Equal(t, 1, out.Pushed, "solo la talla vinculada se empuja")
	require.Len(t, out.Results, 2)

	s1, _ := sizes.GetByID("s-1")
	s2, _ := sizes.GetByID("s-2")
	assert.Equal(t, 10, s1.Stock)
	assert.Equal(t, 20, s2.Stock)
	require.Len(t, bridge.stocks, 1)
	assert.Equal(t, "SKU-1", bridge.stocks[0].SKU)
}

func TestBatchUpdate_TallaInexistenteAbortaElLote(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU-1", 3))
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, &mockBridge{}, testLogger())

	stock := 5
	_, err := uc.BatchUpdate(context.Background(), dto.BatchUpdateRequest{Updates: []dto.BatchVariantUpdate{
		{SizeID: "s-1", Stock: &stock},
		{SizeID: "nope", Stock: &stock},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchUpdate_LoteVacioRechazado(t *testing.T) {
	sizes := newMemSizeRepo()
	uc := appsync.NewSyncUseCase(sizes, &memTxRunner{sizes: sizes}, &mockBridge{}, testLogger())

	_, err := uc.BatchUpdate(context.Background(), dto.BatchUpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatchUpdate_RespetaElTopeDeTiempo(t *testing.T) {
	sizes := newMemSizeRepo(linkedSize("s-1", "SKU-1", 3))
	uc := appsync.NewSyncUseCase(sizes, &slowTxRunner{}, &mockBridge{}, testLogger())

	stock := 5
	start := time.Now()
	_, err := uc.BatchUpdate(context.Background(), dto.BatchUpdateRequest{Updates: []dto.BatchVariantUpdate{
		{SizeID: "s-1", Stock: &stock},
	}})
	assert.Error(t, err, "una transacción colgada se corta por el deadline")
	assert.Less(t, time.Since(start), 20*time.Second)
}

// slowTxRunner simula una transacción que nunca termina: espera el deadline.
type slowTxRunner struct{}

func (t *slowTxRunner) RunCatalog(ctx context.Context, _ func(
	repository.ProductRepository,
	repository.VariantRepository,
	repository.SizeRepository,
	repository.SequenceRepository,
) error) error {
	<-ctx.Done()
	return ctx.Err()
}
