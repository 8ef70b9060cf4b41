package moysklad

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/kynshop/storefront-api/internal/application/sync"
	"github.com/kynshop/storefront-api/pkg/config"
)

// fakeAPI servidor mínimo que imita los endpoints usados por el puente.
type fakeAPI struct {
	listHits  atomic.Int64 // listados servidos (org + store)
	lastEnter enterDocument
	enterHits atomic.Int64
	lastPrice assortmentPrices
	priceHits atomic.Int64
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/entity/organization", func(w http.ResponseWriter, r *http.Request) {
		f.listHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{Rows: []listRow{{
			Meta: Meta{Href: "http://api/entity/organization/org-1", Type: "organization"},
			Name: "KYN",
		}}})
	})
	mux.HandleFunc("/entity/store", func(w http.ResponseWriter, r *http.Request) {
		f.listHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listResponse{Rows: []listRow{{
			Meta: Meta{Href: "http://api/entity/store/store-1", Type: "store"},
			Name: "Principal",
		}}})
	})
	mux.HandleFunc("/entity/enter", func(w http.ResponseWriter, r *http.Request) {
		f.enterHits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.lastEnter)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/entity/variant/", func(w http.ResponseWriter, r *http.Request) {
		f.priceHits.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.lastPrice)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func newBridge(t *testing.T, api *fakeAPI, ttl time.Duration) (*Bridge, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	client := NewClient(config.MoySkladConfig{BaseURL: srv.URL, Token: "test-token"})
	return NewBridge(client, NewReferenceCache(client, ttl)), srv
}

func TestPushStock_DocumentoConCantidadAbsoluta(t *testing.T) {
	api := &fakeAPI{}
	bridge, _ := newBridge(t, api, time.Minute)

	err := bridge.PushStock(context.Background(), appsync.StockPush{
		Href:           "http://api/entity/variant/v-1",
		AssortmentType: "variant",
		SKU:            "KYN-KP2-0925-0001-V1-SM",
		PrevQuantity:   3,
		NewQuantity:    7,
	})
	require.NoError(t, err)

	require.Equal(t, int64(1), api.enterHits.Load())
	doc := api.lastEnter
	require.Len(t, doc.Positions, 1)
	assert.Equal(t, 7, doc.Positions[0].Quantity, "se envía la cantidad absoluta, no el delta")
	assert.Equal(t, "variant", doc.Positions[0].Assortment.Meta.Type)
	assert.Contains(t, doc.Description, "3 -> 7", "la cantidad anterior queda en la descripción")
	assert.Equal(t, "http://api/entity/organization/org-1", doc.Organization.Meta.Href)
	assert.Equal(t, "http://api/entity/store/store-1", doc.Store.Meta.Href)
}

func TestPushPrice_SalePricesEnKopeks(t *testing.T) {
	api := &fakeAPI{}
	bridge, srv := newBridge(t, api, time.Minute)

	err := bridge.PushPrice(context.Background(), appsync.PricePush{
		Href:           srv.URL + "/entity/variant/v-1",
		AssortmentType: "variant",
		SKU:            "KYN-KP2-0925-0001-V1-SM",
		Price:          decimal.NewFromFloat(1299.50),
		OldPrice:       decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	require.Equal(t, int64(1), api.priceHits.Load())
	require.Len(t, api.lastPrice.SalePrices, 2)
	assert.Equal(t, int64(129950), api.lastPrice.SalePrices[0].Value)
	assert.Equal(t, int64(150000), api.lastPrice.SalePrices[1].Value)
}

func TestPushPrice_SinPrecioTachado(t *testing.T) {
	api := &fakeAPI{}
	bridge, srv := newBridge(t, api, time.Minute)

	err := bridge.PushPrice(context.Background(), appsync.PricePush{
		Href:  srv.URL + "/entity/variant/v-1",
		SKU:   "KYN-KP2-0925-0001-V1-SM",
		Price: decimal.NewFromInt(999),
	})
	require.NoError(t, err)
	require.Len(t, api.lastPrice.SalePrices, 1, "old_price en cero no se envía")
}

func TestReferenceCache_TTLyInvalidate(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	client := NewClient(config.MoySkladConfig{BaseURL: srv.URL, Token: "test-token"})
	cache := NewReferenceCache(client, time.Minute)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), api.listHits.Load(), "dentro del TTL no se vuelve a la API (org + store una sola vez)")

	cache.Invalidate()
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), api.listHits.Load(), "tras invalidar se recarga")
}

func TestReferenceCache_TTLVencido(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	client := NewClient(config.MoySkladConfig{BaseURL: srv.URL, Token: "test-token"})
	cache := NewReferenceCache(client, time.Nanosecond)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), api.listHits.Load(), "con TTL vencido se recarga")
}
