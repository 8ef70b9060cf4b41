package sync

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockPush empuje de stock absoluto de una unidad de inventario.
// PrevQuantity viaja junto con la cantidad nueva para auditoría; nunca se
// envían deltas (un reintento con cantidad absoluta es inocuo, un delta no).
type StockPush struct {
	Href           string
	AssortmentType string // "product" | "variant"
	SKU            string
	PrevQuantity   int
	NewQuantity    int
}

// PricePush empuje de precio y precio anterior de una unidad.
type PricePush struct {
	Href           string
	AssortmentType string
	SKU            string
	Price          decimal.Decimal
	OldPrice       decimal.Decimal
}

// Bridge puerto de salida hacia el sistema de inventario externo.
// La implementación concreta habla con MoySklad; para tests se inyecta un mock.
type Bridge interface {
	PushStock(ctx context.Context, p StockPush) error
	PushPrice(ctx context.Context, p PricePush) error
}
