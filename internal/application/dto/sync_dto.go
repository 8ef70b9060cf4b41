package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PushStockRequest empuja el stock absoluto de una talla hacia MoySklad.
type PushStockRequest struct {
	SizeID string `json:"size_id"`
	Stock  int    `json:"stock"`
}

// PushPriceRequest empuja precio y precio anterior de una talla.
type PushPriceRequest struct {
	SizeID   string          `json:"size_id"`
	Price    decimal.Decimal `json:"price"`
	OldPrice decimal.Decimal `json:"old_price"`
}

// BatchVariantUpdate una entrada del lote de actualización de variantes.
type BatchVariantUpdate struct {
	SizeID   string           `json:"size_id"`
	Stock    *int             `json:"stock"`
	Price    *decimal.Decimal `json:"price"`
	OldPrice *decimal.Decimal `json:"old_price"`
}

// BatchUpdateRequest lote completo; se aplica dentro de una sola transacción.
type BatchUpdateRequest struct {
	Updates []BatchVariantUpdate `json:"updates"`
}

// SyncResultResponse resultado de un empuje individual.
type SyncResultResponse struct {
	SizeID    string    `json:"size_id"`
	SKU       string    `json:"sku"`
	Pushed    bool      `json:"pushed"`
	PushedAt  time.Time `json:"pushed_at"`
	PrevStock int       `json:"prev_stock"`
	NewStock  int       `json:"new_stock"`
}

// BatchUpdateResponse resultado del lote.
type BatchUpdateResponse struct {
	Updated int                  `json:"updated"`
	Pushed  int                  `json:"pushed"`
	Results []SyncResultResponse `json:"results"`
}
