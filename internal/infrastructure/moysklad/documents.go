package moysklad

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	appsync "github.com/kynshop/storefront-api/internal/application/sync"
)

var _ appsync.Bridge = (*Bridge)(nil)

// Bridge implementación del puerto sync.Bridge sobre la API de MoySklad.
type Bridge struct {
	client *Client
	refs   *ReferenceCache
}

// NewBridge construye el puente con cliente y caché de referencias.
func NewBridge(client *Client, refs *ReferenceCache) *Bridge {
	return &Bridge{client: client, refs: refs}
}

// PushStock fija la existencia de un ensamble creando un documento "enter"
// con la cantidad absoluta. La cantidad anterior viaja en la descripción para
// auditoría; nunca se envían deltas.
func (b *Bridge) PushStock(ctx context.Context, p appsync.StockPush) error {
	refs, err := b.refs.Get(ctx)
	if err != nil {
		return err
	}
	doc := enterDocument{
		Organization: entityRef{Meta: refs.Organization},
		Store:        entityRef{Meta: refs.Store},
		Description:  fmt.Sprintf("Stock sync %s: %d -> %d", p.SKU, p.PrevQuantity, p.NewQuantity),
		Positions: []enterPosition{{
			Assortment: entityRef{Meta: Meta{Href: p.Href, Type: p.AssortmentType}},
			Quantity:   p.NewQuantity,
		}},
	}
	resp, err := b.client.http.R().
		SetContext(ctx).
		SetBody(doc).
		Post("/entity/enter")
	if err != nil {
		return fmt.Errorf("moysklad: crear enter: %w", err)
	}
	if resp.IsError() {
		return apiErr("crear enter", resp)
	}
	return nil
}

// PushPrice actualiza los precios de venta del ensamble con un PUT sobre su
// href. OldPrice en cero significa sin precio tachado y no se envía.
func (b *Bridge) PushPrice(ctx context.Context, p appsync.PricePush) error {
	body := assortmentPrices{
		SalePrices: []salePrice{{Value: toKopeks(p.Price)}},
	}
	if !p.OldPrice.IsZero() {
		body.SalePrices = append(body.SalePrices, salePrice{Value: toKopeks(p.OldPrice)})
	}
	resp, err := b.client.http.R().
		SetContext(ctx).
		SetBody(body).
		Put(p.Href)
	if err != nil {
		return fmt.Errorf("moysklad: actualizar precios: %w", err)
	}
	if resp.IsError() {
		return apiErr("actualizar precios", resp)
	}
	return nil
}

// toKopeks convierte un precio decimal a centésimas enteras (unidad de la API).
func toKopeks(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
