// Package sync reconcilia stock y precios locales hacia el sistema de
// inventario externo. Siempre cantidades absolutas, nunca deltas.
package sync

import (
	"context"
	"time"

	"github.com/kynshop/storefront-api/internal/application/catalog"
	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/pkg/logger"
)

// batchTimeout tope de la transacción del lote de variantes.
const batchTimeout = 15 * time.Second

// SyncUseCase aplica cambios de stock/precio en local y los empuja al puente.
// Sin reintentos ni backoff: un fallo del puente se loguea y se propaga al
// handler, que lo traduce a 500.
type SyncUseCase struct {
	sizes  repository.SizeRepository
	tx     catalog.TxRunner
	bridge Bridge
	log    *logger.Logger
}

// NewSyncUseCase construye el caso de uso. bridge puede ser nil cuando la
// integración está deshabilitada: se actualiza solo en local.
func NewSyncUseCase(sizes repository.SizeRepository, tx catalog.TxRunner, bridge Bridge, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{sizes: sizes, tx: tx, bridge: bridge, log: log.Component("sync")}
}

// PushStock fija el stock absoluto de una talla en local y lo empuja al
// sistema externo. La unidad debe tener referencia (href) externa.
func (uc *SyncUseCase) PushStock(ctx context.Context, in dto.PushStockRequest) (*dto.SyncResultResponse, error) {
	if in.SizeID == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	size, err := uc.sizes.GetByID(in.SizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, domain.ErrNotFound
	}

	prev := size.Stock
	size.Stock = in.Stock
	size.UpdatedAt = time.Now()
	if err := uc.sizes.Update(size); err != nil {
		return nil, err
	}

	res := &dto.SyncResultResponse{
		SizeID:    size.ID,
		SKU:       size.SKU,
		PrevStock: prev,
		NewStock:  in.Stock,
	}
	if uc.bridge == nil || !size.Linked() {
		return res, nil
	}
	if err := uc.pushStock(ctx, size, prev); err != nil {
		return nil, err
	}
	res.Pushed = true
	res.PushedAt = time.Now()
	return res, nil
}

// PushPrice actualiza precio/precio anterior en local y en el sistema externo.
func (uc *SyncUseCase) PushPrice(ctx context.Context, in dto.PushPriceRequest) (*dto.SyncResultResponse, error) {
	if in.SizeID == "" || in.Price.IsNegative() || in.OldPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	size, err := uc.sizes.GetByID(in.SizeID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, domain.ErrNotFound
	}

	size.Price = in.Price
	size.OldPrice = in.OldPrice
	size.UpdatedAt = time.Now()
	if err := uc.sizes.Update(size); err != nil {
		return nil, err
	}

	res := &dto.SyncResultResponse{SizeID: size.ID, SKU: size.SKU, PrevStock: size.Stock, NewStock: size.Stock}
	if uc.bridge == nil || !size.Linked() {
		return res, nil
	}
	if err := uc.pushPrice(ctx, size); err != nil {
		return nil, err
	}
	res.Pushed = true
	res.PushedAt = time.Now()
	return res, nil
}

// BatchUpdate aplica un lote de cambios de stock/precio dentro de una sola
// transacción con tope de 15 segundos y después empuja cada unidad vinculada.
// Los empujes van fuera de la transacción: la verdad local ya quedó
// consistente y las cantidades absolutas son seguras de reenviar.
func (uc *SyncUseCase) BatchUpdate(ctx context.Context, in dto.BatchUpdateRequest) (*dto.BatchUpdateResponse, error) {
	if len(in.Updates) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	type pending struct {
		size *entity.ProductSize
		prev int
	}
	var toPush []pending

	err := uc.tx.RunCatalog(ctx, func(
		_ repository.ProductRepository,
		_ repository.VariantRepository,
		sizes repository.SizeRepository,
		_ repository.SequenceRepository,
	) error {
		for _, u := range in.Updates {
			size, err := sizes.GetByID(u.SizeID)
			if err != nil {
				return err
			}
			if size == nil {
				return domain.ErrNotFound
			}
			prev := size.Stock
			if u.Stock != nil {
				if *u.Stock < 0 {
					return domain.ErrInvalidInput
				}
				size.Stock = *u.Stock
			}
			if u.Price != nil {
				if u.Price.IsNegative() {
					return domain.ErrInvalidInput
				}
				size.Price = *u.Price
			}
			if u.OldPrice != nil {
				if u.OldPrice.IsNegative() {
					return domain.ErrInvalidInput
				}
				size.OldPrice = *u.OldPrice
			}
			size.UpdatedAt = time.Now()
			if err := sizes.Update(size); err != nil {
				return err
			}
			toPush = append(toPush, pending{size: size, prev: prev})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.BatchUpdateResponse{Updated: len(toPush)}
	for _, p := range toPush {
		res := dto.SyncResultResponse{
			SizeID:    p.size.ID,
			SKU:       p.size.SKU,
			PrevStock: p.prev,
			NewStock:  p.size.Stock,
		}
		if uc.bridge != nil && p.size.Linked() {
			if err := uc.pushStock(ctx, p.size, p.prev); err != nil {
				return nil, err
			}
			if err := uc.pushPrice(ctx, p.size); err != nil {
				return nil, err
			}
			res.Pushed = true
			res.PushedAt = time.Now()
			out.Pushed++
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

func (uc *SyncUseCase) pushStock(ctx context.Context, size *entity.ProductSize, prev int) error {
	err := uc.bridge.PushStock(ctx, StockPush{
		Href:           size.MoySkladHref,
		AssortmentType: size.MoySkladType,
		SKU:            size.SKU,
		PrevQuantity:   prev,
		NewQuantity:    size.Stock,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("sku", size.SKU).Int("stock", size.Stock).Msg("empuje de stock falló")
		return err
	}
	uc.log.Info().Str("sku", size.SKU).Int("prev", prev).Int("stock", size.Stock).Msg("stock empujado")
	return nil
}

func (uc *SyncUseCase) pushPrice(ctx context.Context, size *entity.ProductSize) error {
	err := uc.bridge.PushPrice(ctx, PricePush{
		Href:           size.MoySkladHref,
		AssortmentType: size.MoySkladType,
		SKU:            size.SKU,
		Price:          size.Price,
		OldPrice:       size.OldPrice,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("sku", size.SKU).Msg("empuje de precio falló")
		return err
	}
	return nil
}
