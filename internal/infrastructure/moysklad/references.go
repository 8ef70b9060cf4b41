package moysklad

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Refs referencias por defecto para armar documentos: la organización y el
// almacén de la cuenta. La tienda trabaja con una sola organización y un solo
// almacén, así que se toma la primera fila de cada listado.
type Refs struct {
	Organization Meta
	Store        Meta
}

// ReferenceCache caché de Refs con TTL. Evita dos viajes a la API por cada
// documento de stock; Invalidate fuerza la recarga en el próximo Get (por
// ejemplo tras cambiar el token desde el panel).
type ReferenceCache struct {
	client *Client
	ttl    time.Duration

	mu        sync.Mutex
	refs      *Refs
	fetchedAt time.Time
}

// NewReferenceCache construye la caché con su TTL.
func NewReferenceCache(client *Client, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{client: client, ttl: ttl}
}

// Get devuelve las referencias, recargándolas si expiró el TTL o nunca se
// cargaron. Bajo concurrencia solo un caller recarga; el resto espera.
func (c *ReferenceCache) Get(ctx context.Context) (*Refs, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refs != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.refs, nil
	}

	org, err := c.firstMeta(ctx, "/entity/organization", "organización")
	if err != nil {
		return nil, err
	}
	store, err := c.firstMeta(ctx, "/entity/store", "almacén")
	if err != nil {
		return nil, err
	}

	c.refs = &Refs{Organization: org, Store: store}
	c.fetchedAt = time.Now()
	return c.refs, nil
}

// Invalidate descarta las referencias cacheadas.
func (c *ReferenceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs = nil
}

func (c *ReferenceCache) firstMeta(ctx context.Context, path, what string) (Meta, error) {
	var out listResponse
	resp, err := c.client.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "1").
		SetResult(&out).
		Get(path)
	if err != nil {
		return Meta{}, fmt.Errorf("moysklad: listar %s: %w", what, err)
	}
	if resp.IsError() {
		return Meta{}, apiErr("listar "+what, resp)
	}
	if len(out.Rows) == 0 {
		return Meta{}, fmt.Errorf("moysklad: la cuenta no tiene %s", what)
	}
	return out.Rows[0].Meta, nil
}
