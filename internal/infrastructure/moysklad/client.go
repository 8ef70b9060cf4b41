// Package moysklad implementa el puente hacia la API remap de MoySklad:
// cliente HTTP, caché de referencias por defecto y empujes de stock/precio.
package moysklad

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kynshop/storefront-api/pkg/config"
)

// Client cliente HTTP autenticado contra la API remap 1.2.
type Client struct {
	http *resty.Client
}

// NewClient construye el cliente con base URL y token bearer.
func NewClient(cfg config.MoySkladConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/json;charset=utf-8").
		SetTimeout(10 * time.Second)
	return &Client{http: http}
}

// apiErr traduce una respuesta no-2xx a un error con el detalle de la API.
func apiErr(op string, resp *resty.Response) error {
	var body apiError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Errors) > 0 {
		return fmt.Errorf("moysklad: %s: %s (code %d, http %d)",
			op, body.Errors[0].Error, body.Errors[0].Code, resp.StatusCode())
	}
	return fmt.Errorf("moysklad: %s: http %d", op, resp.StatusCode())
}
