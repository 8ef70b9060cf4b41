package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kynshop/storefront-api/internal/application/auth"
)

var _ auth.Notifier = (*BotClient)(nil)

// BotClient cliente mínimo de la Bot API (solo sendMessage).
type BotClient struct {
	http *resty.Client
}

// NewBotClient construye el cliente del bot. baseURL permite apuntar a un
// servidor de prueba; vacío usa la API oficial.
func NewBotClient(botToken, baseURL string) *BotClient {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	http := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", baseURL, botToken)).
		SetTimeout(10 * time.Second)
	return &BotClient{http: http}
}

// SendMessage envía un texto a un chat.
func (c *BotClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"chat_id": chatID, "text": text}).
		Post("/sendMessage")
	if err != nil {
		return fmt.Errorf("telegram: sendMessage: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram: sendMessage: http %d", resp.StatusCode())
	}
	return nil
}
