package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
)

const testBotToken = "123456:ABC-test-token"

// sign firma un payload como lo haría Telegram (para armar casos válidos).
func sign(in dto.TelegramWidgetRequest) string {
	key := sha256.Sum256([]byte(testBotToken))
	mac := hmac.New(sha256.New, key[:])
	mac.Write([]byte(checkString(in)))
	return hex.EncodeToString(mac.Sum(nil))
}

func validWidget(now time.Time) dto.TelegramWidgetRequest {
	in := dto.TelegramWidgetRequest{
		ID:        987654321,
		FirstName: "Ana",
		Username:  "ana_kyn",
		AuthDate:  now.Unix(),
	}
	in.Hash = sign(in)
	return in
}

func TestVerify_PayloadFirmado(t *testing.T) {
	now := time.Now()
	v := NewLoginVerifier(testBotToken).WithClock(func() time.Time { return now })

	require.NoError(t, v.Verify(validWidget(now)))
}

func TestVerify_FirmaAlterada(t *testing.T) {
	now := time.Now()
	v := NewLoginVerifier(testBotToken).WithClock(func() time.Time { return now })

	in := validWidget(now)
	in.Username = "otro_usuario" // cambia el payload después de firmar
	assert.ErrorIs(t, v.Verify(in), domain.ErrUnauthorized)
}

func TestVerify_HashIncorrecto(t *testing.T) {
	now := time.Now()
	v := NewLoginVerifier(testBotToken).WithClock(func() time.Time { return now })

	in := validWidget(now)
	in.Hash = "deadbeef"
	assert.ErrorIs(t, v.Verify(in), domain.ErrUnauthorized)
}

func TestVerify_PayloadViejo(t *testing.T) {
	now := time.Now()
	v := NewLoginVerifier(testBotToken).WithClock(func() time.Time { return now })

	in := validWidget(now.Add(-10 * time.Minute))
	assert.ErrorIs(t, v.Verify(in), domain.ErrUnauthorized, "auth_date fuera de la ventana de frescura")
}

func TestVerify_CamposOpcionalesAusentes(t *testing.T) {
	now := time.Now()
	v := NewLoginVerifier(testBotToken).WithClock(func() time.Time { return now })

	in := dto.TelegramWidgetRequest{ID: 42, AuthDate: now.Unix()}
	in.Hash = sign(in)
	require.NoError(t, v.Verify(in), "el data-check-string solo incluye campos presentes")
}

func TestVerify_SinHash(t *testing.T) {
	v := NewLoginVerifier(testBotToken)
	assert.ErrorIs(t, v.Verify(dto.TelegramWidgetRequest{ID: 1, AuthDate: time.Now().Unix()}), domain.ErrUnauthorized)
}
