// Package telegram implementa el login por Telegram: verificación del payload
// del widget y envío de mensajes por la API del bot.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kynshop/storefront-api/internal/application/auth"
	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
)

// maxWidgetAge antigüedad máxima aceptada del payload del widget.
const maxWidgetAge = 5 * time.Minute

var _ auth.WidgetVerifier = (*LoginVerifier)(nil)

// LoginVerifier valida la firma del widget de login de Telegram.
// El protocolo del widget: data-check-string con los campos ordenados
// alfabéticamente como "clave=valor" unidos por \n, firmado con HMAC-SHA256
// cuya clave es SHA256(botToken).
type LoginVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewLoginVerifier deriva la clave de verificación del token del bot.
func NewLoginVerifier(botToken string) *LoginVerifier {
	key := sha256.Sum256([]byte(botToken))
	return &LoginVerifier{secret: key[:], now: time.Now}
}

// WithClock reemplaza el reloj (tests de frescura).
func (v *LoginVerifier) WithClock(now func() time.Time) *LoginVerifier {
	v.now = now
	return v
}

// Verify comprueba firma y frescura del payload.
func (v *LoginVerifier) Verify(in dto.TelegramWidgetRequest) error {
	if in.Hash == "" || in.ID == 0 || in.AuthDate == 0 {
		return domain.ErrUnauthorized
	}
	age := v.now().Sub(time.Unix(in.AuthDate, 0))
	if age > maxWidgetAge || age < -time.Minute {
		return domain.ErrUnauthorized
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(checkString(in)))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(in.Hash))) {
		return domain.ErrUnauthorized
	}
	return nil
}

// checkString arma el data-check-string: campos presentes (sin hash) como
// "clave=valor", ordenados alfabéticamente y unidos por \n.
func checkString(in dto.TelegramWidgetRequest) string {
	pairs := []string{
		fmt.Sprintf("auth_date=%d", in.AuthDate),
		fmt.Sprintf("id=%d", in.ID),
	}
	if in.FirstName != "" {
		pairs = append(pairs, "first_name="+in.FirstName)
	}
	if in.LastName != "" {
		pairs = append(pairs, "last_name="+in.LastName)
	}
	if in.PhotoURL != "" {
		pairs = append(pairs, "photo_url="+in.PhotoURL)
	}
	if in.Username != "" {
		pairs = append(pairs, "username="+in.Username)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}
