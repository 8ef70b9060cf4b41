// Package email entrega tokens de verificación por SMTP: código corto para
// verificar el email y magic link para el password reset.
package email

import (
	"context"
	"fmt"
	"net/url"

	gomail "gopkg.in/gomail.v2"

	"github.com/kynshop/storefront-api/internal/application/token"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/pkg/config"
)

var _ token.Channel = (*Mailer)(nil)

// Mailer canal de entrega de tokens por correo.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewMailer construye el canal con la configuración SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.From,
		baseURL: cfg.BaseURL,
	}
}

// Send entrega el token según su propósito. El asunto y el cuerpo cambian;
// el transporte es el mismo.
func (m *Mailer) Send(_ context.Context, destination string, issued token.Issued) error {
	var subject, body string
	switch issued.Purpose {
	case entity.PurposeEmailVerify:
		subject = "Confirma tu correo"
		body = fmt.Sprintf(
			"<p>Tu código de verificación es <b>%s</b>.</p>"+
				"<p>También puedes confirmar con un clic: <a href=%q>Confirmar correo</a></p>"+
				"<p>El código vence a las %s.</p>",
			issued.Code,
			m.link("/auth/verify", issued.Token),
			issued.ExpiresAt.Format("15:04"),
		)
	case entity.PurposePasswordReset:
		subject = "Restablecer contraseña"
		body = fmt.Sprintf(
			"<p>Para restablecer tu contraseña entra acá: <a href=%q>Restablecer contraseña</a></p>"+
				"<p>El enlace vence a las %s. Si no lo pediste, ignora este correo.</p>",
			m.link("/auth/reset", issued.Token),
			issued.ExpiresAt.Format("15:04"),
		)
	default:
		return fmt.Errorf("email: propósito sin plantilla: %s", issued.Purpose)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", destination)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email: enviar a %s: %w", destination, err)
	}
	return nil
}

// link arma el magic link sobre la base pública de la tienda.
func (m *Mailer) link(path, tok string) string {
	return m.baseURL + path + "?token=" + url.QueryEscape(tok)
}
