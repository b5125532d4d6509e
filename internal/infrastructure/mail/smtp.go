// Package mail envía correos por SMTP (faturas en PDF a clientes y proveedores).
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/pkg/config"
)

var _ billing.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa billing.Mailer con jordan-wright/email.
type SMTPMailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
}

// NewSMTPMailer construye el mailer. Si From está vacío se usa el usuario SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &SMTPMailer{
		host:     cfg.Host,
		user:     cfg.User,
		password: cfg.Password,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Send envía el mensaje. net/smtp no acepta contexto: solo se respeta una cancelación previa.
func (m *SMTPMailer) Send(ctx context.Context, msg billing.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := m.build(msg)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: enviar: %w", err)
	}
	return nil
}

func (m *SMTPMailer) build(msg billing.Message) (*email.Email, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("mailer: sin destinatarios")
	}
	e := email.NewEmail()
	e.From = m.from
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Content), a.Filename, a.ContentType); err != nil {
			return nil, fmt.Errorf("mailer: adjuntar %s: %w", a.Filename, err)
		}
	}
	return e, nil
}
