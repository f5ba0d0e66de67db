package infra

import (
	"fmt"
	"net/smtp"

	"dxy/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for plain-text notifications.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Configurado reports whether an SMTP host was provided. Without it the
// email worker drops jobs with a warning instead of retrying forever.
func (m *Mailer) Configurado() bool { return m.host != "" }

// SendTexto sends a plain-text email.
func (m *Mailer) SendTexto(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
