package infra

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"retailpos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending receipts as PDF attachments.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	breaker  *Breaker
}

// NewMailer returns nil when no SMTP host is configured.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker:  NewBreaker(3, 30*time.Second),
	}
}

// SendReceipt e-mails body to the recipient with pdf attached as filename.
// After repeated relay failures it returns ErrBreakerOpen without dialing.
func (m *Mailer) SendReceipt(to, subject, body, filename string, pdf []byte) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(pdf), filename, "application/pdf"); err != nil {
		return fmt.Errorf("mailer: attach PDF: %w", err)
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return m.breaker.Do(func() error {
		return e.Send(m.addr, auth)
	})
}
