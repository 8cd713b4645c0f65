package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/Strife-cyber/agro/internal/config"
)

// Mailer wraps SMTP configuration for outgoing notification emails.
// Sends go through a circuit breaker so a down SMTP relay fast-fails
// instead of stalling every notification worker.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Send delivers a plain-text notification email.
func (m *Mailer) Send(to, subject, body string) error {
	return m.cb.Execute(func() error {
		e := email.NewEmail()
		e.From = m.user
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		return e.Send(m.addr, auth)
	})
}

// BreakerState exposes the circuit breaker state for the health endpoint.
func (m *Mailer) BreakerState() string { return m.cb.State().String() }
