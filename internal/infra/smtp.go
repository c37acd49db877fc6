package infra

import (
	"fmt"
	"net/smtp"

	"github.com/AnnCris/ROYDENT/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound mail. Sends go through a
// circuit breaker so a dead SMTP server cannot pile up worker goroutines.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	cb       *CircuitBreaker
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		cb:       NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Send delivers a plain-text email. Returns ErrCircuitOpen without touching
// the network when the breaker has tripped.
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

// SendBienvenida sends the post-registration welcome email.
func (m *Mailer) SendBienvenida(to, nombreCompleto, nombreUsuario string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nTu cuenta en Roy Representaciones fue creada exitosamente.\n"+
			"Nombre de usuario: %s\n\nSaludos,\nRoy Representaciones",
		nombreCompleto, nombreUsuario,
	)
	return m.Send(to, "Bienvenido a Roy Representaciones", body)
}
