// internal/app/system/mailer/mailer.go
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Email is one outbound message. HTMLBody is optional; when empty the
// message goes out as plain text only.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds the SMTP settings a Mailer dials with.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer sends email over SMTP.
type Mailer struct {
	cfg Config
}

// New creates a Mailer. It does not dial; connectivity problems surface
// on Send.
func New(cfg Config) *Mailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg}
}

// Send delivers one email. Each call dials a fresh SMTP connection;
// alert volume is low enough that connection reuse buys nothing.
func (m *Mailer) Send(e Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternative("text/html", e.HTMLBody)
	}

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(msg)
}
