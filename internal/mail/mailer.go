package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/spec-kit/marketplace-service/internal/config"
)

// Message is a transactional email ready for the relay.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional email. Delivery is best-effort; callers
// decide whether a failed send is fatal.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer builds a mailer from mail configuration.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers the message through the configured relay.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", m.from)
	fmt.Fprintf(&body, "To: %s\r\n", msg.To)
	fmt.Fprintf(&body, "Subject: %s\r\n", msg.Subject)
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(body.String()))
}
