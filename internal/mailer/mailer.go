// Package mailer delivers contact-form mail over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Message is a plain-text email.
type Message struct {
	From    string // Sender address
	ReplyTo string // Optional Reply-To address
	To      string // Recipient address
	Subject string // Subject line
	Body    string // Plain-text body
}

// Sender delivers a message or fails with an error.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds SMTP server settings.
type SMTPConfig struct {
	Host     string // SMTP server host
	Port     int    // SMTP server port
	Username string // SMTP username
	Password string // SMTP password
}

// SMTPSender sends through an authenticated SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig // Relay settings
}

// NewSMTPSender returns a Sender for cfg. No connection is opened until Send.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dials the relay and delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg() // Create a new message
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)                        // Set subject
	m.SetBodyString(mail.TypeTextPlain, msg.Body) // Set plain-text body

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory), // Refuse plaintext relays
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil { // Connect and send
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
