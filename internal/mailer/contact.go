package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrInvalidContact is returned for a missing message or malformed address.
var ErrInvalidContact = errors.New("invalid contact form")

// Contact relays contact-form submissions to the shop mailbox.
type Contact struct {
	sender    Sender // Mail transport
	from      string // Shop sender address
	recipient string // Shop mailbox
}

// NewContact returns a Contact that sends as from and delivers to recipient.
func NewContact(sender Sender, from, recipient string) *Contact {
	return &Contact{sender: sender, from: from, recipient: recipient}
}

// Submit forwards the message to the shop and then acknowledges the visitor.
// The acknowledgement is only sent once the forward succeeded, and a failed
// acknowledgement is logged rather than failing the submission.
func (c *Contact) Submit(ctx context.Context, email, message string) error {
	message = strings.TrimSpace(message) // Ignore surrounding whitespace
	if message == "" {
		return ErrInvalidContact
	}
	if _, err := mail.ParseAddress(email); err != nil { // Validate the visitor address
		return ErrInvalidContact
	}

	err := c.sender.Send(ctx, Message{
		From:    c.from,
		ReplyTo: email, // Replies go to the visitor
		To:      c.recipient,
		Subject: "Contact form message",
		Body:    fmt.Sprintf("Message from %s: %s", email, message),
	})
	if err != nil {
		return fmt.Errorf("forward contact message: %w", err)
	}

	err = c.sender.Send(ctx, Message{
		From:    c.from,
		To:      email, // Acknowledge the visitor
		Subject: "Thank you for your message",
		Body:    "We have received your response. We will revert back as soon as possible.",
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"email": email,       // Visitor address
			"error": err.Error(), // Error message
		}).Warn("Contact acknowledgement failed")
	}
	return nil
}
