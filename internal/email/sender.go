// Package email provides outbound email delivery.
package email

import (
	"context"

	"bounce_rentals_backend/platform/config"
)

// Message is a plain-text email to deliver.
type Message struct {
	To      string
	Subject string
	Body    string
	ReplyTo string // optional
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender silently drops all messages. Used when email is disabled.
type NoopSender struct{}

// Send implements Sender.
func (NoopSender) Send(_ context.Context, _ Message) error { return nil }

// NewSender builds the configured Sender. Email is delivered over SMTP;
// when EMAIL_ENABLED is false the NoopSender is returned so the rest of
// the application never has to care.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg)
}
