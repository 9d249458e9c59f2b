package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"bounce_rentals_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements Sender using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host   string
	port   int
	secure bool
	user   string
	pass   string
	from   string
}

// NewSMTPSender creates a new SMTPSender from SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		host:   cfg.GetSMTPHost(),
		port:   cfg.GetSMTPPort(),
		secure: cfg.GetSMTPSecure(),
		user:   cfg.GetSMTPUser(),
		pass:   cfg.GetSMTPPass(),
		from:   cfg.GetMailFrom(),
	}
}

// Send delivers one plain-text message. Missing SMTP credentials are a hard
// failure: the caller decides whether that sinks the request or just a log line.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.host == "" || s.user == "" || s.pass == "" {
		return fmt.Errorf("smtp env vars missing (SMTP_HOST/SMTP_USER/SMTP_PASS)")
	}

	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("smtp reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.user),
		gomail.WithPassword(s.pass),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.secure {
		// Implicit TLS, typically port 465.
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
