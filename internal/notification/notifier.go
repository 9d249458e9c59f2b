// Package notification sends transactional emails in response to domain
// activity. Quote confirmations are sent synchronously after persistence;
// testimonial alerts arrive through the event bus.
package notification

import (
	"context"
	"fmt"
	"strings"

	"bounce_rentals_backend/internal/email"
	"bounce_rentals_backend/platform/logger"
)

// LeadData carries the persisted lead fields the notifier needs to compose
// the confirmation and admin alert emails.
type LeadData struct {
	QuoteNo        int64
	Name           string
	Phone          string
	Email          string
	City           string
	Address        string
	Notes          string
	EventStartDate string
	EventEndDate   string
	TimeWindow     string
	ProductSlug    string
	ProductSlugs   []string
	ProductNames   []string
}

// Notifier composes and sends quote and testimonial emails.
// A send failure never propagates to the caller; the lead is already
// persisted and the request must still succeed.
type Notifier struct {
	sender  email.Sender
	adminTo string
	log     *logger.Logger
}

func NewNotifier(sender email.Sender, adminTo string, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, adminTo: adminTo, log: log}
}

// NotifyLeadCreated sends the customer confirmation (when the lead left an
// email address) and the admin alert (when ADMIN_NOTIFY_TO is configured).
// Each send is attempted independently.
func (n *Notifier) NotifyLeadCreated(ctx context.Context, lead LeadData) {
	eventText := fmt.Sprintf("%s (%s)", FormatEventRange(lead.EventStartDate, lead.EventEndDate), lead.TimeWindow)
	productsText := formatProducts(lead)

	if to := strings.TrimSpace(lead.Email); to != "" {
		msg := email.Message{
			To:      to,
			Subject: fmt.Sprintf("We received your quote #%d", lead.QuoteNo),
			Body: "✅ Quote received!\n\n" +
				fmt.Sprintf("Quote #: %d\n", lead.QuoteNo) +
				fmt.Sprintf("Event: %s\n", eventText) +
				fmt.Sprintf("Products: %s\n\n", productsText) +
				"We’ll contact you soon.",
		}
		if err := n.sender.Send(ctx, msg); err != nil {
			n.log.EmailError("quote_confirmation", to, err)
		}
	}

	if n.adminTo != "" {
		name := lead.Name
		if name == "" {
			name = "Unknown"
		}
		msg := email.Message{
			To:      n.adminTo,
			Subject: fmt.Sprintf("New quote #%d — %s", lead.QuoteNo, name),
			ReplyTo: strings.TrimSpace(lead.Email),
			Body: "New quote received:\n\n" +
				fmt.Sprintf("Quote #: %d\n", lead.QuoteNo) +
				fmt.Sprintf("Name: %s\n", lead.Name) +
				fmt.Sprintf("Phone: %s\n", lead.Phone) +
				fmt.Sprintf("Email: %s\n", lead.Email) +
				fmt.Sprintf("Event: %s\n", eventText) +
				fmt.Sprintf("City: %s\n", lead.City) +
				fmt.Sprintf("Address: %s\n", lead.Address) +
				fmt.Sprintf("Products: %s\n", productsText) +
				fmt.Sprintf("Notes: %s", orDash(lead.Notes)),
		}
		if err := n.sender.Send(ctx, msg); err != nil {
			n.log.EmailError("admin_quote_alert", n.adminTo, err)
		}
	}
}

// FormatEventRange renders a start/end date pair for email bodies.
// Both empty yields "-", a single side yields that side, an equal pair
// collapses to a single date.
func FormatEventRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "-"
	case end == "":
		return start
	case start == "":
		return end
	case start == end:
		return start
	default:
		return start + " → " + end
	}
}

func formatProducts(lead LeadData) string {
	if len(lead.ProductNames) > 0 {
		return strings.Join(lead.ProductNames, ", ")
	}
	if len(lead.ProductSlugs) > 0 {
		return strings.Join(lead.ProductSlugs, ", ")
	}
	return orDash(lead.ProductSlug)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
