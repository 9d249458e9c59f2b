package notification

import (
	"context"
	"fmt"
	"strings"

	"bounce_rentals_backend/internal/email"
	domainevents "bounce_rentals_backend/internal/events"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/logger"
)

// Module owns the notifier and the event subscriptions.
type Module struct {
	notifier *Notifier
	log      *logger.Logger
}

func NewModule(sender email.Sender, adminTo string, log *logger.Logger) *Module {
	return &Module{
		notifier: NewNotifier(sender, adminTo, log),
		log:      log,
	}
}

// Notifier exposes the notifier for modules that send synchronously.
func (m *Module) Notifier() *Notifier {
	return m.notifier
}

// RegisterEventHandlers subscribes the module to the domain events it reacts to.
func (m *Module) RegisterEventHandlers(bus events.Bus) {
	bus.Subscribe(domainevents.EventTestimonialSubmitted, events.HandlerFunc(m.handleTestimonialSubmitted))
	bus.Subscribe(domainevents.EventLeadCreated, events.HandlerFunc(m.handleLeadCreated))
}

func (m *Module) handleTestimonialSubmitted(ctx context.Context, e events.Event) error {
	evt, ok := e.(domainevents.TestimonialSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", e, domainevents.EventTestimonialSubmitted)
	}

	if m.notifier.adminTo == "" {
		return nil
	}

	name := evt.Name
	if name == "" {
		name = "Anonymous"
	}
	msg := email.Message{
		To:      m.notifier.adminTo,
		Subject: fmt.Sprintf("New testimonial (%d/5) from %s", evt.Rating, name),
		Body: "A new testimonial is waiting for moderation:\n\n" +
			fmt.Sprintf("Rating: %d/5\n", evt.Rating) +
			fmt.Sprintf("Name: %s\n", orDash(evt.Name)) +
			fmt.Sprintf("City: %s\n", orDash(evt.City)) +
			fmt.Sprintf("Message: %s", orDash(strings.TrimSpace(evt.Message))),
	}
	if err := m.notifier.sender.Send(ctx, msg); err != nil {
		m.log.EmailError("admin_testimonial_alert", m.notifier.adminTo, err)
	}
	return nil
}

func (m *Module) handleLeadCreated(_ context.Context, e events.Event) error {
	evt, ok := e.(domainevents.LeadCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", e, domainevents.EventLeadCreated)
	}
	m.log.Info("lead created",
		"leadId", evt.LeadID,
		"quoteNo", evt.QuoteNo,
		"city", evt.City,
		"products", strings.Join(evt.ProductNames, ", "),
	)
	return nil
}
