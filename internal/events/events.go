// Package events defines the domain events exchanged between modules.
package events

import (
	"bounce_rentals_backend/platform/events"
)

const (
	// EventLeadCreated fires after a quote request has been persisted.
	EventLeadCreated = "lead.created"
	// EventTestimonialSubmitted fires after a public testimonial submission
	// has been persisted (pending moderation).
	EventTestimonialSubmitted = "testimonial.submitted"
)

// LeadCreatedEvent is published once a quote request lead exists in the store.
// Email delivery does not ride on this event; it is for decoupled consumers
// such as the audit trail.
type LeadCreatedEvent struct {
	events.BaseEvent
	LeadID       string   `json:"leadId"`
	QuoteNo      int64    `json:"quoteNo"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	ProductNames []string `json:"productNames"`
}

func (e LeadCreatedEvent) EventName() string { return EventLeadCreated }

// TestimonialSubmittedEvent is published when a visitor submits a testimonial.
type TestimonialSubmittedEvent struct {
	events.BaseEvent
	TestimonialID string `json:"testimonialId"`
	Rating        int    `json:"rating"`
	Name          string `json:"name"`
	City          string `json:"city"`
	Message       string `json:"message"`
}

func (e TestimonialSubmittedEvent) EventName() string { return EventTestimonialSubmitted }
