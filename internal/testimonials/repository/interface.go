package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status filters for the admin listing.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusHidden   = "hidden"
	StatusAll      = "all"
)

// Testimonial is a customer review. Optional free-text fields are stored
// as NULL rather than empty strings.
type Testimonial struct {
	ID         uuid.UUID
	Rating     int
	Message    *string
	Name       *string
	City       *string
	Source     string
	IsApproved bool
	IsHidden   bool
	IP         *string
	UserAgent  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateTestimonialParams carries the fields for a new testimonial.
type CreateTestimonialParams struct {
	Rating     int
	Message    *string
	Name       *string
	City       *string
	Source     string
	IsApproved bool
	IsHidden   bool
	IP         *string
	UserAgent  *string
}

// ModerateParams carries the admin moderation flags. Nil means unchanged.
type ModerateParams struct {
	ID         uuid.UUID
	IsApproved *bool
	IsHidden   *bool
}

// Repository defines persistence operations for testimonials.
type Repository interface {
	Create(ctx context.Context, params CreateTestimonialParams) (Testimonial, error)
	// ListPublic returns approved, not hidden testimonials, newest first.
	ListPublic(ctx context.Context, limit int) ([]Testimonial, error)
	// ListByStatus returns testimonials matching a status filter.
	ListByStatus(ctx context.Context, status string, limit int) ([]Testimonial, error)
	Moderate(ctx context.Context, params ModerateParams) (Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
