// Package transport defines the request and response DTOs for testimonials.
package transport

import (
	"time"

	"bounce_rentals_backend/internal/testimonials/repository"
)

// Issue is a single field-level validation problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SubmitTestimonialRequest is the public submission payload.
type SubmitTestimonialRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"omitempty,max=2000"`
	Name    string `json:"name" validate:"omitempty,max=120"`
	City    string `json:"city" validate:"omitempty,max=120"`
	// Website is a honeypot field, same trick as the quote form.
	Website string `json:"website"`
}

// AdminCreateTestimonialRequest is the manual admin creation payload.
type AdminCreateTestimonialRequest struct {
	Rating     int    `json:"rating"`
	Message    string `json:"message"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Source     string `json:"source"`
	IsApproved bool   `json:"isApproved"`
	IsHidden   bool   `json:"isHidden"`
}

// ModerateTestimonialRequest flips the moderation flags.
type ModerateTestimonialRequest struct {
	IsApproved *bool `json:"isApproved"`
	IsHidden   *bool `json:"isHidden"`
}

// PublicTestimonialView exposes only the fields shown on the site.
type PublicTestimonialView struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Message   *string   `json:"message"`
	Name      *string   `json:"name"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// TestimonialView is the full admin-facing representation.
type TestimonialView struct {
	ID         string    `json:"id"`
	Rating     int       `json:"rating"`
	Message    *string   `json:"message"`
	Name       *string   `json:"name"`
	City       *string   `json:"city"`
	Source     string    `json:"source"`
	IsApproved bool      `json:"isApproved"`
	IsHidden   bool      `json:"isHidden"`
	IP         *string   `json:"ip"`
	UserAgent  *string   `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewPublicView maps a testimonial to its public representation.
func NewPublicView(t repository.Testimonial) PublicTestimonialView {
	return PublicTestimonialView{
		ID:        t.ID.String(),
		Rating:    t.Rating,
		Message:   t.Message,
		Name:      t.Name,
		City:      t.City,
		CreatedAt: t.CreatedAt,
	}
}

// NewView maps a testimonial to its admin representation.
func NewView(t repository.Testimonial) TestimonialView {
	return TestimonialView{
		ID:         t.ID.String(),
		Rating:     t.Rating,
		Message:    t.Message,
		Name:       t.Name,
		City:       t.City,
		Source:     t.Source,
		IsApproved: t.IsApproved,
		IsHidden:   t.IsHidden,
		IP:         t.IP,
		UserAgent:  t.UserAgent,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
