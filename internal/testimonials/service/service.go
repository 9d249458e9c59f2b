// Package service implements testimonial submission and moderation logic.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainevents "bounce_rentals_backend/internal/events"
	"bounce_rentals_backend/internal/testimonials/repository"
	"bounce_rentals_backend/internal/testimonials/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/logger"
	"bounce_rentals_backend/platform/sanitize"
)

const (
	defaultPublicLimit = 12
	maxPublicLimit     = 50
	defaultAdminLimit  = 50
	maxAdminLimit      = 200

	sourceWeb   = "web"
	sourceAdmin = "admin"
)

// Service implements testimonial operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates the testimonials service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Submit stores a public submission. It always lands unapproved; the admin
// decides what goes on the site. The caller has already validated the
// payload and handled the honeypot.
func (s *Service) Submit(ctx context.Context, req transport.SubmitTestimonialRequest, ip, userAgent string) error {
	params := repository.CreateTestimonialParams{
		Rating:     req.Rating,
		Message:    cleanOptional(req.Message),
		Name:       cleanOptional(req.Name),
		City:       cleanOptional(req.City),
		Source:     sourceWeb,
		IsApproved: false,
		IsHidden:   false,
		IP:         cleanOptional(ip),
		UserAgent:  cleanOptional(userAgent),
	}

	created, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create_testimonial", err)
		return apperr.Wrap(apperr.KindInternal, "failed to store testimonial", err)
	}

	event := domainevents.TestimonialSubmittedEvent{
		BaseEvent:     events.NewBaseEvent(),
		TestimonialID: created.ID.String(),
		Rating:        created.Rating,
		Name:          derefOr(created.Name, ""),
		City:          derefOr(created.City, ""),
		Message:       derefOr(created.Message, ""),
	}
	s.bus.Publish(ctx, event)

	return nil
}

// ListPublic returns approved testimonials for the site.
func (s *Service) ListPublic(ctx context.Context, limit int) ([]transport.PublicTestimonialView, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}

	items, err := s.repo.ListPublic(ctx, limit)
	if err != nil {
		s.log.DatabaseError("list_testimonials", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list testimonials", err)
	}

	views := make([]transport.PublicTestimonialView, 0, len(items))
	for _, t := range items {
		views = append(views, transport.NewPublicView(t))
	}
	return views, nil
}

// ListAdmin returns testimonials for the moderation queue.
// Unknown status values fall back to pending.
func (s *Service) ListAdmin(ctx context.Context, status string, limit int) ([]transport.TestimonialView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case repository.StatusApproved, repository.StatusHidden, repository.StatusAll:
	default:
		status = repository.StatusPending
	}

	if limit <= 0 {
		limit = defaultAdminLimit
	}
	if limit > maxAdminLimit {
		limit = maxAdminLimit
	}

	items, err := s.repo.ListByStatus(ctx, status, limit)
	if err != nil {
		s.log.DatabaseError("list_testimonials", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list testimonials", err)
	}

	views := make([]transport.TestimonialView, 0, len(items))
	for _, t := range items {
		views = append(views, transport.NewView(t))
	}
	return views, nil
}

// AdminCreate stores a testimonial entered manually from the back office.
func (s *Service) AdminCreate(ctx context.Context, req transport.AdminCreateTestimonialRequest) (transport.TestimonialView, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return transport.TestimonialView{}, apperr.Validation("rating must be between 1 and 5")
	}

	params := repository.CreateTestimonialParams{
		Rating:     req.Rating,
		Message:    cleanOptional(req.Message),
		Name:       cleanOptional(req.Name),
		City:       cleanOptional(req.City),
		Source:     defaultString(req.Source, sourceAdmin),
		IsApproved: req.IsApproved,
		IsHidden:   req.IsHidden,
	}

	created, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create_testimonial", err)
		return transport.TestimonialView{}, apperr.Wrap(apperr.KindInternal, "failed to store testimonial", err)
	}
	return transport.NewView(created), nil
}

// Moderate updates the approval and visibility flags. Hiding a testimonial
// without an explicit approval decision also unapproves it, so the hidden
// queue never leaks back into the public list on unhide alone.
func (s *Service) Moderate(ctx context.Context, id string, req transport.ModerateTestimonialRequest) (transport.TestimonialView, error) {
	testimonialID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return transport.TestimonialView{}, apperr.BadRequest("id is required")
	}

	params := repository.ModerateParams{
		ID:         testimonialID,
		IsApproved: req.IsApproved,
		IsHidden:   req.IsHidden,
	}
	if req.IsHidden != nil && *req.IsHidden && req.IsApproved == nil {
		unapproved := false
		params.IsApproved = &unapproved
	}

	updated, err := s.repo.Moderate(ctx, params)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.TestimonialView{}, err
		}
		s.log.DatabaseError("moderate_testimonial", err)
		return transport.TestimonialView{}, apperr.Wrap(apperr.KindInternal, "failed to update testimonial", err)
	}
	return transport.NewView(updated), nil
}

// Delete removes a testimonial permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	testimonialID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperr.BadRequest("id is required")
	}

	if err := s.repo.Delete(ctx, testimonialID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.log.DatabaseError("delete_testimonial", err)
		return apperr.Wrap(apperr.KindInternal, "failed to delete testimonial", err)
	}
	return nil
}

// cleanOptional trims and sanitizes a free-text field, mapping empty
// strings to NULL so the table stays clean.
func cleanOptional(s string) *string {
	cleaned := sanitize.Text(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func defaultString(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}
