// Package service implements the quote intake pipeline and admin lead operations.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainevents "bounce_rentals_backend/internal/events"
	"bounce_rentals_backend/internal/quotes/repository"
	"bounce_rentals_backend/internal/quotes/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/logger"
	"bounce_rentals_backend/platform/phone"
	"bounce_rentals_backend/platform/sanitize"
)

const (
	// adminListLimit caps the admin lead listing.
	adminListLimit = 500
	// maxNotesLength bounds the admin-editable notes field.
	maxNotesLength = 5000
)

// ProductNameResolver looks up display names for product slugs.
// Slugs without a matching product are simply absent from the result.
type ProductNameResolver interface {
	NamesBySlugs(ctx context.Context, slugs []string) (map[string]string, error)
}

// Notifier sends the post-persist quote emails. Implementations must not
// fail the request; delivery problems are theirs to log.
type Notifier interface {
	NotifyLeadCreated(ctx context.Context, lead repository.Lead)
}

// Service implements quote intake and lead management.
type Service struct {
	repo     repository.Repository
	products ProductNameResolver
	notifier Notifier
	bus      events.Bus
	log      *logger.Logger
}

// New creates the quotes service.
func New(repo repository.Repository, products ProductNameResolver, notifier Notifier, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		notifier: notifier,
		bus:      bus,
		log:      log,
	}
}

// SubmitQuote persists a validated submission and fires the notification
// emails. The caller is expected to have run ValidateQuote and the honeypot
// check already; this method only normalizes and writes.
func (s *Service) SubmitQuote(ctx context.Context, req transport.QuoteRequest) (repository.Lead, error) {
	merged := MergeProductSlugs(req.ProductSlugs, req.ProductSlug)

	names, err := s.resolveNames(ctx, merged)
	if err != nil {
		return repository.Lead{}, err
	}

	start, end := NormalizeDateRange(req.EventStartDate, req.EventEndDate)

	params := repository.CreateLeadParams{
		ProductSlugs:   merged,
		ProductNames:   names,
		EventStartDate: start,
		EventEndDate:   end,
		TimeWindow:     req.TimeWindow,
		City:           strings.TrimSpace(req.City),
		Address:        strings.TrimSpace(req.Address),
		Name:           strings.TrimSpace(req.Name),
		Phone:          phone.NormalizeE164(strings.TrimSpace(req.Phone)),
		Email:          strings.TrimSpace(req.Email),
		Notes:          sanitize.Text(req.Notes),
	}
	if len(merged) > 0 {
		params.ProductSlug = &merged[0]
	}

	lead, err := s.repo.CreateLead(ctx, params)
	if err != nil {
		s.log.DatabaseError("create_lead", err)
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to store quote request", err)
	}

	// Emails go out synchronously before the response; failures are logged
	// inside the notifier and never surface here. The lead is committed.
	s.notifier.NotifyLeadCreated(ctx, lead)

	event := domainevents.LeadCreatedEvent{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID.String(),
		QuoteNo:      lead.QuoteNo,
		Name:         lead.Name,
		City:         lead.City,
		ProductNames: lead.ProductNames,
	}
	s.bus.Publish(ctx, event)

	return lead, nil
}

// ListLeads returns the newest leads for the admin back office.
func (s *Service) ListLeads(ctx context.Context) ([]transport.LeadView, error) {
	leads, err := s.repo.ListLeads(ctx, adminListLimit)
	if err != nil {
		s.log.DatabaseError("list_leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	views := make([]transport.LeadView, 0, len(leads))
	for _, lead := range leads {
		views = append(views, transport.NewLeadView(lead))
	}
	return views, nil
}

// UpdateLead patches a lead's status and/or notes.
func (s *Service) UpdateLead(ctx context.Context, id string, req transport.UpdateLeadRequest) (transport.LeadView, error) {
	leadID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return transport.LeadView{}, apperr.BadRequest("Missing id")
	}

	if req.Status == nil && req.Notes == nil {
		return transport.LeadView{}, apperr.BadRequest("Nothing to update")
	}

	params := repository.UpdateLeadParams{ID: leadID}
	if req.Status != nil {
		status := NormalizeStatus(strings.TrimSpace(*req.Status))
		if status == "" {
			return transport.LeadView{}, apperr.Validation("Invalid input")
		}
		params.Status = &status
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if len(notes) > maxNotesLength {
			return transport.LeadView{}, apperr.Validation("Invalid input")
		}
		params.Notes = &notes
	}

	lead, err := s.repo.UpdateLead(ctx, params)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.LeadView{}, err
		}
		s.log.DatabaseError("update_lead", err)
		return transport.LeadView{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}
	return transport.NewLeadView(lead), nil
}

// resolveNames snapshots product display names for the canonical slug list.
// Unknown slugs fall back to the slug itself so the lead still renders.
func (s *Service) resolveNames(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return []string{}, nil
	}

	bySlug, err := s.products.NamesBySlugs(ctx, slugs)
	if err != nil {
		s.log.DatabaseError("resolve_product_names", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to resolve products", err)
	}

	names := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if name, ok := bySlug[slug]; ok && name != "" {
			names = append(names, name)
			continue
		}
		names = append(names, slug)
	}
	return names, nil
}
