// Package adapters contains thin translation layers for cross-module
// communication, so bounded contexts depend on their own interfaces
// instead of each other's types.
package adapters

import (
	"context"

	catalogrepo "bounce_rentals_backend/internal/catalog/repository"
	"bounce_rentals_backend/internal/notification"
	quotesrepo "bounce_rentals_backend/internal/quotes/repository"
	quotesservice "bounce_rentals_backend/internal/quotes/service"
)

// CatalogProductReader adapts the catalog repository to the quotes
// module's ProductNameResolver interface.
type CatalogProductReader struct {
	repo catalogrepo.Repository
}

// NewCatalogProductReader creates the adapter.
func NewCatalogProductReader(repo catalogrepo.Repository) *CatalogProductReader {
	return &CatalogProductReader{repo: repo}
}

// NamesBySlugs resolves product display names for the quote pipeline.
func (r *CatalogProductReader) NamesBySlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	return r.repo.NamesBySlugs(ctx, slugs)
}

var _ quotesservice.ProductNameResolver = (*CatalogProductReader)(nil)

// LeadNotifierAdapter bridges the quotes module to the notification module.
type LeadNotifierAdapter struct {
	notifier *notification.Notifier
}

// NewLeadNotifierAdapter creates the adapter.
func NewLeadNotifierAdapter(notifier *notification.Notifier) *LeadNotifierAdapter {
	return &LeadNotifierAdapter{notifier: notifier}
}

// NotifyLeadCreated maps the stored lead into the notifier's payload.
func (a *LeadNotifierAdapter) NotifyLeadCreated(ctx context.Context, lead quotesrepo.Lead) {
	data := notification.LeadData{
		QuoteNo:        lead.QuoteNo,
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		City:           lead.City,
		Address:        lead.Address,
		Notes:          lead.Notes,
		EventStartDate: lead.EventStartDate,
		EventEndDate:   lead.EventEndDate,
		TimeWindow:     lead.TimeWindow,
		ProductSlugs:   lead.ProductSlugs,
		ProductNames:   lead.ProductNames,
	}
	if lead.ProductSlug != nil {
		data.ProductSlug = *lead.ProductSlug
	}
	a.notifier.NotifyLeadCreated(ctx, data)
}

var _ quotesservice.Notifier = (*LeadNotifierAdapter)(nil)
