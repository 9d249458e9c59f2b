// Package transport defines the request and response DTOs for the quotes module.
package transport

import (
	"time"

	"bounce_rentals_backend/internal/quotes/repository"
)

// QuoteRequest is the public quote submission payload.
// ProductSlug is the legacy single-select field kept for older clients;
// ProductSlugs is the multi-select replacement.
type QuoteRequest struct {
	ProductSlug    *string  `json:"productSlug"`
	ProductSlugs   []string `json:"productSlugs"`
	EventStartDate string   `json:"eventStartDate"`
	EventEndDate   string   `json:"eventEndDate"`
	TimeWindow     string   `json:"timeWindow"`
	City           string   `json:"city"`
	Address        string   `json:"address"`
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Notes          string   `json:"notes"`
	// Website is a honeypot field. Real users never see it; bots fill it.
	Website string `json:"website"`
}

// Issue is a single field-level validation problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// QuoteAck is the success payload returned to the submitting client.
type QuoteAck struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`

	LeadID  string `json:"leadId"`
	QuoteNo int64  `json:"quoteNo"`

	CreatedAt time.Time `json:"createdAt"`

	EventStartDate string `json:"eventStartDate"`
	EventEndDate   string `json:"eventEndDate"`
	TimeWindow     string `json:"timeWindow"`

	ProductName  *string  `json:"productName"`
	ProductNames []string `json:"productNames"`

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	City    string `json:"city"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Status  string `json:"status"`
}

// UpdateLeadRequest is the admin lead patch payload. Unknown fields are
// rejected by the handler before binding.
type UpdateLeadRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// LeadView is the admin-facing representation of a lead. The product name
// snapshot taken at submission time is echoed as-is; deleted or renamed
// products keep their historical names.
type LeadView struct {
	ID        string    `json:"id"`
	QuoteNo   int64     `json:"quoteNo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Status    string    `json:"status"`

	ProductSlug  *string  `json:"productSlug"`
	ProductName  *string  `json:"productName"`
	ProductSlugs []string `json:"productSlugs"`
	ProductNames []string `json:"productNames"`

	EventStartDate string `json:"eventStartDate"`
	EventEndDate   string `json:"eventEndDate"`
	TimeWindow     string `json:"timeWindow"`
	City           string `json:"city"`
	Address        string `json:"address"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Notes          string `json:"notes"`
}

// NewLeadView maps a stored lead to its admin representation, normalizing
// legacy rows that only carry the single product slug.
func NewLeadView(lead repository.Lead) LeadView {
	slugs := lead.ProductSlugs
	if len(slugs) == 0 && lead.ProductSlug != nil && *lead.ProductSlug != "" {
		slugs = []string{*lead.ProductSlug}
	}

	names := lead.ProductNames
	if len(names) == 0 {
		names = slugs
	}

	view := LeadView{
		ID:             lead.ID.String(),
		QuoteNo:        lead.QuoteNo,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
		Status:         lead.Status,
		ProductSlugs:   slugs,
		ProductNames:   names,
		EventStartDate: lead.EventStartDate,
		EventEndDate:   lead.EventEndDate,
		TimeWindow:     lead.TimeWindow,
		City:           lead.City,
		Address:        lead.Address,
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		Notes:          lead.Notes,
	}
	if len(slugs) > 0 {
		view.ProductSlug = &slugs[0]
	}
	if len(names) > 0 {
		view.ProductName = &names[0]
	}
	return view
}

// NewQuoteAck maps a freshly created lead to the submission acknowledgment.
func NewQuoteAck(lead repository.Lead) QuoteAck {
	ack := QuoteAck{
		Ok:             true,
		Message:        "Received",
		LeadID:         lead.ID.String(),
		QuoteNo:        lead.QuoteNo,
		CreatedAt:      lead.CreatedAt,
		EventStartDate: lead.EventStartDate,
		EventEndDate:   lead.EventEndDate,
		TimeWindow:     lead.TimeWindow,
		ProductNames:   lead.ProductNames,
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		City:           lead.City,
		Address:        lead.Address,
		Notes:          lead.Notes,
		Status:         lead.Status,
	}
	if len(lead.ProductNames) > 0 {
		ack.ProductName = &lead.ProductNames[0]
	}
	if ack.ProductNames == nil {
		ack.ProductNames = []string{}
	}
	return ack
}
