package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is a persisted quote request.
type Lead struct {
	ID      uuid.UUID
	QuoteNo int64

	// ProductSlug holds the first canonical slug for older clients.
	ProductSlug  *string
	ProductSlugs []string
	// ProductNames is the display-name snapshot taken at submission time.
	ProductNames []string

	EventStartDate string
	EventEndDate   string
	TimeWindow     string

	City    string
	Address string
	Name    string
	Phone   string
	Email   string
	Notes   string

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateLeadParams carries the normalized fields for a new lead.
type CreateLeadParams struct {
	ProductSlug    *string
	ProductSlugs   []string
	ProductNames   []string
	EventStartDate string
	EventEndDate   string
	TimeWindow     string
	City           string
	Address        string
	Name           string
	Phone          string
	Email          string
	Notes          string
}

// UpdateLeadParams carries the admin-editable fields. Nil means unchanged.
type UpdateLeadParams struct {
	ID     uuid.UUID
	Status *string
	Notes  *string
}

// Repository defines persistence operations for leads.
type Repository interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error)
	ListLeads(ctx context.Context, limit int) ([]Lead, error)
	UpdateLead(ctx context.Context, params UpdateLeadParams) (Lead, error)
}
