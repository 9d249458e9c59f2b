// Package repository implements lead persistence on PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bounce_rentals_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, quote_no, product_slug, product_slugs, product_names,
		event_start_date, event_end_date, time_window,
		city, address, name, phone, email, notes, status, created_at, updated_at`

// Repo implements the leads repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateLead inserts a lead. quote_no is assigned from a sequence so two
// concurrent submissions never share a number.
func (r *Repo) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	query := `
		INSERT INTO leads (
			product_slug, product_slugs, product_names,
			event_start_date, event_end_date, time_window,
			city, address, name, phone, email, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		params.ProductSlug, params.ProductSlugs, params.ProductNames,
		params.EventStartDate, params.EventEndDate, params.TimeWindow,
		params.City, params.Address, params.Name, params.Phone, params.Email, params.Notes,
	)
	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// ListLeads returns leads newest first, capped at limit.
func (r *Repo) ListLeads(ctx context.Context, limit int) ([]Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// UpdateLead patches status and/or notes, leaving nil fields unchanged.
func (r *Repo) UpdateLead(ctx context.Context, params UpdateLeadParams) (Lead, error) {
	query := `
		UPDATE leads
		SET status = COALESCE($2, status),
			notes = COALESCE($3, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query, params.ID, params.Status, params.Notes)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	return lead, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.QuoteNo, &lead.ProductSlug, &lead.ProductSlugs, &lead.ProductNames,
		&lead.EventStartDate, &lead.EventEndDate, &lead.TimeWindow,
		&lead.City, &lead.Address, &lead.Name, &lead.Phone, &lead.Email, &lead.Notes,
		&lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	return lead, err
}
