// Package repository implements testimonial persistence on PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bounce_rentals_backend/platform/apperr"
)

const testimonialNotFoundMessage = "Testimonial not found"

const testimonialColumns = `id, rating, message, name, city, source,
		is_approved, is_hidden, ip, user_agent, created_at, updated_at`

// Repo implements the testimonials repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new testimonials repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a testimonial.
func (r *Repo) Create(ctx context.Context, params CreateTestimonialParams) (Testimonial, error) {
	query := `
		INSERT INTO testimonials (
			rating, message, name, city, source, is_approved, is_hidden, ip, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + testimonialColumns

	t, err := scanTestimonial(r.pool.QueryRow(ctx, query,
		params.Rating, params.Message, params.Name, params.City, params.Source,
		params.IsApproved, params.IsHidden, params.IP, params.UserAgent,
	))
	if err != nil {
		return Testimonial{}, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}

// ListPublic returns approved, visible testimonials, newest first.
func (r *Repo) ListPublic(ctx context.Context, limit int) ([]Testimonial, error) {
	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
		WHERE is_approved = true AND is_hidden = false
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListByStatus returns testimonials matching an admin status filter.
func (r *Repo) ListByStatus(ctx context.Context, status string, limit int) ([]Testimonial, error) {
	var where string
	switch status {
	case StatusApproved:
		where = `WHERE is_approved = true AND is_hidden = false`
	case StatusHidden:
		where = `WHERE is_hidden = true`
	case StatusAll:
		where = ``
	default:
		// pending
		where = `WHERE is_approved = false AND is_hidden = false`
	}

	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
		` + where + `
		ORDER BY created_at DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

// Moderate flips the approval and visibility flags.
func (r *Repo) Moderate(ctx context.Context, params ModerateParams) (Testimonial, error) {
	query := `
		UPDATE testimonials
		SET is_approved = COALESCE($2, is_approved),
			is_hidden = COALESCE($3, is_hidden),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + testimonialColumns

	t, err := scanTestimonial(r.pool.QueryRow(ctx, query, params.ID, params.IsApproved, params.IsHidden))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Testimonial{}, apperr.NotFound(testimonialNotFoundMessage)
		}
		return Testimonial{}, fmt.Errorf("moderate testimonial: %w", err)
	}
	return t, nil
}

// Delete removes a testimonial.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(testimonialNotFoundMessage)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, query string, limit int) ([]Testimonial, error) {
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	items := make([]Testimonial, 0)
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return items, nil
}

func scanTestimonial(row pgx.Row) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(
		&t.ID, &t.Rating, &t.Message, &t.Name, &t.City, &t.Source,
		&t.IsApproved, &t.IsHidden, &t.IP, &t.UserAgent, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}
