// Package repository implements product persistence on PostgreSQL.
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

const productNotFoundMessage = "Product not found"

const productColumns = `id, slug, name, category, price_from, size, features,
		description, image_path, is_active, sort_order, created_at, updated_at`

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListProducts returns products ordered for display.
func (r *Repo) ListProducts(ctx context.Context, activeOnly bool) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products`
	if activeOnly {
		query += `
		WHERE is_active = true`
	}
	query += `
		ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetBySlug fetches one product by slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// GetByID fetches one product by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// SlugOwner reports which product currently holds a slug, if any.
func (r *Repo) SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM products WHERE slug = $1`, slug).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("slug owner: %w", err)
	}
	return id, true, nil
}

// Create inserts a product.
func (r *Repo) Create(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO products (
			slug, name, category, price_from, size, features,
			description, image_path, is_active, sort_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		params.Slug, params.Name, params.Category, params.PriceFrom, params.Size,
		params.Features, params.Description, params.ImagePath, params.IsActive, params.SortOrder,
	))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update applies a partial update. price_from needs its own set flag since
// null is a meaningful value for it.
func (r *Repo) Update(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE products
		SET slug = COALESCE($2, slug),
			name = COALESCE($3, name),
			category = COALESCE($4, category),
			price_from = CASE WHEN $5::bool THEN $6 ELSE price_from END,
			size = COALESCE($7, size),
			features = COALESCE($8, features),
			description = COALESCE($9, description),
			image_path = COALESCE($10, image_path),
			is_active = COALESCE($11, is_active),
			sort_order = COALESCE($12, sort_order),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		params.ID, params.Slug, params.Name, params.Category,
		params.PriceFromSet, params.PriceFrom,
		params.Size, params.Features, params.Description, params.ImagePath,
		params.IsActive, params.SortOrder,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes a product. Historical leads keep their name snapshots.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// NamesBySlugs resolves display names for a slug list.
func (r *Repo) NamesBySlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	if len(slugs) == 0 {
		return map[string]string{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT slug, name FROM products WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("names by slugs: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(slugs))
	for rows.Next() {
		var slug, name string
		if err := rows.Scan(&slug, &name); err != nil {
			return nil, fmt.Errorf("scan product name: %w", err)
		}
		names[slug] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("names by slugs: %w", err)
	}
	return names, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Category, &p.PriceFrom, &p.Size, &p.Features,
		&p.Description, &p.ImagePath, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
