package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product is a rentable catalog item.
type Product struct {
	ID          uuid.UUID
	Slug        string
	Name        string
	Category    string
	PriceFrom   *int
	Size        string
	Features    string
	Description string
	ImagePath   string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProductParams carries the fields for a new product.
type CreateProductParams struct {
	Slug        string
	Name        string
	Category    string
	PriceFrom   *int
	Size        string
	Features    string
	Description string
	ImagePath   string
	IsActive    bool
	SortOrder   int
}

// UpdateProductParams carries a partial product update. A nil pointer means
// the field is untouched. PriceFromSet distinguishes "set to null" from
// "not provided".
type UpdateProductParams struct {
	ID           uuid.UUID
	Slug         *string
	Name         *string
	Category     *string
	PriceFrom    *int
	PriceFromSet bool
	Size         *string
	Features     *string
	Description  *string
	ImagePath    *string
	IsActive     *bool
	SortOrder    *int
}

// Repository defines persistence operations for products.
type Repository interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	// SlugOwner reports which product currently holds a slug, if any.
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
	Create(ctx context.Context, params CreateProductParams) (Product, error)
	Update(ctx context.Context, params UpdateProductParams) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// NamesBySlugs resolves display names for the given slugs. Missing
	// slugs are absent from the map.
	NamesBySlugs(ctx context.Context, slugs []string) (map[string]string, error)
}
