// Package transport defines the request and response DTOs for the catalog module.
package transport

import (
	"encoding/json"
	"fmt"
	"time"

	"bounce_rentals_backend/internal/catalog/repository"
)

// CreateProductRequest is the admin product creation payload. The slug is
// always derived server-side from the name.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	PriceFrom   *int   `json:"priceFrom"`
	Size        string `json:"size"`
	Features    string `json:"features"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   *int   `json:"sortOrder"`
}

// ProductPatch is a partial product update. Fields absent from the request
// body stay untouched, which is why presence is tracked separately from
// the decoded values.
type ProductPatch struct {
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

// ParseProductPatch decodes a partial update, remembering which fields the
// request actually carried. priceFrom accepts an explicit null to clear
// the price.
func ParseProductPatch(data []byte) (ProductPatch, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ProductPatch{}, fmt.Errorf("parse product patch: %w", err)
	}

	var patch ProductPatch
	decode := func(key string, dst interface{}) error {
		raw, ok := fields[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("parse product patch field %s: %w", key, err)
		}
		return nil
	}

	if err := decode("name", &patch.Name); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("category", &patch.Category); err != nil {
		return ProductPatch{}, err
	}
	if raw, ok := fields["priceFrom"]; ok {
		patch.PriceFromSet = true
		if err := json.Unmarshal(raw, &patch.PriceFrom); err != nil {
			return ProductPatch{}, fmt.Errorf("parse product patch field priceFrom: %w", err)
		}
	}
	if err := decode("size", &patch.Size); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("features", &patch.Features); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("description", &patch.Description); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("imagePath", &patch.ImagePath); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("isActive", &patch.IsActive); err != nil {
		return ProductPatch{}, err
	}
	if err := decode("sortOrder", &patch.SortOrder); err != nil {
		return ProductPatch{}, err
	}

	return patch, nil
}

// Empty reports whether the patch carries no fields at all.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && !p.PriceFromSet &&
		p.Size == nil && p.Features == nil && p.Description == nil &&
		p.ImagePath == nil && p.IsActive == nil && p.SortOrder == nil
}

// ProductView is the JSON representation of a product.
type ProductView struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	PriceFrom   *int      `json:"priceFrom"`
	Size        string    `json:"size"`
	Features    string    `json:"features"`
	Description string    `json:"description"`
	ImagePath   string    `json:"imagePath"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProductView maps a stored product to its JSON representation.
func NewProductView(p repository.Product) ProductView {
	return ProductView{
		ID:          p.ID.String(),
		Slug:        p.Slug,
		Name:        p.Name,
		Category:    p.Category,
		PriceFrom:   p.PriceFrom,
		Size:        p.Size,
		Features:    p.Features,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		IsActive:    p.IsActive,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductViews maps a product list.
func NewProductViews(products []repository.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}
