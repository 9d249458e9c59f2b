// Package service implements catalog business logic: product CRUD, slug
// management, and image plumbing through object storage.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"bounce_rentals_backend/internal/adapters/storage"
	"bounce_rentals_backend/internal/catalog/repository"
	"bounce_rentals_backend/internal/catalog/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/logger"
)

const (
	defaultCategory = "general"
	// signedURLCacheTTL must stay comfortably below the presigned URL
	// expiry so cached URLs never outlive their validity.
	signedURLCacheTTL = 9 * time.Minute
	// maxSlugSuffix bounds the uniqueness suffix loop.
	maxSlugSuffix = 999
)

// imageFolder is the object key prefix inside the product image bucket.
const imageFolder = "products"

type cachedURL struct {
	url     string
	expires time.Time
}

// Service implements catalog operations.
type Service struct {
	repo    repository.Repository
	storage storage.StorageService
	bucket  string
	log     *logger.Logger

	sf       singleflight.Group
	cacheMu  sync.Mutex
	urlCache map[string]cachedURL
	now      func() time.Time
}

// New creates the catalog service.
func New(repo repository.Repository, storageSvc storage.StorageService, bucket string, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		storage:  storageSvc,
		bucket:   bucket,
		log:      log,
		urlCache: make(map[string]cachedURL),
		now:      time.Now,
	}
}

// ListPublic returns active products in display order.
func (s *Service) ListPublic(ctx context.Context) ([]transport.ProductView, error) {
	products, err := s.repo.ListProducts(ctx, true)
	if err != nil {
		s.log.DatabaseError("list_products", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list products", err)
	}
	return transport.NewProductViews(products), nil
}

// GetPublic returns one product by slug.
func (s *Service) GetPublic(ctx context.Context, slug string) (transport.ProductView, error) {
	product, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ProductView{}, err
		}
		s.log.DatabaseError("get_product", err)
		return transport.ProductView{}, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}
	return transport.NewProductView(product), nil
}

// ListAdmin returns all products including inactive ones.
func (s *Service) ListAdmin(ctx context.Context) ([]transport.ProductView, error) {
	products, err := s.repo.ListProducts(ctx, false)
	if err != nil {
		s.log.DatabaseError("list_products", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list products", err)
	}
	return transport.NewProductViews(products), nil
}

// Create inserts a product with a server-derived unique slug.
func (s *Service) Create(ctx context.Context, req transport.CreateProductRequest) (transport.ProductView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transport.ProductView{}, apperr.Validation("name is required")
	}

	slug, err := s.uniqueSlug(ctx, name, uuid.Nil)
	if err != nil {
		return transport.ProductView{}, err
	}

	params := repository.CreateProductParams{
		Slug:        slug,
		Name:        name,
		Category:    defaultString(req.Category, defaultCategory),
		PriceFrom:   req.PriceFrom,
		Size:        strings.TrimSpace(req.Size),
		Features:    strings.TrimSpace(req.Features),
		Description: strings.TrimSpace(req.Description),
		ImagePath:   strings.TrimSpace(req.ImagePath),
		IsActive:    true,
		SortOrder:   0,
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		params.SortOrder = *req.SortOrder
	}

	product, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create_product", err)
		return transport.ProductView{}, apperr.Wrap(apperr.KindInternal, "failed to create product", err)
	}
	return transport.NewProductView(product), nil
}

// Update applies a partial update. The slug is re-derived only when the
// name actually changed; renaming back and forth never races with itself
// because uniqueness checks exclude the product's own id.
func (s *Service) Update(ctx context.Context, id string, patch transport.ProductPatch) (transport.ProductView, error) {
	productID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return transport.ProductView{}, apperr.BadRequest("Missing product id")
	}

	if patch.Empty() {
		return transport.ProductView{}, apperr.BadRequest("No valid fields provided to update")
	}

	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ProductView{}, err
		}
		s.log.DatabaseError("get_product", err)
		return transport.ProductView{}, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}

	params := repository.UpdateProductParams{ID: productID}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return transport.ProductView{}, apperr.Validation("name cannot be empty")
		}
		params.Name = &name
		if name != existing.Name {
			slug, err := s.uniqueSlug(ctx, name, productID)
			if err != nil {
				return transport.ProductView{}, err
			}
			params.Slug = &slug
		}
	}
	if patch.Category != nil {
		category := defaultString(*patch.Category, defaultCategory)
		params.Category = &category
	}
	if patch.PriceFromSet {
		params.PriceFromSet = true
		params.PriceFrom = patch.PriceFrom
	}
	if patch.Size != nil {
		size := strings.TrimSpace(*patch.Size)
		params.Size = &size
	}
	if patch.Features != nil {
		features := strings.TrimSpace(*patch.Features)
		params.Features = &features
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		params.Description = &description
	}
	if patch.ImagePath != nil {
		imagePath := strings.TrimSpace(*patch.ImagePath)
		params.ImagePath = &imagePath
	}
	params.IsActive = patch.IsActive
	params.SortOrder = patch.SortOrder

	product, err := s.repo.Update(ctx, params)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ProductView{}, err
		}
		s.log.DatabaseError("update_product", err)
		return transport.ProductView{}, apperr.Wrap(apperr.KindInternal, "failed to update product", err)
	}

	s.invalidateURLCache()
	return transport.NewProductView(product), nil
}

// Delete removes a product. Leads referencing it keep their snapshots.
func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperr.BadRequest("Missing product id")
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.log.DatabaseError("delete_product", err)
		return apperr.Wrap(apperr.KindInternal, "failed to delete product", err)
	}

	s.invalidateURLCache()
	return nil
}

// UploadImage stores a product image and returns its object path.
func (s *Service) UploadImage(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	ext := extOf(fileName)
	if !storage.AllowedImageExtensions[ext] {
		return "", apperr.Validation("Only jpg, jpeg, png, webp allowed")
	}
	if err := s.storage.ValidateFileSize(size); err != nil {
		return "", apperr.Validation(err.Error())
	}
	if contentType == "" {
		contentType = "image/" + strings.TrimPrefix(ext, ".")
	}

	path, err := s.storage.UploadFile(ctx, s.bucket, imageFolder, fileName, contentType, reader, size)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to store image", err)
	}
	return path, nil
}

// ImageURL returns a presigned GET URL for a stored image. URLs are cached
// in-process for a fraction of their validity; concurrent cache misses for
// the same path are collapsed into one storage call.
func (s *Service) ImageURL(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", apperr.BadRequest("Missing path")
	}
	if !storage.IsSafeObjectPath(path) {
		return "", apperr.BadRequest("Invalid storage path")
	}

	s.cacheMu.Lock()
	if entry, ok := s.urlCache[path]; ok && s.now().Before(entry.expires) {
		s.cacheMu.Unlock()
		return entry.url, nil
	}
	s.cacheMu.Unlock()

	result, err, _ := s.sf.Do(path, func() (interface{}, error) {
		presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, path)
		if err != nil {
			return nil, fmt.Errorf("sign image url: %w", err)
		}

		s.cacheMu.Lock()
		s.urlCache[path] = cachedURL{url: presigned.URL, expires: s.now().Add(signedURLCacheTTL)}
		s.cacheMu.Unlock()

		return presigned.URL, nil
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign image url", err)
	}
	return result.(string), nil
}

// NamesBySlugs exposes the snapshot lookup for the quotes pipeline.
func (s *Service) NamesBySlugs(ctx context.Context, slugs []string) (map[string]string, error) {
	return s.repo.NamesBySlugs(ctx, slugs)
}

// uniqueSlug derives a slug from base and makes it unique with numeric
// suffixes, excluding excludeID from the ownership check so an unchanged
// rename keeps its slug.
func (s *Service) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	baseSlug := Slugify(base)
	if baseSlug == "" {
		baseSlug = fmt.Sprintf("product-%d", s.now().UnixMilli())
	}

	available := func(candidate string) (bool, error) {
		owner, taken, err := s.repo.SlugOwner(ctx, candidate)
		if err != nil {
			s.log.DatabaseError("slug_owner", err)
			return false, apperr.Wrap(apperr.KindInternal, "failed to derive slug", err)
		}
		return !taken || owner == excludeID, nil
	}

	if ok, err := available(baseSlug); err != nil {
		return "", err
	} else if ok {
		return baseSlug, nil
	}

	for i := 2; i <= maxSlugSuffix; i++ {
		candidate := fmt.Sprintf("%s-%d", baseSlug, i)
		if ok, err := available(candidate); err != nil {
			return "", err
		} else if ok {
			return candidate, nil
		}
	}

	return fmt.Sprintf("%s-%d", baseSlug, s.now().UnixMilli()), nil
}

func (s *Service) invalidateURLCache() {
	s.cacheMu.Lock()
	s.urlCache = make(map[string]cachedURL)
	s.cacheMu.Unlock()
}

func defaultString(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

func extOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(fileName[idx:])
}
