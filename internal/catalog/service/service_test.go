package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"bounce_rentals_backend/internal/adapters/storage"
	"bounce_rentals_backend/internal/catalog/repository"
	"bounce_rentals_backend/internal/catalog/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/logger"
)

type fakeProductRepo struct {
	products map[uuid.UUID]repository.Product
	slugs    map[string]uuid.UUID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[uuid.UUID]repository.Product),
		slugs:    make(map[string]uuid.UUID),
	}
}

func (r *fakeProductRepo) seed(slug, name string) repository.Product {
	p := repository.Product{ID: uuid.New(), Slug: slug, Name: name, IsActive: true}
	r.products[p.ID] = p
	r.slugs[slug] = p.ID
	return p
}

func (r *fakeProductRepo) ListProducts(_ context.Context, activeOnly bool) ([]repository.Product, error) {
	var out []repository.Product
	for _, p := range r.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (repository.Product, error) {
	id, ok := r.slugs[slug]
	if !ok {
		return repository.Product{}, apperr.NotFound("Product not found")
	}
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return repository.Product{}, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (r *fakeProductRepo) SlugOwner(_ context.Context, slug string) (uuid.UUID, bool, error) {
	id, ok := r.slugs[slug]
	return id, ok, nil
}

func (r *fakeProductRepo) Create(_ context.Context, params repository.CreateProductParams) (repository.Product, error) {
	p := repository.Product{
		ID:        uuid.New(),
		Slug:      params.Slug,
		Name:      params.Name,
		Category:  params.Category,
		PriceFrom: params.PriceFrom,
		IsActive:  params.IsActive,
		SortOrder: params.SortOrder,
	}
	r.products[p.ID] = p
	r.slugs[p.Slug] = p.ID
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, params repository.UpdateProductParams) (repository.Product, error) {
	p, ok := r.products[params.ID]
	if !ok {
		return repository.Product{}, apperr.NotFound("Product not found")
	}
	if params.Slug != nil {
		delete(r.slugs, p.Slug)
		p.Slug = *params.Slug
		r.slugs[p.Slug] = p.ID
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.PriceFromSet {
		p.PriceFrom = params.PriceFrom
	}
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return apperr.NotFound("Product not found")
	}
	delete(r.slugs, p.Slug)
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) NamesBySlugs(_ context.Context, slugs []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, slug := range slugs {
		if id, ok := r.slugs[slug]; ok {
			out[slug] = r.products[id].Name
		}
	}
	return out, nil
}

type fakeStorage struct {
	signCalls int
	signErr   error
}

func (s *fakeStorage) UploadFile(_ context.Context, _, folder, _, _ string, _ io.Reader, _ int64) (string, error) {
	return folder + "/" + uuid.New().String(), nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, _, fileKey string) (*storage.PresignedURL, error) {
	s.signCalls++
	if s.signErr != nil {
		return nil, s.signErr
	}
	return &storage.PresignedURL{
		URL:       fmt.Sprintf("https://cdn.example.com/%s?sig=%d", fileKey, s.signCalls),
		FileKey:   fileKey,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, _, _ string) error    { return nil }
func (s *fakeStorage) EnsureBucketExists(_ context.Context, _ string) error { return nil }
func (s *fakeStorage) ValidateContentType(_ string) error                   { return nil }
func (s *fakeStorage) ValidateFileSize(_ int64) error                       { return nil }
func (s *fakeStorage) GetMaxFileSize() int64                                { return 10 << 20 }

func newTestCatalog(repo *fakeProductRepo, st *fakeStorage) *Service {
	return New(repo, st, "product-images", logger.New("test"))
}

func TestCreate_DerivesUniqueSlug(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("big-bouncer", "Big Bouncer")
	repo.seed("big-bouncer-2", "Big Bouncer")
	svc := newTestCatalog(repo, &fakeStorage{})

	view, err := svc.Create(context.Background(), transport.CreateProductRequest{Name: "Big Bouncer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Slug != "big-bouncer-3" {
		t.Fatalf("expected slug big-bouncer-3, got %q", view.Slug)
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := newTestCatalog(newFakeProductRepo(), &fakeStorage{})

	_, err := svc.Create(context.Background(), transport.CreateProductRequest{Name: "   "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_DefaultsCategory(t *testing.T) {
	svc := newTestCatalog(newFakeProductRepo(), &fakeStorage{})

	view, err := svc.Create(context.Background(), transport.CreateProductRequest{Name: "Slide"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Category != "general" {
		t.Fatalf("expected default category general, got %q", view.Category)
	}
	if !view.IsActive {
		t.Fatalf("expected new products to default to active")
	}
}

func TestUpdate_RenameKeepsOwnSlug(t *testing.T) {
	repo := newFakeProductRepo()
	p := repo.seed("big-bouncer", "Big Bouncer")
	svc := newTestCatalog(repo, &fakeStorage{})

	// Renaming to a name that slugs back to the product's own slug must
	// not pick up a numeric suffix.
	name := "BIG bouncer"
	view, err := svc.Update(context.Background(), p.ID.String(), transport.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Slug != "big-bouncer" {
		t.Fatalf("expected slug to stay big-bouncer, got %q", view.Slug)
	}
}

func TestUpdate_EmptyPatchRejected(t *testing.T) {
	repo := newFakeProductRepo()
	p := repo.seed("big-bouncer", "Big Bouncer")
	svc := newTestCatalog(repo, &fakeStorage{})

	_, err := svc.Update(context.Background(), p.ID.String(), transport.ProductPatch{})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestUpdate_ExplicitNullPrice(t *testing.T) {
	repo := newFakeProductRepo()
	p := repo.seed("big-bouncer", "Big Bouncer")
	price := 150
	p.PriceFrom = &price
	repo.products[p.ID] = p
	svc := newTestCatalog(repo, &fakeStorage{})

	view, err := svc.Update(context.Background(), p.ID.String(), transport.ProductPatch{PriceFromSet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.PriceFrom != nil {
		t.Fatalf("expected price cleared, got %v", *view.PriceFrom)
	}
}

func TestUploadImage_RejectsUnknownExtension(t *testing.T) {
	svc := newTestCatalog(newFakeProductRepo(), &fakeStorage{})

	_, err := svc.UploadImage(context.Background(), "malware.exe", "application/octet-stream", strings.NewReader("x"), 1)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImageURL_CachesSignedURLs(t *testing.T) {
	st := &fakeStorage{}
	svc := newTestCatalog(newFakeProductRepo(), st)

	first, err := svc.ImageURL(context.Background(), "products/abc.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ImageURL(context.Background(), "products/abc.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.signCalls != 1 {
		t.Fatalf("expected one presign call, got %d", st.signCalls)
	}
	if first != second {
		t.Fatalf("expected cached URL, got %q then %q", first, second)
	}

	// Expired entries are re-signed.
	svc.now = func() time.Time { return time.Now().Add(signedURLCacheTTL + time.Minute) }
	if _, err := svc.ImageURL(context.Background(), "products/abc.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.signCalls != 2 {
		t.Fatalf("expected a second presign call after expiry, got %d", st.signCalls)
	}
}

func TestImageURL_RejectsUnsafePaths(t *testing.T) {
	svc := newTestCatalog(newFakeProductRepo(), &fakeStorage{})

	for _, path := range []string{"", "  ", "../etc/passwd", "https://evil.example.com/x.jpg"} {
		if _, err := svc.ImageURL(context.Background(), path); !apperr.Is(err, apperr.KindBadRequest) {
			t.Fatalf("path %q: expected bad request, got %v", path, err)
		}
	}
}
