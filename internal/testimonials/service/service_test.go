package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"bounce_rentals_backend/internal/testimonials/repository"
	"bounce_rentals_backend/internal/testimonials/transport"
	"bounce_rentals_backend/platform/apperr"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/logger"
)

type fakeTestimonialRepo struct {
	created    []repository.CreateTestimonialParams
	items      map[uuid.UUID]repository.Testimonial
	lastStatus string
	lastLimit  int
	moderated  *repository.ModerateParams
}

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{items: make(map[uuid.UUID]repository.Testimonial)}
}

func (r *fakeTestimonialRepo) Create(_ context.Context, params repository.CreateTestimonialParams) (repository.Testimonial, error) {
	r.created = append(r.created, params)
	t := repository.Testimonial{
		ID:         uuid.New(),
		Rating:     params.Rating,
		Message:    params.Message,
		Name:       params.Name,
		City:       params.City,
		Source:     params.Source,
		IsApproved: params.IsApproved,
		IsHidden:   params.IsHidden,
		IP:         params.IP,
		UserAgent:  params.UserAgent,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.items[t.ID] = t
	return t, nil
}

func (r *fakeTestimonialRepo) ListPublic(_ context.Context, limit int) ([]repository.Testimonial, error) {
	r.lastLimit = limit
	return nil, nil
}

func (r *fakeTestimonialRepo) ListByStatus(_ context.Context, status string, limit int) ([]repository.Testimonial, error) {
	r.lastStatus = status
	r.lastLimit = limit
	return nil, nil
}

func (r *fakeTestimonialRepo) Moderate(_ context.Context, params repository.ModerateParams) (repository.Testimonial, error) {
	t, ok := r.items[params.ID]
	if !ok {
		return repository.Testimonial{}, apperr.NotFound("Testimonial not found")
	}
	r.moderated = &params
	if params.IsApproved != nil {
		t.IsApproved = *params.IsApproved
	}
	if params.IsHidden != nil {
		t.IsHidden = *params.IsHidden
	}
	r.items[t.ID] = t
	return t, nil
}

func (r *fakeTestimonialRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperr.NotFound("Testimonial not found")
	}
	delete(r.items, id)
	return nil
}

func newTestTestimonials(repo *fakeTestimonialRepo) *Service {
	log := logger.New("test")
	return New(repo, events.NewInMemoryBus(log), log)
}

func TestSubmit_LandsUnapprovedWithNullableFields(t *testing.T) {
	repo := newFakeTestimonialRepo()
	svc := newTestTestimonials(repo)

	req := transport.SubmitTestimonialRequest{
		Rating:  5,
		Message: "  Great party!  ",
		Name:    "",
		City:    "   ",
	}
	if err := svc.Submit(context.Background(), req, "1.2.3.4", "test-agent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
	params := repo.created[0]
	if params.IsApproved || params.IsHidden {
		t.Fatalf("submissions must start unapproved and visible to moderation only")
	}
	if params.Source != "web" {
		t.Fatalf("expected source web, got %q", params.Source)
	}
	if params.Message == nil || *params.Message != "Great party!" {
		t.Fatalf("expected trimmed message, got %v", params.Message)
	}
	if params.Name != nil || params.City != nil {
		t.Fatalf("empty optional fields should be stored as NULL")
	}
	if params.IP == nil || *params.IP != "1.2.3.4" {
		t.Fatalf("expected submitter ip recorded, got %v", params.IP)
	}
}

func TestListPublic_ClampsLimit(t *testing.T) {
	repo := newFakeTestimonialRepo()
	svc := newTestTestimonials(repo)

	cases := []struct {
		limit int
		want  int
	}{
		{0, 12},
		{-3, 12},
		{25, 25},
		{500, 50},
	}
	for _, c := range cases {
		if _, err := svc.ListPublic(context.Background(), c.limit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastLimit != c.want {
			t.Fatalf("limit %d: expected clamp to %d, got %d", c.limit, c.want, repo.lastLimit)
		}
	}
}

func TestListAdmin_UnknownStatusFallsBackToPending(t *testing.T) {
	repo := newFakeTestimonialRepo()
	svc := newTestTestimonials(repo)

	cases := []struct {
		status string
		want   string
	}{
		{"approved", "approved"},
		{"HIDDEN", "hidden"},
		{"all", "all"},
		{"", "pending"},
		{"bogus", "pending"},
	}
	for _, c := range cases {
		if _, err := svc.ListAdmin(context.Background(), c.status, 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastStatus != c.want {
			t.Fatalf("status %q: expected %q, got %q", c.status, c.want, repo.lastStatus)
		}
	}
}

func TestAdminCreate_ValidatesRating(t *testing.T) {
	svc := newTestTestimonials(newFakeTestimonialRepo())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AdminCreate(context.Background(), transport.AdminCreateTestimonialRequest{Rating: rating})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestModerate_HidingImpliesUnapproval(t *testing.T) {
	repo := newFakeTestimonialRepo()
	svc := newTestTestimonials(repo)

	created, err := repo.Create(context.Background(), repository.CreateTestimonialParams{Rating: 4, IsApproved: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hidden := true
	view, err := svc.Moderate(context.Background(), created.ID.String(), transport.ModerateTestimonialRequest{IsHidden: &hidden})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.IsHidden {
		t.Fatalf("expected testimonial hidden")
	}
	if view.IsApproved {
		t.Fatalf("hiding without an approval decision must also unapprove")
	}
}

func TestModerate_ExplicitApprovalWins(t *testing.T) {
	repo := newFakeTestimonialRepo()
	svc := newTestTestimonials(repo)

	created, err := repo.Create(context.Background(), repository.CreateTestimonialParams{Rating: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hidden := true
	approved := true
	view, err := svc.Moderate(context.Background(), created.ID.String(), transport.ModerateTestimonialRequest{IsHidden: &hidden, IsApproved: &approved})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.IsApproved {
		t.Fatalf("explicit approval should be preserved when hiding")
	}
}

func TestModerate_BadID(t *testing.T) {
	svc := newTestTestimonials(newFakeTestimonialRepo())

	hidden := true
	_, err := svc.Moderate(context.Background(), "not-a-uuid", transport.ModerateTestimonialRequest{IsHidden: &hidden})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
