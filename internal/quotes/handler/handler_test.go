package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bounce_rentals_backend/internal/quotes/repository"
	"bounce_rentals_backend/internal/quotes/service"
	"bounce_rentals_backend/platform/events"
	"bounce_rentals_backend/platform/httpkit"
	"bounce_rentals_backend/platform/logger"
)

type stubRepo struct {
	created []repository.CreateLeadParams
}

func (r *stubRepo) CreateLead(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	r.created = append(r.created, params)
	return repository.Lead{
		ID:             uuid.New(),
		QuoteNo:        int64(len(r.created)),
		ProductSlug:    params.ProductSlug,
		ProductSlugs:   params.ProductSlugs,
		ProductNames:   params.ProductNames,
		EventStartDate: params.EventStartDate,
		EventEndDate:   params.EventEndDate,
		TimeWindow:     params.TimeWindow,
		City:           params.City,
		Address:        params.Address,
		Name:           params.Name,
		Phone:          params.Phone,
		Email:          params.Email,
		Notes:          params.Notes,
		Status:         "new",
		CreatedAt:      time.Now(),
	}, nil
}

func (r *stubRepo) ListLeads(_ context.Context, _ int) ([]repository.Lead, error) {
	return nil, nil
}

func (r *stubRepo) UpdateLead(_ context.Context, _ repository.UpdateLeadParams) (repository.Lead, error) {
	return repository.Lead{}, nil
}

type stubResolver struct{}

func (stubResolver) NamesBySlugs(_ context.Context, _ []string) (map[string]string, error) {
	return map[string]string{"bouncer-1": "Big Bouncer"}, nil
}

type stubNotifier struct{}

func (stubNotifier) NotifyLeadCreated(_ context.Context, _ repository.Lead) {}

func newQuoteServer(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	svc := service.New(repo, stubResolver{}, stubNotifier{}, events.NewInMemoryBus(log), log)
	limiter := httpkit.NewFixedWindowLimiter(httpkit.NewMemoryWindowStore(), 8, time.Minute, log)
	h := New(svc, limiter, log)

	engine := gin.New()
	engine.POST("/api/quote", h.SubmitQuote)
	return engine
}

func postQuote(engine *gin.Engine, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const validQuoteBody = `{
	"productSlugs": ["bouncer-1"],
	"eventStartDate": "2025-06-01",
	"eventEndDate": "2025-06-02",
	"timeWindow": "Morning",
	"city": "Beirut",
	"address": "123 St",
	"name": "Jane",
	"phone": "+96170000000"
}`

func TestSubmitQuote_Success(t *testing.T) {
	repo := &stubRepo{}
	engine := newQuoteServer(t, repo)

	rec := postQuote(engine, "1.2.3.4", validQuoteBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK           bool     `json:"ok"`
		Message      string   `json:"message"`
		QuoteNo      int64    `json:"quoteNo"`
		ProductNames []string `json:"productNames"`
		Status       string   `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.OK || resp.Message != "Received" {
		t.Fatalf("expected ok ack, got %+v", resp)
	}
	if resp.QuoteNo != 1 {
		t.Fatalf("expected quoteNo 1, got %d", resp.QuoteNo)
	}
	if len(resp.ProductNames) != 1 || resp.ProductNames[0] != "Big Bouncer" {
		t.Fatalf("expected resolved product name, got %v", resp.ProductNames)
	}
	if resp.Status != "new" {
		t.Fatalf("expected status new, got %q", resp.Status)
	}
}

func TestSubmitQuote_HoneypotLooksLikeSuccess(t *testing.T) {
	repo := &stubRepo{}
	engine := newQuoteServer(t, repo)

	body := strings.Replace(validQuoteBody, `"name": "Jane",`, `"name": "Jane", "website": "spam.example",`, 1)
	rec := postQuote(engine, "1.2.3.4", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, `"message":"OK"`) {
		t.Fatalf("expected generic OK body, got %s", got)
	}
	if len(repo.created) != 0 {
		t.Fatalf("honeypot submissions must not be persisted")
	}
}

func TestSubmitQuote_ValidationIssues(t *testing.T) {
	engine := newQuoteServer(t, &stubRepo{})

	body := strings.Replace(validQuoteBody, `"eventEndDate": "2025-06-02"`, `"eventEndDate": "2025-05-30"`, 1)
	rec := postQuote(engine, "1.2.3.4", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
		Issues  []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK || resp.Message != "Invalid input." {
		t.Fatalf("expected invalid input envelope, got %+v", resp)
	}
	found := false
	for _, issue := range resp.Issues {
		if issue.Path == "eventEndDate" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an eventEndDate issue, got %+v", resp.Issues)
	}
}

func TestSubmitQuote_MalformedJSON(t *testing.T) {
	engine := newQuoteServer(t, &stubRepo{})

	rec := postQuote(engine, "1.2.3.4", `{"city": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid JSON.") {
		t.Fatalf("expected Invalid JSON message, got %s", rec.Body.String())
	}
}

func TestSubmitQuote_RateLimited(t *testing.T) {
	repo := &stubRepo{}
	engine := newQuoteServer(t, repo)

	for i := 0; i < 8; i++ {
		rec := postQuote(engine, "1.2.3.4", validQuoteBody)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := postQuote(engine, "1.2.3.4", validQuoteBody)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the 9th request, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Too many requests") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	// A different client keeps its own budget.
	rec = postQuote(engine, "5.6.7.8", validQuoteBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other clients unaffected, got %d", rec.Code)
	}
}
