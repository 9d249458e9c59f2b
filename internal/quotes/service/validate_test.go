package service

import (
	"testing"

	"bounce_rentals_backend/internal/quotes/transport"
)

func validRequest() transport.QuoteRequest {
	return transport.QuoteRequest{
		ProductSlugs:   []string{"bouncer-1"},
		EventStartDate: "2025-06-01",
		EventEndDate:   "2025-06-01",
		TimeWindow:     "Morning",
		City:           "Beirut",
		Address:        "123 St",
		Name:           "Jane",
		Phone:          "+96170000000",
	}
}

func issuePaths(issues []transport.Issue) []string {
	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}
	return paths
}

func hasIssue(issues []transport.Issue, path string) bool {
	for _, issue := range issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

func TestValidateQuote_ValidSubmission(t *testing.T) {
	if issues := ValidateQuote(validRequest()); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateQuote_MissingContactReportsPhonePath(t *testing.T) {
	req := validRequest()
	req.Phone = ""
	req.Email = "   "

	issues := ValidateQuote(req)
	if !hasIssue(issues, "phone") {
		t.Fatalf("expected an issue with path phone, got paths %v", issuePaths(issues))
	}
}

func TestValidateQuote_EndBeforeStart(t *testing.T) {
	req := validRequest()
	req.EventStartDate = "2025-06-05"
	req.EventEndDate = "2025-06-01"

	issues := ValidateQuote(req)
	if !hasIssue(issues, "eventEndDate") {
		t.Fatalf("expected an issue with path eventEndDate, got paths %v", issuePaths(issues))
	}
}

func TestValidateQuote_DateFormat(t *testing.T) {
	cases := []struct {
		date  string
		valid bool
	}{
		{"2025-06-01", true},
		{"2025-12-31", true},
		{"2025-13-01", false},
		{"2025-00-10", false},
		{"2025-01-32", false},
		{"2025-6-1", false},
		{"20250601", false},
		{"junk", false},
	}

	for _, tc := range cases {
		req := validRequest()
		req.EventStartDate = tc.date
		if tc.date >= req.EventEndDate {
			req.EventEndDate = tc.date
		}

		issues := ValidateQuote(req)
		got := !hasIssue(issues, "eventStartDate")
		if got != tc.valid {
			t.Fatalf("date %q: expected valid=%v, got issues %v", tc.date, tc.valid, issues)
		}
	}
}

func TestValidateQuote_NoProductSelected(t *testing.T) {
	req := validRequest()
	req.ProductSlugs = nil
	req.ProductSlug = nil

	issues := ValidateQuote(req)
	if !hasIssue(issues, "productSlugs") {
		t.Fatalf("expected an issue with path productSlugs, got paths %v", issuePaths(issues))
	}
}

func TestValidateQuote_LegacySlugSatisfiesProductRule(t *testing.T) {
	req := validRequest()
	req.ProductSlugs = nil
	legacy := "castle-2"
	req.ProductSlug = &legacy

	if issues := ValidateQuote(req); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateQuote_CollectsAllIssues(t *testing.T) {
	req := transport.QuoteRequest{TimeWindow: "Midnight"}

	issues := ValidateQuote(req)
	for _, path := range []string{"eventStartDate", "eventEndDate", "timeWindow", "city", "address", "name", "phone", "productSlugs"} {
		if !hasIssue(issues, path) {
			t.Fatalf("expected issue for %s, got paths %v", path, issuePaths(issues))
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"Booked":    "booked",
		"CONTACTED": "contacted",
		"closed":    "closed",
		"New":       "new",
		"weird":     "weird",
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
