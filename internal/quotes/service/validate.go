package service

import (
	"regexp"
	"strconv"
	"strings"

	"bounce_rentals_backend/internal/quotes/transport"
)

var timeWindows = map[string]bool{
	"Morning":   true,
	"Afternoon": true,
	"Evening":   true,
}

var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isYMD checks for strict YYYY-MM-DD with month and day in range.
// Calendar validity (leap years, 31-day months) is intentionally not
// checked; dates also compare lexicographically downstream.
func isYMD(s string) bool {
	if !ymdPattern.MatchString(s) {
		return false
	}
	parts := strings.SplitN(s, "-", 3)
	y, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	if y == 0 || m == 0 || d == 0 {
		return false
	}
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}

// ValidateQuote checks a submission and returns every problem found, not
// just the first. Fields are compared after trimming.
func ValidateQuote(req transport.QuoteRequest) []transport.Issue {
	var issues []transport.Issue
	add := func(path, message string) {
		issues = append(issues, transport.Issue{Path: path, Message: message})
	}

	start := strings.TrimSpace(req.EventStartDate)
	end := strings.TrimSpace(req.EventEndDate)

	if start == "" {
		add("eventStartDate", "Start date is required.")
	} else if !isYMD(start) {
		add("eventStartDate", "Start date must be in YYYY-MM-DD format.")
	}

	if end == "" {
		add("eventEndDate", "End date is required.")
	} else if !isYMD(end) {
		add("eventEndDate", "End date must be in YYYY-MM-DD format.")
	}

	// Lexicographic comparison is correct for zero-padded YYYY-MM-DD.
	if start != "" && end != "" && end < start {
		add("eventEndDate", "End date must be on or after start date.")
	}

	if !timeWindows[req.TimeWindow] {
		add("timeWindow", "Time window must be Morning, Afternoon or Evening.")
	}

	if strings.TrimSpace(req.City) == "" {
		add("city", "City is required.")
	}
	if strings.TrimSpace(req.Address) == "" {
		add("address", "Address is required.")
	}
	if strings.TrimSpace(req.Name) == "" {
		add("name", "Name is required.")
	}

	hasPhone := strings.TrimSpace(req.Phone) != ""
	hasEmail := strings.TrimSpace(req.Email) != ""
	if !hasPhone && !hasEmail {
		add("phone", "Please provide at least a phone number or an email address.")
	}

	if len(MergeProductSlugs(req.ProductSlugs, req.ProductSlug)) == 0 {
		add("productSlugs", "Please select at least one product.")
	}

	return issues
}

// NormalizeStatus maps the handful of statuses the admin UI uses to their
// canonical lowercase form. Anything else passes through untouched.
func NormalizeStatus(status string) string {
	switch strings.ToLower(status) {
	case "new":
		return "new"
	case "contacted":
		return "contacted"
	case "booked":
		return "booked"
	case "closed":
		return "closed"
	default:
		return status
	}
}
