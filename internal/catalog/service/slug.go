package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDashPattern = regexp.MustCompile(`^-+|-+$`)
	multiDashPattern = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a display name: lowercase, diacritics
// stripped, runs of non-alphanumerics collapsed to a single dash.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = stripDiacritics(s)
	s = nonAlnumPattern.ReplaceAllString(s, "-")
	s = edgeDashPattern.ReplaceAllString(s, "")
	s = multiDashPattern.ReplaceAllString(s, "-")
	return s
}

func stripDiacritics(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
