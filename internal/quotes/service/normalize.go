package service

import "strings"

// MergeProductSlugs computes the canonical product list from the dual
// legacy/new selection fields. The array wins when it has entries after
// trimming, otherwise the legacy single slug is promoted to a one-element
// list. Duplicates are dropped keeping first-seen order.
func MergeProductSlugs(slugs []string, legacy *string) []string {
	cleaned := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	if len(cleaned) > 0 {
		return cleaned
	}

	if legacy != nil {
		if single := strings.TrimSpace(*legacy); single != "" {
			return []string{single}
		}
	}
	return []string{}
}

// NormalizeDateRange fills a half-open range from the present side so a
// single-date submission becomes a one-day event.
func NormalizeDateRange(start, end string) (string, string) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	switch {
	case start != "" && end == "":
		return start, start
	case start == "" && end != "":
		return end, end
	default:
		return start, end
	}
}
