// Package phone normalizes customer phone numbers for lead storage.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country prefix are assumed local to the rental
// company's market.
const defaultRegion = "LB"

// NormalizeE164 formats a phone number to E.164. Unparseable or invalid
// input is returned trimmed but otherwise untouched; a quote submission
// must never be lost over a phone number the library cannot read.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
