// Package sanitize cleans user-provided free text before storage.
package sanitize

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

var entityDecoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
)

// Text strips HTML from a user-supplied field such as quote notes or a
// testimonial message and trims surrounding whitespace. Tags are stripped
// again after entity decoding so encoded markup cannot survive the pass.
// Output escaping remains the renderer's job.
func Text(s string) string {
	result := htmlTagPattern.ReplaceAllString(s, "")
	result = entityDecoder.Replace(result)
	result = htmlTagPattern.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}
