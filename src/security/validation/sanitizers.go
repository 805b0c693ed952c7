// backend/src/security/validation/sanitizers.go
package validation

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictHTMLPolicy *bluemonday.Policy

func init() {
	// Strict policy removes all HTML tags and attributes.
	strictHTMLPolicy = bluemonday.StrictPolicy()
}

// SanitizeText strips all HTML from an input string. Uploaded documents
// pass through here before the extraction core sees them, so markup
// smuggled into a term sheet cannot reach stored results or the UI.
func SanitizeText(s string) string {
	// The strict policy entity-escapes what it keeps; unescape so plain
	// text like "ABC & Co" comes back unchanged.
	return html.UnescapeString(strictHTMLPolicy.Sanitize(s))
}

// StripUnprintable removes non-printable characters while keeping the
// whitespace the text normalizer relies on (space, tab, newline,
// carriage return).
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
