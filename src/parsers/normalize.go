// backend/src/parsers/normalize.go
package parsers

import (
	"regexp"
	"strings"
)

var (
	whitespaceRunRe   = regexp.MustCompile(`[ \t]+`)
	leadingPipesRe    = regexp.MustCompile(`^\|+\s*`)
	innerWhitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText canonicalizes a raw document before any pattern matching:
// CRLF/CR become LF, runs of spaces and tabs collapse to a single
// representative (a tab if the run contained one, a space otherwise),
// and blank lines are dropped. The result is the trimmed non-empty lines
// joined by "\n". Pure function, no failure mode.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// Collapse each horizontal whitespace run, keeping the tab/space
	// distinction so table rows flattened to tab-separated cells survive.
	s = whitespaceRunRe.ReplaceAllStringFunc(s, func(run string) string {
		if strings.Contains(run, "\t") {
			return "\t"
		}
		return " "
	})

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

// CleanValue tidies a single captured value: trims it, strips leading
// pipe characters left over from table cell borders, and collapses
// internal whitespace to single spaces.
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = leadingPipesRe.ReplaceAllString(v, "")
	return strings.TrimSpace(innerWhitespaceRe.ReplaceAllString(v, " "))
}
