package normalize

import (
	"regexp"
	"strings"
)

// Zero-width and directional-control characters that spreadsheet exports
// leak into header cells.
var invisibleChars = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}\x{202C}]`)

var multiSpace = regexp.MustCompile(`\s+`)

// CleanHeader strips invisible unicode, collapses whitespace, and trims.
func CleanHeader(s string) string {
	s = invisibleChars.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanCell strips invisible unicode and trims a data cell.
func CleanCell(s string) string {
	return strings.TrimSpace(invisibleChars.ReplaceAllString(s, ""))
}

// FoldHeader normalizes a header for case-insensitive comparison.
func FoldHeader(s string) string {
	return strings.ToLower(CleanHeader(s))
}
