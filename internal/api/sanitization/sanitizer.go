package sanitization

import (
	"regexp"
	"strings"
)

var (
	emailCharset   = regexp.MustCompile(`[^\w.@+-]`)
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// htmlEscaper escapes the characters that can break out of an HTML context.
// The forward slash is included so sanitized values are safe inside closing
// tags as well.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeString HTML-entity-escapes a string and strips null bytes.
func SanitizeString(input string) string {
	// Null bytes survive entity escaping, remove them first
	safe := strings.ReplaceAll(input, "\x00", "")

	safe = htmlEscaper.Replace(safe)

	// Collapse runs of whitespace
	safe = multipleSpaces.ReplaceAllString(safe, " ")

	return strings.TrimSpace(safe)
}

// SanitizeEmail restricts an email address to the characters that can
// legitimately appear in one, lowercased and trimmed.
func SanitizeEmail(input string) string {
	email := strings.ToLower(strings.TrimSpace(input))
	email = strings.ReplaceAll(email, "\x00", "")
	return emailCharset.ReplaceAllString(email, "")
}
