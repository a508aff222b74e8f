package sanitization

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;&#x2F;script&gt;"},
		{"ampersand", "fish & chips", "fish &amp; chips"},
		{"quotes", `say "hi" and 'bye'`, "say &quot;hi&quot; and &#x27;bye&#x27;"},
		{"null bytes", "abc\x00def", "abcdef"},
		{"whitespace collapse", "a   b\t\nc", "a b c"},
		{"trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only markup", "<>", "&lt;&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeStringNoRawMarkup(t *testing.T) {
	got := SanitizeString("<script>alert(1)</script>")

	// Strip the known entities; whatever remains must be free of raw
	// markup characters.
	stripped := got
	for _, entity := range []string{"&lt;", "&gt;", "&amp;", "&quot;", "&#x27;", "&#x2F;"} {
		stripped = strings.ReplaceAll(stripped, entity, "")
	}
	for _, forbidden := range []string{"<", ">", "&", `"`, "'"} {
		if strings.Contains(stripped, forbidden) {
			t.Errorf("sanitized output %q still contains raw %q", got, forbidden)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "user@example.com", "user@example.com"},
		{"uppercase", "User@Example.COM", "user@example.com"},
		{"whitespace", "  user@example.com  ", "user@example.com"},
		{"angle brackets stripped", "<user@example.com>", "user@example.com"},
		{"plus and dots kept", "first.last+tag@example.co.uk", "first.last+tag@example.co.uk"},
		{"injection stripped", `user"@example.com`, "user@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
