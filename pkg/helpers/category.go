package helpers

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeCategory trims s and returns it with the first letter upper-cased
// and the remainder lower-cased: "  tEchNology " -> "Technology".
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lower := cases.Lower(language.Und).String(s)
	r, size := utf8.DecodeRuneInString(lower)
	return cases.Upper(language.Und).String(string(r)) + lower[size:]
}
