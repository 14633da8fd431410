package service

import (
	"strings"
	"unicode"
)

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "o'malley" becomes "O'Malley" and "st-pierre"
// becomes "St-Pierre".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToTitle(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
