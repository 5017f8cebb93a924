package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeText is the single case rule for stored titles/descriptions and
// for every search key derived from them. Writes and queries must both go
// through it; storage collation is never relied on.
func NormalizeText(s string) string {
	// cases.Caser keeps state, so one per call.
	return cases.Upper(language.Und).String(s)
}
