package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseSpaces trims s and squeezes every internal whitespace run to a
// single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldDiacritics strips combining marks so "Pérth" and "Perth" compare equal.
// Casers and transformers carry state, so both are built per call.
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Upper folds diacritics and upper-cases s.
func Upper(s string) string {
	return cases.Upper(language.Und).String(FoldDiacritics(s))
}

// Lower folds diacritics and lower-cases s.
func Lower(s string) string {
	return cases.Lower(language.Und).String(FoldDiacritics(s))
}

// NormalizeSuburb is the key form of a suburb name: trimmed, upper-case,
// single spaces replaced by underscores.
func NormalizeSuburb(s string) string {
	return strings.ReplaceAll(Upper(CollapseSpaces(s)), " ", "_")
}

// DisplaySuburb reverses the underscore encoding used by NormalizeSuburb.
func DisplaySuburb(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// NormalizeLabel turns free text such as "  Private  Sale " into an
// identifier such as "private_sale".
func NormalizeLabel(s string) string {
	return strings.ReplaceAll(Lower(CollapseSpaces(s)), " ", "_")
}

// NormalizeWords lower-cases s and collapses whitespace without
// substituting underscores.
func NormalizeWords(s string) string {
	return Lower(CollapseSpaces(s))
}
