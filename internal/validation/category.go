package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	profileModels "givebridge/internal/profile/models"
)

// FoldCategory lower-cases s, strips diacritics and joins words with
// underscores, so "Assistência Social" and "assistencia_social" compare equal.
func FoldCategory(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	folded = strings.ToLower(folded)
	return strings.Join(strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	}), "_")
}

// ParseInstitutionCategory maps free-form input onto the fixed category set.
func ParseInstitutionCategory(s string) (profileModels.Category, bool) {
	c := profileModels.Category(FoldCategory(s))
	return c, c.IsValid()
}
