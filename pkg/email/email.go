// Package email holds the address helpers shared by the credential flows.
package email

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize is the canonical form used for lookups and uniqueness: trimmed
// and lowercased.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// DisplayName derives a readable name from the local part of an address, for
// accounts created without one: "ana.souza+doe@x.org" becomes "Ana Souza Doe".
func DisplayName(address string) string {
	local := strings.TrimSpace(address)
	if at := strings.IndexByte(local, '@'); at >= 0 {
		local = local[:at]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Doador"
	}
	return cases.Title(language.BrazilianPortuguese).String(strings.Join(parts, " "))
}
