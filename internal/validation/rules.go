// Package validation holds the pure rule set applied to registration, login
// and donation forms before any write is attempted. Rules never perform I/O
// and every form validator reports all violations at once.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

const DefaultMinPasswordLength = 6

var (
	postalCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	taxIDPattern      = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
	nationalIDPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)
)

// Policy carries the tunable parts of the rule set.
type Policy struct {
	MinPasswordLength int
}

func DefaultPolicy() Policy {
	return Policy{MinPasswordLength: DefaultMinPasswordLength}
}

func (p Policy) minPassword() int {
	if p.MinPasswordLength <= 0 {
		return DefaultMinPasswordLength
	}
	return p.MinPasswordLength
}

// IsEmail accepts the local@domain.tld shape.
func IsEmail(v string) bool {
	v = strings.TrimSpace(v)
	if !govalidator.IsEmail(v) {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	domain := v[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && len(domain)-dot-1 >= 2
}

func IsPassword(v string, p Policy) bool {
	return utf8.RuneCountInString(v) >= p.minPassword()
}

// IsPostalCode accepts a Brazilian CEP, with or without the hyphen.
func IsPostalCode(v string) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(v))
}

// NormalizePostalCode returns the eight CEP digits, or "" when v is malformed.
func NormalizePostalCode(v string) string {
	if !IsPostalCode(v) {
		return ""
	}
	return digits(v)
}

// IsTaxID accepts a CNPJ in bare or punctuated form. Check digits are not verified.
func IsTaxID(v string) bool {
	return taxIDPattern.MatchString(strings.TrimSpace(v))
}

// IsNationalID accepts a CPF in bare or punctuated form. Check digits are not verified.
func IsNationalID(v string) bool {
	return nationalIDPattern.MatchString(strings.TrimSpace(v))
}

// IsPhone accepts Brazilian landline (10 digits) and mobile (11 digits) numbers
// including area code, with an optional +55 prefix and common punctuation.
func IsPhone(v string) bool {
	v = strings.TrimSpace(v)
	for _, r := range v {
		if !unicode.IsDigit(r) && !strings.ContainsRune("+()- .", r) {
			return false
		}
	}
	d := digits(v)
	if strings.HasPrefix(v, "+") {
		if !strings.HasPrefix(d, "55") {
			return false
		}
		d = d[2:]
	}
	if len(d) != 10 && len(d) != 11 {
		return false
	}
	if d[0] == '0' {
		return false
	}
	return len(d) == 10 || d[2] == '9'
}

// Digits strips everything but ASCII digits; used to store ids and phones canonically.
func Digits(v string) string {
	return digits(v)
}

func digits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func present(v string) bool {
	return strings.TrimSpace(v) != ""
}
