package validation

import (
	"errors"
	"strings"

	dErrors "givebridge/pkg/domain-errors"
)

// FieldError is a single user-correctable problem with one form field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Errors collects every violation found in a form.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether any violation was recorded for field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// FieldErrors extracts the collected violations from a validation error.
func FieldErrors(err error) Errors {
	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}
	return nil
}

type collector struct {
	errs Errors
}

func (c *collector) add(field, reason string) {
	c.errs = append(c.errs, FieldError{Field: field, Reason: reason})
}

// check records reason when ok is false and returns ok.
func (c *collector) check(ok bool, field, reason string) bool {
	if !ok {
		c.add(field, reason)
	}
	return ok
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return dErrors.Wrap(c.errs, dErrors.CodeValidation, "invalid input")
}
