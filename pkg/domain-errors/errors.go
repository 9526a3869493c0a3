// Package domainerrors carries the coded error taxonomy shared by services and
// transport. Services attach a Code once at the boundary where a fact (store
// miss, provider rejection, invalid input) becomes a domain outcome; callers
// branch on the code with HasCode instead of matching on strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain failure.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeEmailInUse         Code = "email_in_use"
	CodeInvalidEmail       Code = "invalid_email"
	CodeWeakPassword       Code = "weak_password"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodeAccountNotFound    Code = "account_not_found"
	CodeRateLimited        Code = "rate_limited"
	CodePostalCodeNotFound Code = "postal_code_not_found"
	CodeNetwork            Code = "network"
	CodeAlreadyExists      Code = "already_exists"
	CodeNotFound           Code = "not_found"
	CodeAddressIncomplete  Code = "address_incomplete"
	CodeUnauthorized       Code = "unauthorized"
	CodeBadRequest         Code = "bad_request"
	CodeInternal           Code = "internal"
)

// Error is a domain error with a stable code and a user-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to err. A nil err yields a plain coded error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether the outermost domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// CodeOf returns the code of the outermost domain error in err's chain.
func CodeOf(err error) (Code, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// IsRetryable reports whether the caller may retry the operation that produced err.
// Nothing in this module retries on its own; the flag only informs the UI layer.
func IsRetryable(err error) bool {
	return HasCode(err, CodeNetwork)
}
