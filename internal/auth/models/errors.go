package models

import dErrors "givebridge/pkg/domain-errors"

// ErrorKind is the closed set of credential failures. Provider-specific codes
// are mapped onto it once, at the gateway boundary.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorEmailInUse
	ErrorInvalidEmail
	ErrorWeakPassword
	ErrorInvalidCredentials
	ErrorAccountNotFound
	ErrorRateLimited
	ErrorNetwork
)

var kindCodes = map[ErrorKind]dErrors.Code{
	ErrorEmailInUse:         dErrors.CodeEmailInUse,
	ErrorInvalidEmail:       dErrors.CodeInvalidEmail,
	ErrorWeakPassword:       dErrors.CodeWeakPassword,
	ErrorInvalidCredentials: dErrors.CodeInvalidCredentials,
	ErrorAccountNotFound:    dErrors.CodeAccountNotFound,
	ErrorRateLimited:        dErrors.CodeRateLimited,
	ErrorNetwork:            dErrors.CodeNetwork,
}

var kindMessages = map[ErrorKind]string{
	ErrorEmailInUse:         "this email is already registered",
	ErrorInvalidEmail:       "email address is invalid",
	ErrorWeakPassword:       "password is too weak",
	ErrorInvalidCredentials: "email or password is incorrect",
	ErrorAccountNotFound:    "no account found for this email",
	ErrorRateLimited:        "too many attempts, try again later",
	ErrorNetwork:            "could not reach the authentication service",
}

// Code returns the domain error code for the kind.
func (k ErrorKind) Code() dErrors.Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return dErrors.CodeInternal
}

// Message returns the user-facing message for the kind.
func (k ErrorKind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return "authentication failed"
}
