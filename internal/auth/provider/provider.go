// Package provider defines the contract with the external credential provider.
// Adapters report provider-side conditions as *Error carrying the provider's
// own code; they never translate codes into domain errors themselves.
package provider

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
)

// Codes reported by GoTrue-compatible providers. The local provider reports the same set.
const (
	CodeEmailExists         = "email_exists"
	CodeUserAlreadyExists   = "user_already_exists"
	CodeValidationFailed    = "validation_failed"
	CodeEmailAddressInvalid = "email_address_invalid"
	CodeWeakPassword        = "weak_password"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeUserNotFound        = "user_not_found"
	CodeRateLimit           = "over_request_rate_limit"
	CodeEmailRateLimit      = "over_email_send_rate_limit"
)

// ErrTransport marks connectivity loss or a provider outage.
var ErrTransport = errors.New("credential provider unreachable")

// Error is a condition reported by the provider.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider error %s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("provider error %s (status %d): %s", e.Code, e.Status, e.Message)
}

// Grant is the result of a successful sign-in.
type Grant struct {
	Account      models.Account
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Provider is the external credential service.
type Provider interface {
	Create(ctx context.Context, req models.RegisterRequest) (*models.Account, error)
	SignIn(ctx context.Context, email, password string) (*Grant, error)
	SignOut(ctx context.Context, accessToken string) error
	SendReset(ctx context.Context, email string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.Account, error)
	Delete(ctx context.Context, accountID id.AccountID) error
}

// CodeOf returns the provider code carried by err, if any.
func CodeOf(err error) (string, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return "", false
}
