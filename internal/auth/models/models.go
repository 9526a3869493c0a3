package models

import (
	"time"

	id "givebridge/pkg/domain"
)

// Role discriminates the two kinds of account.
type Role string

const (
	RoleDonor       Role = "donor"
	RoleInstitution Role = "institution"
)

func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleInstitution
}

func (r Role) String() string {
	return string(r)
}

// Account is issued by the credential provider. ID is immutable once issued.
type Account struct {
	ID          id.AccountID `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Role        Role         `json:"role"`
}

// Session is the explicit session-context value. It is created on successful
// register or login, replaced by the next login, and destroyed on logout.
type Session struct {
	ID           id.SessionID `json:"id"`
	Account      Account      `json:"account"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

func (s *Session) IsExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// PublicSession is the client-facing view of a session. Token is the bearer
// value for later requests; provider tokens stay server side.
type PublicSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}

func (s *Session) Public() *PublicSession {
	if s == nil {
		return nil
	}
	return &PublicSession{Token: s.ID.String(), ExpiresAt: s.ExpiresAt, Account: s.Account}
}

// RegisterRequest carries the credential part of a registration form.
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        Role
}
