// Package jwttoken signs and verifies the HS256 access tokens handed out by
// the local credential provider.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
)

type Claims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// AccountID is the account the token was issued to.
func (c *Claims) AccountID() (id.AccountID, error) {
	return id.ParseAccountID(c.Subject)
}

// Token is a signed access token. ID is the jti, used for revocation.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

type Issuer struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewIssuer(signingKey, issuer, audience string) *Issuer {
	return &Issuer{
		key:      []byte(signingKey),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

func (i *Issuer) Issue(account models.Account, ttl time.Duration) (Token, error) {
	now := i.now()
	tok := Token{ID: uuid.NewString(), ExpiresAt: now.Add(ttl)}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:       account.Email,
		Role:        account.Role.String(),
		DisplayName: account.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tok.ID,
			Subject:   account.ID.String(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(tok.ExpiresAt),
		},
	}).SignedString(i.key)
	if err != nil {
		return Token{}, err
	}
	tok.Value = signed
	return tok, nil
}

// Verify checks signature, issuer, audience and expiry. Failures carry
// dErrors.CodeUnauthorized.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}
