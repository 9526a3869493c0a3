// Package local is an in-process credential provider for development and
// tests. It speaks the same error codes as the GoTrue adapter so the gateway
// cannot tell them apart.
package local

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	jwttoken "givebridge/internal/jwt_token"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
	emailaddr "givebridge/pkg/email"
)

const (
	defaultTokenTTL = time.Hour
	issuer          = "givebridge-local"
	audience        = "givebridge"
)

type user struct {
	account models.Account
	hash    []byte
}

type Provider struct {
	mu      sync.RWMutex
	byEmail map[string]*user
	byID    map[id.AccountID]*user
	revoked map[string]time.Time
	resets  map[string]int

	tokens     *jwttoken.Issuer
	tokenTTL   time.Duration
	policy     validation.Policy
	bcryptCost int
	logger     *slog.Logger
}

type Option func(*Provider)

func WithTokenTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.tokenTTL = ttl
		}
	}
}

func WithPolicy(policy validation.Policy) Option {
	return func(p *Provider) {
		p.policy = policy
	}
}

// WithBcryptCost lowers hashing cost in tests.
func WithBcryptCost(cost int) Option {
	return func(p *Provider) {
		p.bcryptCost = cost
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func New(signingKey string, opts ...Option) *Provider {
	p := &Provider{
		byEmail:    make(map[string]*user),
		byID:       make(map[id.AccountID]*user),
		revoked:    make(map[string]time.Time),
		resets:     make(map[string]int),
		tokens:     jwttoken.NewIssuer(signingKey, issuer, audience),
		tokenTTL:   defaultTokenTTL,
		policy:     validation.DefaultPolicy(),
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Create(_ context.Context, req models.RegisterRequest) (*models.Account, error) {
	email := normalizeEmail(req.Email)
	if !validation.IsEmail(email) {
		return nil, &provider.Error{Code: provider.CodeEmailAddressInvalid, Status: http.StatusBadRequest, Message: "invalid email"}
	}
	if !validation.IsPassword(req.Password, p.policy) {
		return nil, &provider.Error{Code: provider.CodeWeakPassword, Status: http.StatusUnprocessableEntity, Message: "password too short"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), p.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &provider.Error{Code: provider.CodeValidationFailed, Status: http.StatusUnprocessableEntity, Message: "password too long"}
		}
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[email]; exists {
		return nil, &provider.Error{Code: provider.CodeEmailExists, Status: http.StatusUnprocessableEntity, Message: "email already registered"}
	}
	u := &user{
		account: models.Account{
			ID:          id.NewAccountID(),
			Email:       email,
			DisplayName: strings.TrimSpace(req.DisplayName),
			Role:        req.Role,
		},
		hash: hash,
	}
	p.byEmail[email] = u
	p.byID[u.account.ID] = u
	account := u.account
	return &account, nil
}

func (p *Provider) SignIn(_ context.Context, email, password string) (*provider.Grant, error) {
	p.mu.RLock()
	u, ok := p.byEmail[normalizeEmail(email)]
	p.mu.RUnlock()
	if !ok {
		return nil, &provider.Error{Code: provider.CodeUserNotFound, Status: http.StatusBadRequest, Message: "user not found"}
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, &provider.Error{Code: provider.CodeInvalidCredentials, Status: http.StatusBadRequest, Message: "invalid login credentials"}
	}

	token, err := p.tokens.Issue(u.account, p.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &provider.Grant{
		Account:      u.account,
		AccessToken:  token.Value,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    token.ExpiresAt,
	}, nil
}

// SignOut revokes the access token until it would have expired anyway.
func (p *Provider) SignOut(_ context.Context, accessToken string) error {
	claims, err := p.tokens.Verify(accessToken)
	if err != nil {
		return &provider.Error{Code: "bad_jwt", Status: http.StatusUnauthorized, Message: err.Error()}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneRevokedLocked(time.Now())
	p.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (p *Provider) SendReset(_ context.Context, email string) error {
	email = normalizeEmail(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[email]; !ok {
		return &provider.Error{Code: provider.CodeUserNotFound, Status: http.StatusNotFound, Message: "user not found"}
	}
	p.resets[email]++
	p.logger.Info("password reset requested", "email", email)
	return nil
}

func (p *Provider) CurrentUser(_ context.Context, accessToken string) (*models.Account, error) {
	claims, err := p.tokens.Verify(accessToken)
	if err != nil {
		return nil, &provider.Error{Code: "bad_jwt", Status: http.StatusUnauthorized, Message: err.Error()}
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, revoked := p.revoked[claims.ID]; revoked {
		return nil, &provider.Error{Code: "session_not_found", Status: http.StatusUnauthorized, Message: "token revoked"}
	}
	accountID, err := claims.AccountID()
	if err != nil {
		return nil, &provider.Error{Code: "bad_jwt", Status: http.StatusUnauthorized, Message: "invalid subject"}
	}
	u, ok := p.byID[accountID]
	if !ok {
		return nil, &provider.Error{Code: provider.CodeUserNotFound, Status: http.StatusNotFound, Message: "user not found"}
	}
	account := u.account
	return &account, nil
}

func (p *Provider) Delete(_ context.Context, accountID id.AccountID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	u, ok := p.byID[accountID]
	if !ok {
		return &provider.Error{Code: provider.CodeUserNotFound, Status: http.StatusNotFound, Message: "user not found"}
	}
	delete(p.byID, accountID)
	delete(p.byEmail, u.account.Email)
	delete(p.resets, u.account.Email)
	return nil
}

// ResetRequests returns how many resets were requested for email.
func (p *Provider) ResetRequests(email string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resets[normalizeEmail(email)]
}

func (p *Provider) pruneRevokedLocked(now time.Time) {
	for jti, exp := range p.revoked {
		if now.After(exp) {
			delete(p.revoked, jti)
		}
	}
}

func normalizeEmail(email string) string {
	return emailaddr.Normalize(email)
}
