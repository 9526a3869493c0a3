package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SessionStore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	"givebridge/internal/platform/metrics"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
)

const (
	defaultSessionTTL      = 24 * time.Hour
	defaultLoginsPerMinute = 5
	loginBurst             = 5
	limiterIdleEviction    = 10 * time.Minute
)

// SessionStore persists established sessions.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	DeleteByAccount(ctx context.Context, accountID id.AccountID) error
}

// Gateway is the only component that talks to the credential provider.
// Provider codes are translated here, once, into domain error codes.
type Gateway struct {
	provider provider.Provider
	sessions SessionStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	policy   validation.Policy

	sessionTTL time.Duration

	limitMu         sync.Mutex
	limiters        map[string]*loginLimiter
	loginsPerMinute int
}

type loginLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

func WithPolicy(p validation.Policy) Option {
	return func(g *Gateway) {
		g.policy = p
	}
}

// WithSessionTTL caps session lifetime; the provider's token expiry wins when shorter.
func WithSessionTTL(ttl time.Duration) Option {
	return func(g *Gateway) {
		if ttl > 0 {
			g.sessionTTL = ttl
		}
	}
}

// WithLoginRate sets allowed login attempts per email per minute.
func WithLoginRate(perMinute int) Option {
	return func(g *Gateway) {
		if perMinute > 0 {
			g.loginsPerMinute = perMinute
		}
	}
}

func New(p provider.Provider, sessions SessionStore, opts ...Option) *Gateway {
	g := &Gateway{
		provider:        p,
		sessions:        sessions,
		logger:          slog.Default(),
		policy:          validation.DefaultPolicy(),
		sessionTTL:      defaultSessionTTL,
		limiters:        make(map[string]*loginLimiter),
		loginsPerMinute: defaultLoginsPerMinute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// allowLogin consumes one login token for email.
func (g *Gateway) allowLogin(email string, now time.Time) bool {
	g.limitMu.Lock()
	defer g.limitMu.Unlock()

	for key, l := range g.limiters {
		if now.Sub(l.lastSeen) > limiterIdleEviction {
			delete(g.limiters, key)
		}
	}

	l, ok := g.limiters[email]
	if !ok {
		every := rate.Every(time.Minute / time.Duration(g.loginsPerMinute))
		l = &loginLimiter{limiter: rate.NewLimiter(every, min(loginBurst, g.loginsPerMinute))}
		g.limiters[email] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}
