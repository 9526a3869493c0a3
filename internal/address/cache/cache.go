// Package cache keeps postal lookups for a while so repeated edits of the same
// postal code do not hit the lookup service again. Unknown codes are never
// cached.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"givebridge/internal/address/models"
	"givebridge/internal/platform/metrics"
	"givebridge/pkg/platform/sentinel"
)

const DefaultTTL = 24 * time.Hour

// Store holds postal addresses by postal code. Get reports sentinel.ErrNotFound on a miss.
type Store interface {
	Get(ctx context.Context, postalCode string) (*models.PostalAddress, error)
	Set(ctx context.Context, address *models.PostalAddress, ttl time.Duration) error
}

// PostalLookup is the wrapped lookup.
type PostalLookup interface {
	Lookup(ctx context.Context, postalCode string) (*models.PostalAddress, error)
}

// CachedLookup serves lookups from a Store and fills it on a miss. Cache
// failures degrade to an uncached lookup.
type CachedLookup struct {
	next    PostalLookup
	store   Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*CachedLookup)

func WithTTL(ttl time.Duration) Option {
	return func(c *CachedLookup) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedLookup) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *CachedLookup) {
		c.metrics = m
	}
}

func NewCachedLookup(next PostalLookup, store Store, opts ...Option) *CachedLookup {
	c := &CachedLookup{
		next:   next,
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedLookup) Lookup(ctx context.Context, postalCode string) (*models.PostalAddress, error) {
	cached, err := c.store.Get(ctx, postalCode)
	switch {
	case err == nil:
		c.metrics.IncrementPostalCache("hit")
		return cached, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		c.logger.WarnContext(ctx, "postal cache read failed", "postal_code", postalCode, "error", err)
	}
	c.metrics.IncrementPostalCache("miss")

	address, err := c.next.Lookup(ctx, postalCode)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, address, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "postal cache write failed", "postal_code", postalCode, "error", err)
	}
	return address, nil
}
