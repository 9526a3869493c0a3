package service

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks PostalLookup,Geocoder

import (
	"context"
	"errors"
	"log/slog"

	"givebridge/internal/address/models"
	"givebridge/internal/platform/metrics"
	"givebridge/internal/validation"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/circuit"
	"givebridge/pkg/platform/sentinel"
)

// PostalLookup resolves a normalized postal code. Unknown codes are reported
// as sentinel.ErrNotFound; anything else is treated as a transport failure.
type PostalLookup interface {
	Lookup(ctx context.Context, postalCode string) (*models.PostalAddress, error)
}

// Geocoder turns a free-text address into ranked candidates. An empty slice is
// a valid answer.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]models.Coordinates, error)
}

const (
	outcomeResolved       = "resolved"
	outcomeNoCoordinates  = "resolved_without_coordinates"
	outcomeNotFound       = "not_found"
	outcomeNetwork        = "network_error"
	outcomeInvalidRequest = "invalid"
)

// Resolver runs the two-stage address pipeline. Stage one (postal lookup) is
// authoritative and its errors propagate. Stage two (geocoding) is enrichment
// only: it sits behind a circuit breaker and never fails a resolution.
type Resolver struct {
	postal   PostalLookup
	geocoder Geocoder
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithBreaker replaces the default geocoder circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(r *Resolver) {
		r.breaker = b
	}
}

// NewResolver builds a resolver. geocoder may be nil, in which case every
// resolution comes back without coordinates.
func NewResolver(postal PostalLookup, geocoder Geocoder, opts ...Option) *Resolver {
	r := &Resolver{
		postal:   postal,
		geocoder: geocoder,
		breaker:  circuit.New("geocoder"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve looks up postalCode. It fails with a validation error for a
// malformed code, PostalCodeNotFound for an unknown one and Network when the
// postal service cannot be reached. Nothing is retried here.
func (r *Resolver) Resolve(ctx context.Context, postalCode string) (*models.Resolution, error) {
	if err := validation.ValidatePostalCode(postalCode); err != nil {
		r.metrics.IncrementAddressResolution(outcomeInvalidRequest)
		return nil, err
	}
	code := validation.NormalizePostalCode(postalCode)

	postal, err := r.postal.Lookup(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			r.metrics.IncrementAddressResolution(outcomeNotFound)
			return nil, dErrors.Wrap(err, dErrors.CodePostalCodeNotFound, "postal code not found")
		}
		r.metrics.IncrementAddressResolution(outcomeNetwork)
		return nil, dErrors.Wrap(err, dErrors.CodeNetwork, "could not reach the postal code service")
	}

	res := &models.Resolution{PostalCode: code, Address: postal.Address()}
	if coords, ok := r.geocode(ctx, res.Address); ok {
		res.Address.SetCoordinates(coords)
		res.Geocoded = true
		r.metrics.IncrementAddressResolution(outcomeResolved)
	} else {
		r.metrics.IncrementAddressResolution(outcomeNoCoordinates)
	}
	return res, nil
}

func (r *Resolver) geocode(ctx context.Context, addr models.Address) (models.Coordinates, bool) {
	if r.geocoder == nil {
		return models.Coordinates{}, false
	}
	if !r.breaker.Allow() {
		r.logger.DebugContext(ctx, "geocoder circuit open, skipping coordinates")
		return models.Coordinates{}, false
	}

	candidates, err := r.geocoder.Geocode(ctx, addr.GeocodeQuery())
	if err != nil {
		// A caller that gave up says nothing about the geocoder's health.
		if ctx.Err() != nil {
			return models.Coordinates{}, false
		}
		if _, change := r.breaker.RecordFailure(); change.Opened {
			r.logger.WarnContext(ctx, "geocoder circuit opened", "breaker", r.breaker.Name())
		}
		r.logger.WarnContext(ctx, "geocoding failed", "query", addr.GeocodeQuery(), "error", err)
		return models.Coordinates{}, false
	}
	if _, change := r.breaker.RecordSuccess(); change.Closed {
		r.logger.InfoContext(ctx, "geocoder circuit closed", "breaker", r.breaker.Name())
	}
	if len(candidates) == 0 {
		return models.Coordinates{}, false
	}
	return candidates[0], true
}
