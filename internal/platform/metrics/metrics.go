package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DonationsSubmitted      *prometheus.CounterVec
	PointsIncrementFailures prometheus.Counter
	AddressResolutions      *prometheus.CounterVec
	Registrations           *prometheus.CounterVec
	Compensations           *prometheus.CounterVec
	PostalCache             *prometheus.CounterVec
	LoginsThrottled         prometheus.Counter
	ProviderCodesUnmapped   *prometheus.CounterVec
	HTTPRequestDuration     *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DonationsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_donations_submitted_total",
			Help: "Donation requests persisted, by delivery mode",
		}, []string{"delivery_mode"}),
		PointsIncrementFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "givebridge_points_increment_failures_total",
			Help: "Donations recorded whose donor points increment failed",
		}),
		AddressResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_address_resolutions_total",
			Help: "Postal code resolutions by outcome",
		}, []string{"outcome"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_registrations_total",
			Help: "Registration attempts by role and outcome",
		}, []string{"role", "outcome"}),
		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_compensations_total",
			Help: "Account deletions attempted after a failed profile creation, by outcome",
		}, []string{"outcome"}),
		PostalCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_postal_cache_total",
			Help: "Postal lookup cache hits and misses",
		}, []string{"result"}),
		LoginsThrottled: factory.NewCounter(prometheus.CounterOpts{
			Name: "givebridge_logins_throttled_total",
			Help: "Login attempts rejected by the local rate limiter",
		}),
		ProviderCodesUnmapped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "givebridge_provider_codes_unmapped_total",
			Help: "Credential provider error codes with no domain mapping",
		}, []string{"code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "givebridge_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementDonationsSubmitted(deliveryMode string) {
	if m == nil {
		return
	}
	m.DonationsSubmitted.WithLabelValues(deliveryMode).Inc()
}

func (m *Metrics) IncrementPointsIncrementFailures() {
	if m == nil {
		return
	}
	m.PointsIncrementFailures.Inc()
}

// IncrementAddressResolution records outcome: resolved, resolved_without_coordinates, not_found, network_error, invalid.
func (m *Metrics) IncrementAddressResolution(outcome string) {
	if m == nil {
		return
	}
	m.AddressResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRegistration(role, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) IncrementCompensation(outcome string) {
	if m == nil {
		return
	}
	m.Compensations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementPostalCache(result string) {
	if m == nil {
		return
	}
	m.PostalCache.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementLoginsThrottled() {
	if m == nil {
		return
	}
	m.LoginsThrottled.Inc()
}

func (m *Metrics) IncrementProviderCodeUnmapped(code string) {
	if m == nil {
		return
	}
	m.ProviderCodesUnmapped.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}
