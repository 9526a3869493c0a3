// Package config reads process configuration from the environment. A .env
// file in the working directory is loaded first when present; variables
// already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	ProviderLocal  = "local"
	ProviderGoTrue = "gotrue"

	devSigningKey = "dev-secret-key-change-in-production"
)

type Config struct {
	Env      string
	LogLevel string
	Server   Server
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Address  AddressConfig
	Kafka    KafkaConfig
	Donation DonationConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// PostgresConfig is empty-URL when documents live in memory.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is empty-URL when sessions and the postal cache live in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	Provider           string
	JWTSigningKey      string
	SessionTTL         time.Duration
	LoginRatePerMinute int
	MinPasswordLength  int
	GoTrue             GoTrueConfig
}

type GoTrueConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
}

type AddressConfig struct {
	PostalLookupURL   string
	GeocoderURL       string
	GeocoderUserAgent string
	HTTPClientTimeout time.Duration
	PostalCacheTTL    time.Duration
	Debounce          time.Duration
	DraftIdleTTL      time.Duration
}

// KafkaConfig is empty-brokers when reconciliation records stay in memory.
type KafkaConfig struct {
	Brokers             []string
	ReconciliationTopic string
}

type DonationConfig struct {
	PointsPerDonation int
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	r := &reader{}
	cfg := Config{
		Env:      r.str("APP_ENV", EnvDevelopment),
		LogLevel: r.str("LOG_LEVEL", "info"),
		Server: Server{
			Addr:              r.str("GIVEBRIDGE_ADDR", ":8080"),
			ReadHeaderTimeout: r.duration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   r.duration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    r.integer("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    r.integer("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.duration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     r.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: r.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  r.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  r.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: r.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			Provider:           strings.ToLower(r.str("AUTH_PROVIDER", ProviderLocal)),
			JWTSigningKey:      r.str("JWT_SIGNING_KEY", devSigningKey),
			SessionTTL:         r.duration("SESSION_TTL", 24*time.Hour),
			LoginRatePerMinute: r.integer("LOGIN_RATE_PER_MINUTE", 10),
			MinPasswordLength:  r.integer("MIN_PASSWORD_LENGTH", 6),
			GoTrue: GoTrueConfig{
				URL:        os.Getenv("GOTRUE_URL"),
				AnonKey:    os.Getenv("GOTRUE_ANON_KEY"),
				ServiceKey: os.Getenv("GOTRUE_SERVICE_KEY"),
			},
		},
		Address: AddressConfig{
			PostalLookupURL:   r.str("POSTAL_LOOKUP_URL", "https://viacep.com.br/ws"),
			GeocoderURL:       r.str("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
			GeocoderUserAgent: r.str("GEOCODER_USER_AGENT", "givebridge/1.0"),
			HTTPClientTimeout: r.duration("HTTP_CLIENT_TIMEOUT", 10*time.Second),
			PostalCacheTTL:    r.duration("POSTAL_CACHE_TTL", 24*time.Hour),
			Debounce:          r.duration("ADDRESS_DEBOUNCE", 400*time.Millisecond),
			DraftIdleTTL:      r.duration("REGISTRATION_DRAFT_TTL", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:             list(os.Getenv("KAFKA_BROKERS")),
			ReconciliationTopic: r.str("RECONCILIATION_TOPIC", "givebridge.reconciliation"),
		},
		Donation: DonationConfig{
			PointsPerDonation: r.integer("POINTS_PER_DONATION", 10),
		},
	}
	if err := r.err(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func (c Config) validate() error {
	var errs []error
	switch c.Auth.Provider {
	case ProviderLocal:
	case ProviderGoTrue:
		if c.Auth.GoTrue.URL == "" || c.Auth.GoTrue.AnonKey == "" {
			errs = append(errs, errors.New("AUTH_PROVIDER=gotrue requires GOTRUE_URL and GOTRUE_ANON_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q", ProviderLocal, ProviderGoTrue, c.Auth.Provider))
	}
	if c.Env == EnvProduction && c.Auth.Provider == ProviderLocal && c.Auth.JWTSigningKey == devSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in production"))
	}
	if c.Donation.PointsPerDonation < 0 {
		errs = append(errs, errors.New("POINTS_PER_DONATION must not be negative"))
	}
	if c.Auth.MinPasswordLength < 1 {
		errs = append(errs, errors.New("MIN_PASSWORD_LENGTH must be positive"))
	}
	return errors.Join(errs...)
}

// reader collects parse failures so every bad variable is reported at once.
type reader struct {
	errs []error
}

func (r *reader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *reader) integer(key string, fallback int) int {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return i
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (r *reader) err() error {
	return errors.Join(r.errs...)
}

func list(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
