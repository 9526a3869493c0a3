package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	addressCache "givebridge/internal/address/cache"
	"givebridge/internal/address/geocode/nominatim"
	"givebridge/internal/address/lookup/viacep"
	addressService "givebridge/internal/address/service"
	authHandler "givebridge/internal/auth/handler"
	"givebridge/internal/auth/provider"
	"givebridge/internal/auth/provider/gotrue"
	"givebridge/internal/auth/provider/local"
	authService "givebridge/internal/auth/service"
	sessionStore "givebridge/internal/auth/store/session"
	donationHandler "givebridge/internal/donation/handler"
	donationService "givebridge/internal/donation/service"
	donationStore "givebridge/internal/donation/store"
	"givebridge/internal/platform/config"
	"givebridge/internal/platform/httpserver"
	"givebridge/internal/platform/logger"
	"givebridge/internal/platform/metrics"
	"givebridge/internal/platform/postgres"
	platformRedis "givebridge/internal/platform/redis"
	profileService "givebridge/internal/profile/service"
	profileStore "givebridge/internal/profile/store"
	"givebridge/internal/reconciliation"
	reconciliationKafka "givebridge/internal/reconciliation/kafka"
	reconciliationMemory "givebridge/internal/reconciliation/memory"
	registrationHandler "givebridge/internal/registration/handler"
	registrationService "givebridge/internal/registration/service"
	httptransport "givebridge/internal/transport/http"
	"givebridge/internal/validation"
)

const startupTimeout = 30 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("givebridge stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("givebridge stopped")
}

// infra holds the optional backing services; nil fields mean in-memory mode.
type infra struct {
	db    *sql.DB
	redis *platformRedis.Client
	sink  *reconciliationKafka.Sink
}

func (i *infra) close(log *slog.Logger) {
	if i.sink != nil {
		i.sink.Close()
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Warn("closing redis", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Warn("closing postgres", "error", err)
		}
	}
}

func connect(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	in := &infra{}
	var err error
	if in.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
		return nil, err
	}
	if in.db != nil {
		if err := postgres.Migrate(ctx, in.db); err != nil {
			in.close(log)
			return nil, err
		}
		log.Info("using postgres document stores")
	}

	if in.redis, err = platformRedis.New(ctx, cfg.Redis); err != nil {
		in.close(log)
		return nil, err
	}
	if in.redis != nil {
		log.Info("using redis for sessions and postal cache")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		if in.sink, err = reconciliationKafka.New(cfg.Kafka.Brokers, cfg.Kafka.ReconciliationTopic); err != nil {
			in.close(log)
			return nil, err
		}
		if err := in.sink.EnsureTopic(ctx, 1, 1); err != nil {
			log.Warn("reconciliation topic not ensured", "topic", in.sink.Topic(), "error", err)
		}
		log.Info("emitting reconciliation records to kafka", "topic", in.sink.Topic())
	}
	return in, nil
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	in, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer in.close(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	policy := validation.Policy{MinPasswordLength: cfg.Auth.MinPasswordLength}
	checks := map[string]httptransport.HealthCheck{}

	// Documents.
	var (
		profiles  profileService.Store     = profileStore.NewInMemory()
		donations donationService.Store    = donationStore.NewInMemory()
		sessions  authService.SessionStore = sessionStore.New()
		postal    addressCache.Store       = addressCache.NewInMemory()
		sink      reconciliation.Sink      = reconciliationMemory.New()
	)
	if in.db != nil {
		profiles = profileStore.NewPostgres(in.db)
		donations = donationStore.NewPostgres(in.db)
		checks["postgres"] = in.db.PingContext
	}
	if in.redis != nil {
		sessions = sessionStore.NewRedis(in.redis.Client)
		postal = addressCache.NewRedis(in.redis.Client)
		checks["redis"] = in.redis.Health
	}
	if in.sink != nil {
		sink = in.sink
	}

	// Credentials.
	var credentials provider.Provider
	switch cfg.Auth.Provider {
	case config.ProviderGoTrue:
		credentials = gotrue.New(gotrue.Config{
			BaseURL:    cfg.Auth.GoTrue.URL,
			AnonKey:    cfg.Auth.GoTrue.AnonKey,
			ServiceKey: cfg.Auth.GoTrue.ServiceKey,
			Timeout:    cfg.Address.HTTPClientTimeout,
		})
	default:
		credentials = local.New(cfg.Auth.JWTSigningKey,
			local.WithTokenTTL(cfg.Auth.SessionTTL),
			local.WithPolicy(policy),
			local.WithLogger(log),
		)
	}
	gateway := authService.New(credentials, sessions,
		authService.WithLogger(log),
		authService.WithMetrics(m),
		authService.WithPolicy(policy),
		authService.WithSessionTTL(cfg.Auth.SessionTTL),
		authService.WithLoginRate(cfg.Auth.LoginRatePerMinute),
	)

	// Profiles and donations.
	profileSvc := profileService.New(profiles, profileService.WithLogger(log))
	recorder := donationService.New(donations, profileSvc,
		donationService.WithLogger(log),
		donationService.WithMetrics(m),
		donationService.WithPointsPerDonation(cfg.Donation.PointsPerDonation),
	)

	// Addresses.
	lookup := addressCache.NewCachedLookup(
		viacep.New(cfg.Address.PostalLookupURL, viacep.WithTimeout(cfg.Address.HTTPClientTimeout)),
		postal,
		addressCache.WithTTL(cfg.Address.PostalCacheTTL),
		addressCache.WithLogger(log),
		addressCache.WithMetrics(m),
	)
	geocoder := nominatim.New(cfg.Address.GeocoderURL,
		nominatim.WithTimeout(cfg.Address.HTTPClientTimeout),
		nominatim.WithUserAgent(cfg.Address.GeocoderUserAgent),
	)
	resolver := addressService.NewResolver(lookup, geocoder,
		addressService.WithLogger(log),
		addressService.WithMetrics(m),
	)
	drafts := addressService.NewDrafts(resolver,
		addressService.WithIdleTTL(cfg.Address.DraftIdleTTL),
		addressService.WithTrackerOptions(addressService.WithDebounce(cfg.Address.Debounce)),
		addressService.WithDraftsLogger(log),
	)

	// Registration.
	orchestrator := registrationService.New(gateway, profileSvc,
		registrationService.WithLogger(log),
		registrationService.WithMetrics(m),
		registrationService.WithPolicy(policy),
		registrationService.WithReconciliationSink(sink),
	)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:   log,
		Metrics:  m,
		Gatherer: reg,
		Checks:   checks,
	},
		authHandler.New(gateway, profileSvc, log),
		registrationHandler.New(orchestrator, drafts, log),
		donationHandler.New(recorder, gateway, log),
	)
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting givebridge", "addr", cfg.Server.Addr, "auth_provider", cfg.Auth.Provider)
		return httpserver.Run(gctx, srv, cfg.Server)
	})
	g.Go(func() error {
		return drafts.Run(gctx)
	})
	return g.Wait()
}
