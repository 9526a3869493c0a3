package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS", "AUTH_PROVIDER", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ProviderLocal, cfg.Auth.Provider)
	assert.Equal(t, 10, cfg.Donation.PointsPerDonation)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 400*time.Millisecond, cfg.Address.Debounce)
	assert.Empty(t, cfg.Postgres.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GIVEBRIDGE_ADDR", ":9090")
	t.Setenv("AUTH_PROVIDER", "GoTrue")
	t.Setenv("GOTRUE_URL", "http://gotrue:9999")
	t.Setenv("GOTRUE_ANON_KEY", "anon")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("POINTS_PER_DONATION", "25")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, ProviderGoTrue, cfg.Auth.Provider)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 25, cfg.Donation.PointsPerDonation)
}

func TestFromEnvRejects(t *testing.T) {
	t.Run("unparseable values are all reported", func(t *testing.T) {
		t.Setenv("AUTH_PROVIDER", "")
		t.Setenv("SESSION_TTL", "forever")
		t.Setenv("LOGIN_RATE_PER_MINUTE", "ten")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_TTL")
		assert.Contains(t, err.Error(), "LOGIN_RATE_PER_MINUTE")
	})

	t.Run("gotrue without endpoint", func(t *testing.T) {
		t.Setenv("AUTH_PROVIDER", "gotrue")
		t.Setenv("GOTRUE_URL", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "GOTRUE_URL")
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("AUTH_PROVIDER", "ldap")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "AUTH_PROVIDER")
	})

	t.Run("production needs a signing key", func(t *testing.T) {
		t.Setenv("AUTH_PROVIDER", "local")
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SIGNING_KEY", "")

		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_SIGNING_KEY")
	})
}
