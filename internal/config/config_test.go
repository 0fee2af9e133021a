package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/weather-dashboard/internal/config"
	"github.com/neexbeast/weather-dashboard/internal/weather"
)

var allKeys = []string{
	"WEATHERAPI_KEY", "WEATHERAPI_BASE_URL", "DEFAULT_PLACE", "PORT",
	"PROVIDER_TIMEOUT", "PROVIDER_RPS", "PROVIDER_BURST",
	"REDIS_URL", "CACHE_TTL", "DATABASE_URL", "API_TOKEN",
	"RATE_LIMIT_PER_MINUTE", "LOG_LEVEL",
}

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_KEY", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.WeatherAPIKey)
	assert.Equal(t, weather.DefaultBaseURL, cfg.WeatherAPIBaseURL)
	assert.Equal(t, "London", cfg.DefaultPlace)
	assert.Equal(t, "8080", cfg.Port)
	assert.Zero(t, cfg.ProviderTimeout)
	assert.Zero(t, cfg.ProviderRPS)
	assert.Equal(t, 5, cfg.ProviderBurst)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.APIToken)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_KEY", "secret")
	t.Setenv("WEATHERAPI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("DEFAULT_PLACE", "Tokyo")
	t.Setenv("PORT", "9090")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("PROVIDER_RPS", "2.5")
	t.Setenv("PROVIDER_BURST", "10")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("DATABASE_URL", "postgres://localhost/weather")
	t.Setenv("API_TOKEN", "tok")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1", cfg.WeatherAPIBaseURL)
	assert.Equal(t, "Tokyo", cfg.DefaultPlace)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 2.5, cfg.ProviderRPS)
	assert.Equal(t, 10, cfg.ProviderBurst)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "postgres://localhost/weather", cfg.DatabaseURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PROVIDER_TIMEOUT", "soon"},
		{"PROVIDER_TIMEOUT", "-1s"},
		{"PROVIDER_RPS", "fast"},
		{"PROVIDER_RPS", "-1"},
		{"PROVIDER_BURST", "many"},
		{"CACHE_TTL", "forever"},
		{"RATE_LIMIT_PER_MINUTE", "0"},
		{"RATE_LIMIT_PER_MINUTE", "lots"},
		{"LOG_LEVEL", "chatty"},
		{"DEFAULT_PLACE", "   "},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("WEATHERAPI_KEY", "secret")
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
