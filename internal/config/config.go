// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/neexbeast/weather-dashboard/internal/weather"
)

// Config holds everything the server needs at startup. Empty RedisURL or
// DatabaseURL disables that backend.
type Config struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	DefaultPlace      string
	Port              string

	ProviderTimeout time.Duration
	ProviderRPS     float64
	ProviderBurst   int

	RedisURL string
	CacheTTL time.Duration

	DatabaseURL string

	APIToken           string
	RateLimitPerMinute int

	LogLevel slog.Level
}

// ErrMissingAPIKey is returned when WEATHERAPI_KEY is unset.
var ErrMissingAPIKey = errors.New("WEATHERAPI_KEY is required")

// Load reads Config from the process environment.
func Load() (Config, error) {
	cfg := Config{
		WeatherAPIKey:     os.Getenv("WEATHERAPI_KEY"),
		WeatherAPIBaseURL: getEnv("WEATHERAPI_BASE_URL", weather.DefaultBaseURL),
		DefaultPlace:      getEnv("DEFAULT_PLACE", "London"),
		Port:              getEnv("PORT", "8080"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		APIToken:          os.Getenv("API_TOKEN"),
	}
	if cfg.WeatherAPIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	place, ok := weather.NormalizePlace(cfg.DefaultPlace)
	if !ok {
		return Config{}, errors.New("DEFAULT_PLACE must not be blank")
	}
	cfg.DefaultPlace = place

	var err error
	if cfg.ProviderTimeout, err = durationEnv("PROVIDER_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.ProviderRPS, err = floatEnv("PROVIDER_RPS", 0); err != nil {
		return Config{}, err
	}
	if cfg.ProviderBurst, err = intEnv("PROVIDER_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMinute, err = intEnv("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMinute <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, v)
	}
	return f, nil
}
