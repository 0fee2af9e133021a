package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/weather-dashboard/internal/weather"
)

// DefaultTTL keeps aggregated weather for ten minutes, about how often the
// provider refreshes current conditions.
const DefaultTTL = 10 * time.Minute

// Cache stores aggregated weather in Redis keyed by normalized place name.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache. A non-positive ttl falls back to DefaultTTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func key(place string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(place))
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, place string) (*weather.AggregatedWeather, error) {
	val, err := c.client.Get(ctx, key(place)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for %s: %w", place, err)
	}

	var data weather.AggregatedWeather
	if err := json.Unmarshal(val, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling cached weather for %s: %w", place, err)
	}
	return &data, nil
}

// Set stores data with the configured TTL. A nil data is ignored.
func (c *Cache) Set(ctx context.Context, place string, data *weather.AggregatedWeather) error {
	if data == nil {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling weather for %s: %w", place, err)
	}

	if err := c.client.Set(ctx, key(place), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s: %w", place, err)
	}
	return nil
}

// Delete removes the cached entry for place.
func (c *Cache) Delete(ctx context.Context, place string) error {
	if err := c.client.Del(ctx, key(place)).Err(); err != nil {
		return fmt.Errorf("cache delete for %s: %w", place, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
