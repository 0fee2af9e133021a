package api

import (
	"context"
	"io"

	"github.com/neexbeast/weather-dashboard/internal/dashboard"
	"github.com/neexbeast/weather-dashboard/internal/storage"
	"github.com/neexbeast/weather-dashboard/internal/weather"
)

// Dashboard is the controller operations the HTML pages drive.
type Dashboard interface {
	Submit(ctx context.Context, text string) bool
	SelectView(v dashboard.View) error
	Snapshot() dashboard.State
}

// Renderer turns a dashboard snapshot into a page.
type Renderer interface {
	Render(w io.Writer, s dashboard.State) error
}

// WeatherFetcher defines the provider aggregation needed by the JSON API.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, place string) (*weather.AggregatedWeather, error)
}

// WeatherCache defines the cache operations needed by handlers.
type WeatherCache interface {
	Get(ctx context.Context, place string) (*weather.AggregatedWeather, error)
	Set(ctx context.Context, place string, data *weather.AggregatedWeather) error
}

// HistoryRepo defines the search history operations needed by handlers.
type HistoryRepo interface {
	RecordSearch(ctx context.Context, query string, data weather.AggregatedWeather) error
	LatestForCity(ctx context.Context, city string) (*storage.Search, error)
	RecentSearches(ctx context.Context, limit int) ([]*storage.Search, error)
	SearchesByCondition(ctx context.Context, condition string, limit int) ([]*storage.Search, error)
}

// Pinger reports backend connectivity for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}
