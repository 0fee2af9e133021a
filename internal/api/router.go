package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterConfig carries the knobs NewRouter needs besides the handlers.
type RouterConfig struct {
	// Token guards /api/v1 except health. Empty disables auth.
	Token              string
	RateLimitPerMinute int
	DB                 Pinger
	Redis              Pinger
}

// NewRouter builds and returns the Chi router with all routes configured.
// Every route is rate limited per IP.
func NewRouter(handlers *Handlers, cfg RouterConfig, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))

	r.Get("/", handlers.Index)
	r.Post("/search", handlers.Search)
	r.Post("/view", handlers.SelectView)

	r.Get("/api/v1/health", HealthHandlerFunc(cfg.DB, cfg.Redis, log))

	r.Group(func(r chi.Router) {
		if cfg.Token != "" {
			r.Use(BearerAuth(cfg.Token))
		}
		r.Get("/api/v1/dashboard", handlers.GetDashboard)
		r.Get("/api/v1/weather/{city}", handlers.GetWeather)
		r.Get("/api/v1/history", handlers.ListHistory)
		r.Get("/api/v1/history/{city}", handlers.GetCityHistory)
	})

	return r
}
