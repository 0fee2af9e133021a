package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/weather-dashboard/internal/weather"
)

// Handlers holds the dependencies for all HTTP handlers. cache and history
// may be nil when the backend is not configured.
type Handlers struct {
	dash     Dashboard
	renderer Renderer
	fetcher  WeatherFetcher
	cache    WeatherCache
	history  HistoryRepo
	log      *slog.Logger
}

// NewHandlers constructs Handlers. Pass a nil cache or history to disable it.
func NewHandlers(dash Dashboard, renderer Renderer, fetcher WeatherFetcher, cache WeatherCache, history HistoryRepo, log *slog.Logger) *Handlers {
	return &Handlers{
		dash:     dash,
		renderer: renderer,
		fetcher:  fetcher,
		cache:    cache,
		history:  history,
		log:      log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a fetch failure to the status the JSON API answers with.
func statusFor(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindInvalidQuery:
		return http.StatusBadRequest
	case weather.KindRateLimited:
		return http.StatusTooManyRequests
	case weather.KindInvalidCredential, weather.KindProviderError, weather.KindMalformedResponse:
		return http.StatusBadGateway
	case weather.KindNetworkFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetDashboard handles GET /api/v1/dashboard.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dash.Snapshot())
}

// GetWeather handles GET /api/v1/weather/{city}.
// Cache hit → return. Otherwise fetch, cache, record history and return.
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	place, ok := weather.NormalizePlace(chi.URLParam(r, "city"))
	if !ok {
		writeError(w, http.StatusBadRequest, "city must not be blank")
		return
	}

	if h.cache != nil {
		cached, err := h.cache.Get(r.Context(), place)
		if err != nil {
			h.log.Error("cache get failed", "place", place, "err", err)
		}
		if cached != nil {
			w.Header().Set("X-Cache", "HIT")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	data, err := h.fetcher.FetchWeather(r.Context(), place)
	if err != nil {
		kind := weather.KindOf(err)
		h.log.Warn("fetch weather failed", "place", place, "kind", kind.String(), "err", err)
		writeJSON(w, statusFor(kind), map[string]string{"error": err.Error(), "kind": kind.String()})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), place, data); err != nil {
			h.log.Warn("cache set failed after fetch", "place", place, "err", err)
		}
	}
	if h.history != nil {
		if err := h.history.RecordSearch(r.Context(), place, *data); err != nil {
			h.log.Warn("recording search failed", "place", place, "err", err)
		}
	}

	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, http.StatusOK, data)
}

// ListHistory handles GET /api/v1/history?limit=&condition=.
func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "search history is disabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var (
		results any
		err     error
	)
	if condition := r.URL.Query().Get("condition"); condition != "" {
		results, err = h.history.SearchesByCondition(r.Context(), condition, limit)
	} else {
		results, err = h.history.RecentSearches(r.Context(), limit)
	}
	if err != nil {
		h.log.Error("history query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// GetCityHistory handles GET /api/v1/history/{city}.
func (h *Handlers) GetCityHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "search history is disabled")
		return
	}

	city, ok := weather.NormalizePlace(chi.URLParam(r, "city"))
	if !ok {
		writeError(w, http.StatusBadRequest, "city must not be blank")
		return
	}
	s, err := h.history.LatestForCity(r.Context(), city)
	if err != nil {
		h.log.Error("history get failed", "city", city, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "no searches recorded for "+city)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// HealthHandlerFunc returns an http.HandlerFunc that pings the configured
// backends. A nil pinger is reported as disabled and does not degrade health.
func HealthHandlerFunc(db, redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		check := func(name string, p Pinger) string {
			if p == nil {
				return "disabled"
			}
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "backend", name, "err", err)
				status = http.StatusServiceUnavailable
				return "error"
			}
			return "ok"
		}
		dbStatus := check("db", db)
		redisStatus := check("redis", redis)

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
