package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neexbeast/weather-dashboard/internal/weather"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Querier abstracts the subset of pgxpool.Pool used by Repository.
// This allows injection of a mock in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Search is one stored dashboard result.
type Search struct {
	ID         uuid.UUID                 `json:"id"`
	Query      string                    `json:"query"`
	City       string                    `json:"city"`
	Country    string                    `json:"country"`
	Data       weather.AggregatedWeather `json:"data"`
	SearchedAt time.Time                 `json:"searched_at"`
}

// Repository stores search history.
type Repository struct {
	q Querier
}

// NewRepository constructs a Repository backed by the given pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewRepositoryWithQuerier constructs a Repository with a custom Querier (for tests).
func NewRepositoryWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

const searchColumns = `id, query, city, country, data, searched_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSearch(row scanner) (*Search, error) {
	var s Search
	var dataJSON []byte
	if err := row.Scan(&s.ID, &s.Query, &s.City, &s.Country, &dataJSON, &s.SearchedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dataJSON, &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshaling search data for %s: %w", s.City, err)
	}
	return &s, nil
}

// RecordSearch stores an accepted result. The city is the provider's resolved
// name, falling back to the query when the provider omitted it.
func (r *Repository) RecordSearch(ctx context.Context, query string, data weather.AggregatedWeather) error {
	city := data.Current.Place.Name
	if city == "" {
		city = query
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling search data for %s: %w", city, err)
	}

	const q = `
		INSERT INTO searches (id, query, city, country, data, searched_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	if _, err := r.q.Exec(ctx, q, uuid.New(), query, city, data.Current.Place.Country, dataJSON); err != nil {
		return fmt.Errorf("inserting search for %s: %w", city, err)
	}
	return nil
}

// LatestForCity returns the newest search whose resolved city or original
// query matches city, case-insensitively. Returns nil, nil when none exists.
func (r *Repository) LatestForCity(ctx context.Context, city string) (*Search, error) {
	const q = `
		SELECT ` + searchColumns + `
		FROM searches
		WHERE lower(city) = lower($1) OR lower(query) = lower($1)
		ORDER BY searched_at DESC
		LIMIT 1
	`

	s, err := scanSearch(r.q.QueryRow(ctx, q, city))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying latest search for %s: %w", city, err)
	}
	return s, nil
}

// RecentSearches returns up to limit searches, newest first.
func (r *Repository) RecentSearches(ctx context.Context, limit int) ([]*Search, error) {
	const q = `
		SELECT ` + searchColumns + `
		FROM searches
		ORDER BY searched_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, q, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	return collect(rows)
}

// SearchesByCondition returns searches whose current condition text equals
// condition, newest first. Uses the JSONB @> containment operator.
func (r *Repository) SearchesByCondition(ctx context.Context, condition string, limit int) ([]*Search, error) {
	filter, err := json.Marshal(map[string]any{
		"current": map[string]any{
			"condition": map[string]any{"text": condition},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling JSONB filter: %w", err)
	}

	const q = `
		SELECT ` + searchColumns + `
		FROM searches
		WHERE data @> $1::jsonb
		ORDER BY searched_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, q, string(filter), clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying searches by condition: %w", err)
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Search, error) {
	defer rows.Close()

	results := []*Search{}
	for rows.Next() {
		s, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search rows: %w", err)
	}
	return results, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
