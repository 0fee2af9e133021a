// Package view renders the dashboard state as HTML.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/neexbeast/weather-dashboard/internal/dashboard"
	"github.com/neexbeast/weather-dashboard/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxAlertsShown caps the alerts listed on the current tab; the heading still
// carries the total count.
const maxAlertsShown = 2

// refreshSeconds is how often a page showing an unsettled search reloads.
const refreshSeconds = 1

// Renderer executes the dashboard templates.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

type page struct {
	dashboard.State
	Today   time.Time
	Refresh int
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{now: time.Now}
	tmpl, err := template.New("").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// WithClock overrides the clock used for the date under the place header.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render writes the full dashboard page for s.
func (r *Renderer) Render(w io.Writer, s dashboard.State) error {
	p := page{State: s, Today: r.now()}
	if s.Status.Phase == dashboard.PhaseIdle || s.Status.Phase == dashboard.PhaseLoading {
		p.Refresh = refreshSeconds
	}
	if err := r.tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"icon":   Icon,
		"aqi":    AirQualityBand,
		"round":  Round,
		"fixed1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
		"num":    func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		"longDate": func(t time.Time) string {
			return t.Format("Monday, January 2, 2006")
		},
		"dayLabel": func(t time.Time) string {
			return t.Format("Monday, Jan 2")
		},
		"topAlerts": func(alerts []weather.WeatherAlert) []weather.WeatherAlert {
			if len(alerts) > maxAlertsShown {
				return alerts[:maxAlertsShown]
			}
			return alerts
		},
		"isView": func(v dashboard.View, name string) bool {
			return string(v) == name
		},
	}
}

// Round rounds half-way values up, so -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
