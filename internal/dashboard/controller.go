// Package dashboard owns the state behind the weather dashboard: the fetch
// status, the searched place and the selected tab.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neexbeast/weather-dashboard/internal/weather"
)

// Phase is the coarse fetch status of the dashboard.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText lets Phase render as its name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// View is the selected tab.
type View string

const (
	ViewCurrent  View = "current"
	ViewForecast View = "forecast"
)

// ParseView validates a tab name.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewCurrent, ViewForecast:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Status is the tri-state result of the latest search. Message is set only in
// PhaseError and Data only in PhaseReady.
type Status struct {
	Phase   Phase                      `json:"phase"`
	Message string                     `json:"message,omitempty"`
	Data    *weather.AggregatedWeather `json:"data,omitempty"`
}

// State is a point-in-time copy of the dashboard for rendering.
type State struct {
	Status Status `json:"status"`
	Place  string `json:"place"`
	View   View   `json:"view"`
	// Seq is the number of the latest search issued.
	Seq uint64 `json:"seq"`
}

// WeatherFetcher is the Coordinator as seen by the controller.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, place string) (*weather.AggregatedWeather, error)
}

// Recorder is notified of every result the dashboard accepts.
type Recorder interface {
	RecordSearch(ctx context.Context, place string, data weather.AggregatedWeather) error
}

// Controller is the dashboard's state container. All mutation goes through
// Search and SelectView; readers get copies via Snapshot.
type Controller struct {
	fetcher      WeatherFetcher
	recorder     Recorder
	defaultPlace string
	log          *slog.Logger

	mu     sync.RWMutex
	status Status
	place  string
	view   View
	seq    uint64

	wg sync.WaitGroup
}

// New constructs an idle Controller. Call Start to load the default place.
func New(fetcher WeatherFetcher, defaultPlace string, log *slog.Logger) *Controller {
	return &Controller{
		fetcher:      fetcher,
		defaultPlace: defaultPlace,
		log:          log,
		status:       Status{Phase: PhaseIdle},
		place:        defaultPlace,
		view:         ViewCurrent,
	}
}

// SetRecorder installs a hook that receives each accepted result.
func (c *Controller) SetRecorder(r Recorder) {
	c.recorder = r
}

// Start submits a background search for the default place.
func (c *Controller) Start(ctx context.Context) {
	c.Submit(ctx, c.defaultPlace)
}

// Submit starts a search in the background. The search is issued, and the
// status is Loading, by the time Submit returns. It reports false, without
// starting anything, when text is blank.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	place, ok := weather.NormalizePlace(text)
	if !ok {
		c.log.Debug("ignoring blank search")
		return false
	}
	seq := c.begin(place)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.settle(ctx, seq, place)
	}()
	return true
}

// Wait blocks until every search started by Submit has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Search fetches weather for text and blocks until it settles. Blank input is
// a no-op returning false. Each search takes a sequence number when issued;
// when it settles after a newer search was issued its result is dropped, so
// only the most recent search ever reaches the status.
func (c *Controller) Search(ctx context.Context, text string) bool {
	place, ok := weather.NormalizePlace(text)
	if !ok {
		c.log.Debug("ignoring blank search")
		return false
	}
	c.settle(ctx, c.begin(place), place)
	return true
}

// begin issues a search for place and returns its sequence number.
func (c *Controller) begin(place string) uint64 {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.place = place
	c.status = Status{Phase: PhaseLoading}
	c.mu.Unlock()

	c.log.Info("search started", "place", place, "seq", seq)
	return seq
}

// settle fetches place and applies the outcome if seq is still the latest.
func (c *Controller) settle(ctx context.Context, seq uint64, place string) {
	data, err := c.fetcher.FetchWeather(ctx, place)

	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		c.log.Info("discarding stale search result", "place", place, "seq", seq, "latest", latest)
		return
	}
	if err != nil {
		c.status = Status{Phase: PhaseError, Message: err.Error()}
	} else {
		c.status = Status{Phase: PhaseReady, Data: data}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("search failed", "place", place, "seq", seq, "kind", weather.KindOf(err).String(), "err", err)
		return
	}
	c.log.Info("search ready", "place", place, "seq", seq)
	if c.recorder != nil && data != nil {
		if rerr := c.recorder.RecordSearch(ctx, place, *data); rerr != nil {
			c.log.Warn("recording search failed", "place", place, "err", rerr)
		}
	}
}

// SelectView switches the tab. It does not touch the fetch status.
func (c *Controller) SelectView(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Status: c.status,
		Place:  c.place,
		View:   c.view,
		Seq:    c.seq,
	}
}
