package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// getter is the interface satisfied by Client.
type getter interface {
	Get(ctx context.Context, endpoint string, params url.Values) (*Response, error)
}

// request is one member of the fixed batch issued per search.
type request struct {
	name     string
	endpoint string
	params   url.Values
}

// Positions in the batch. Classification walks the batch in this order.
const (
	reqCurrent = iota
	reqForecast
	reqAirQuality
	reqAstronomy
	reqAlerts
	batchSize
)

// batch returns the five requests for place. The duplicate current call and
// the overlapping forecasts mirror what the dashboard has always requested.
func batch(place string) [batchSize]request {
	return [batchSize]request{
		reqCurrent: {
			name:     "current",
			endpoint: "current.json",
			params:   url.Values{"q": {place}, "aqi": {"yes"}},
		},
		reqForecast: {
			name:     "forecast-14",
			endpoint: "forecast.json",
			params:   url.Values{"q": {place}, "days": {"14"}, "aqi": {"yes"}, "alerts": {"yes"}},
		},
		reqAirQuality: {
			name:     "current-aqi",
			endpoint: "current.json",
			params:   url.Values{"q": {place}, "aqi": {"yes"}},
		},
		reqAstronomy: {
			name:     "astronomy",
			endpoint: "astronomy.json",
			params:   url.Values{"q": {place}},
		},
		reqAlerts: {
			name:     "forecast-3",
			endpoint: "forecast.json",
			params:   url.Values{"q": {place}, "days": {"3"}, "alerts": {"yes"}},
		},
	}
}

// outcome is what one request produced: a response, or err if none arrived.
type outcome struct {
	req  request
	resp *Response
	err  error
}

// rule maps a failed outcome to a classified error.
type rule struct {
	match func(o outcome) bool
	build func(o outcome) *Error
}

func statusIs(code int) func(o outcome) bool {
	return func(o outcome) bool { return o.resp != nil && o.resp.Status == code }
}

func fixed(kind ErrorKind, message string) func(o outcome) *Error {
	return func(o outcome) *Error {
		return &Error{
			Kind:    kind,
			Status:  o.resp.Status,
			Message: message,
			Err:     fmt.Errorf("%s returned status %d", o.req.name, o.resp.Status),
		}
	}
}

// classificationRules are tried in order against each outcome; the first
// match wins.
var classificationRules = []rule{
	{
		match: func(o outcome) bool { return o.err != nil || o.resp == nil },
		build: func(o outcome) *Error {
			err := o.err
			if err == nil {
				err = errors.New("no response received")
			}
			return networkFailure(o.req.name, err)
		},
	},
	{match: statusIs(http.StatusUnauthorized), build: fixed(KindInvalidCredential, msgInvalidCredential)},
	{match: statusIs(http.StatusBadRequest), build: fixed(KindInvalidQuery, msgInvalidQuery)},
	{match: statusIs(http.StatusTooManyRequests), build: fixed(KindRateLimited, msgRateLimited)},
	{
		match: func(o outcome) bool { return !o.resp.OK() },
		build: func(o outcome) *Error {
			e := providerError(o.resp.Status, providerMessage(o.resp.Body))
			e.Err = fmt.Errorf("%s returned status %d", o.req.name, o.resp.Status)
			return e
		},
	},
}

// classify returns the error for the first failed outcome in batch order, or
// nil when every request succeeded.
func classify(outcomes []outcome) *Error {
	for _, o := range outcomes {
		for _, r := range classificationRules {
			if r.match(o) {
				return r.build(o)
			}
		}
	}
	return nil
}

// Coordinator fans a search out to the provider and aggregates the answers.
type Coordinator struct {
	client getter
	log    *slog.Logger
}

// NewCoordinator constructs a Coordinator on top of client.
func NewCoordinator(client getter, log *slog.Logger) *Coordinator {
	return &Coordinator{client: client, log: log}
}

// FetchWeather issues the whole batch for place concurrently and waits for
// every request to settle. It returns either a complete AggregatedWeather or a
// single *Error describing the first failure in batch order; there are no
// retries and no partial results. place must already be trimmed and non-empty.
func (c *Coordinator) FetchWeather(ctx context.Context, place string) (*AggregatedWeather, error) {
	reqs := batch(place)
	outcomes := make([]outcome, len(reqs))

	var g errgroup.Group
	for i, r := range reqs {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					c.log.Error("provider request panicked", "request", r.name, "recover", rec)
					outcomes[i] = outcome{req: r, err: fmt.Errorf("%s panicked: %v", r.name, rec)}
				}
			}()
			resp, err := c.client.Get(ctx, r.endpoint, r.params)
			outcomes[i] = outcome{req: r, resp: resp, err: err}
			// Never fail the group: the join must wait for every request.
			return nil
		})
	}
	_ = g.Wait()

	if werr := classify(outcomes); werr != nil {
		c.log.Warn("weather fetch failed",
			"place", place,
			"kind", werr.Kind.String(),
			"status", werr.Status,
			"err", werr.Err,
		)
		return nil, werr
	}

	data, werr := aggregate(outcomes)
	if werr != nil {
		c.log.Warn("weather response malformed", "place", place, "err", werr.Err)
		return nil, werr
	}
	c.log.Info("weather fetched",
		"place", place,
		"resolved", data.Current.Place.Name,
		"forecast_days", len(data.Forecast),
		"alerts", len(data.Alerts),
	)
	return data, nil
}

// aggregate parses every successful body into one AggregatedWeather.
func aggregate(outcomes []outcome) (*AggregatedWeather, *Error) {
	var (
		data AggregatedWeather
		err  error
	)
	body := func(i int) []byte { return outcomes[i].resp.Body }

	if data.Current, err = parseCurrent(body(reqCurrent)); err != nil {
		return nil, malformedResponse(outcomes[reqCurrent].req.name, err)
	}
	if data.Forecast, err = parseForecast(body(reqForecast)); err != nil {
		return nil, malformedResponse(outcomes[reqForecast].req.name, err)
	}
	if data.AirQuality, err = parseAirQuality(body(reqAirQuality)); err != nil {
		return nil, malformedResponse(outcomes[reqAirQuality].req.name, err)
	}
	if data.Astronomy, err = parseAstronomy(body(reqAstronomy)); err != nil {
		return nil, malformedResponse(outcomes[reqAstronomy].req.name, err)
	}
	if data.Alerts, err = parseAlerts(body(reqAlerts)); err != nil {
		return nil, malformedResponse(outcomes[reqAlerts].req.name, err)
	}
	return &data, nil
}
