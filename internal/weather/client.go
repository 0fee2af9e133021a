package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the WeatherAPI.com v1 endpoint root.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

// Response is a raw provider answer: the status code and the unread body bytes.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the provider answered with a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Client issues authenticated GET requests against the WeatherAPI.com API.
// It does not interpret status codes; classification happens in the Coordinator.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient constructs a Client for the production API with no request timeout.
func NewClient(apiKey string) *Client {
	return NewClientWithURL(DefaultBaseURL, apiKey)
}

// NewClientWithURL constructs a Client pointing at a custom base URL.
func NewClientWithURL(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.client.Timeout = d
	return c
}

// WithRateLimit throttles outgoing requests to rps per second with the given
// burst. A non-positive rps disables throttling.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// Get requests endpoint (e.g. "current.json") with params plus the API key.
// An error is returned only when no response was received.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("key", c.apiKey)
	rawURL := c.baseURL + "/" + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", endpoint, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body from %s: %w", endpoint, err)
	}
	return &Response{Status: resp.StatusCode, Body: body}, nil
}

// redact keeps the API key out of transport errors, which embed the full URL.
func redact(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		ue.URL = strings.ReplaceAll(ue.URL, url.QueryEscape(key), "***")
		ue.URL = strings.ReplaceAll(ue.URL, key, "***")
		return err
	}
	q := u.Query()
	if q.Has("key") {
		q.Del("key")
		u.RawQuery = "key=***"
		if rest := q.Encode(); rest != "" {
			u.RawQuery += "&" + rest
		}
	}
	ue.URL = u.String()
	return err
}
