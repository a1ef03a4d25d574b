package nws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultBaseURL   = "https://api.weather.gov"
	defaultUserAgent = "(sms-relay, ops@example.com)"
	defaultAccept    = "application/ld+json"
	maxBodyBytes     = 8 << 20
)

// Config tunes the api.weather.gov client.
type Config struct {
	BaseURL   string
	UserAgent string
	Accept    string
	Timeout   time.Duration
	Breaker   BreakerConfig
}

// BreakerConfig controls when the client stops calling a failing upstream.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	OpenTimeout         time.Duration
	ConsecutiveFailures uint32
}

// Client issues read-only GETs against the National Weather Service API.
type Client struct {
	baseURL    string
	userAgent  string
	accept     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds an API client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	accept := strings.TrimSpace(cfg.Accept)
	if accept == "" {
		accept = defaultAccept
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		accept:     accept,
		httpClient: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nws",
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
}

// PointURL returns the point lookup endpoint for decimal coordinates.
func (c *Client) PointURL(lat, lon float64) string {
	return fmt.Sprintf("%s/points/%s,%s", c.baseURL, formatDegrees(lat), formatDegrees(lon))
}

// Get fetches rawURL and returns the status code and body. Non-2xx responses
// are returned as data; only transport failures and an open circuit are errors.
func (c *Client) Get(ctx context.Context, rawURL string) (int, []byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build nws request: %w", err)
		}
		req.Header.Set("Accept", c.accept)
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("nws request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read nws response: %w", err)
		}
		out := fetchResult{status: resp.StatusCode, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			// counted as a breaker failure, still handed back to the caller
			return out, errUpstream
		}
		return out, nil
	})
	if errors.Is(err, errUpstream) {
		res := result.(fetchResult)
		return res.status, res.body, nil
	}
	if err != nil {
		return 0, nil, err
	}
	res := result.(fetchResult)
	return res.status, res.body, nil
}

var errUpstream = errors.New("nws upstream error")

type fetchResult struct {
	status int
	body   []byte
}

// formatDegrees renders the shortest decimal that round-trips v. The API
// redirects requests with more than four decimals to the rounded point.
func formatDegrees(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
