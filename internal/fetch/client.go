package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/crop-dashboard/internal/geo"
)

var (
	errNoBaseURL    = errors.New("base url not configured")
	errBodyTooLarge = errors.New("response body too large")
)

// maxBodyBytes caps how much of a response body is read.
var maxBodyBytes int64 = 8 << 20

// Options configures a Client.
type Options struct {
	Name       string
	BaseURL    string
	HTTPClient *http.Client
	Backoff    BackoffConfig

	// BreakerThreshold is the number of consecutive failures that opens the
	// circuit. 0 disables the breaker.
	BreakerThreshold uint32
}

// Client performs JSON requests against a single backend.
type Client struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// New creates a Client. A nil HTTPClient falls back to http.DefaultClient.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		name:    opts.Name,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  hc,
			Backoff: opts.Backoff,
		},
		circuit: newBreaker(opts.Name, opts.BreakerThreshold),
	}
}

func (c *Client) Name() string {
	return c.name
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// GetJSON issues GET {base}/{path}?lat=..&lon=.. and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, coord geo.Coordinate, out any) error {
	if c.baseURL == "" {
		return ConfigError(fmt.Errorf("%s: %w", c.name, errNoBaseURL))
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", geo.QueryValue(coord.Lat))
		values.Set("lon", geo.QueryValue(coord.Lon))

		u := fmt.Sprintf("%s?%s", c.URL(path), values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp.Body, out)
}

// PostJSON marshals in, POSTs it to {base}/{path} with the given headers and
// decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, headers map[string]string, in, out any) error {
	if c.baseURL == "" {
		return ConfigError(fmt.Errorf("%s: %w", c.name, errNoBaseURL))
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return ConfigError(fmt.Errorf("marshal request: %w", err))
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.URL(path), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp.Body, out)
}

func decodeBody(r io.Reader, out any) error {
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return NetworkError(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > maxBodyBytes {
		return ParseError(errBodyTooLarge)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return ParseError(err)
	}
	return nil
}
