package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
// MaxRetries of 0 means a single attempt.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

var (
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// newBreaker returns a breaker that opens after threshold consecutive failures.
// A threshold of 0 disables tripping.
func newBreaker(name string, threshold uint32) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
	})
}

// doRequestWithResilience executes the request through the circuit breaker,
// retrying with exponential backoff when cfg allows it. Non-2xx responses are
// closed and reported as HTTPError; transport failures as NetworkError.
func doRequestWithResilience(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, ConfigError(errNoHTTPClient)
	}
	if cfg.Backoff.MaxRetries < 0 || (cfg.Backoff.MaxRetries > 0 && cfg.Backoff.InitialInterval <= 0) {
		return nil, ConfigError(errInvalidConfig)
	}

	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, NetworkError(ctx.Err())
		}

		req, err := buildRequest()
		if err != nil {
			return nil, ConfigError(err)
		}
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, NetworkError(execErr)
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				// Drain so the connection can be reused.
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil, HTTPError(resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, NetworkError(fmt.Errorf("unexpected result type from circuit breaker"))
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NetworkError(fmt.Errorf("%w: %v", errCircuitOpen, err))
		}

		if attempt >= cfg.Backoff.MaxRetries || !retryable(err) {
			return nil, err
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, NetworkError(ctx.Err())
		case <-timer.C:
		}

		attempt++
	}
}

// retryable reports whether another attempt could plausibly succeed.
func retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork:
		return true
	case KindHTTP:
		status := StatusOf(err)
		return status == http.StatusTooManyRequests || status >= 500
	default:
		return false
	}
}
