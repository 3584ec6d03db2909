// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/racemap/cell-service/internal/config"
	"github.com/racemap/cell-service/internal/logging"
	"github.com/racemap/cell-service/internal/metrics"
)

// ErrNotYetPublished is returned when the upstream diff for a given date
// has not been published (HTTP 404). Callers should treat this as a soft
// failure, not a retryable error.
var ErrNotYetPublished = errors.New("fetch: upstream package not yet published")

// breakerName identifies this client's circuit breaker in logs and metrics.
const breakerName = "opencellid"

// Client retrieves cell export packages from the configured upstream,
// with bounded retry and circuit breaker protection.
type Client struct {
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*http.Response]
	baseURL    string
	apiKey     string
	maxRetries int
}

// NewClient builds a Client from cfg. The circuit breaker opens once at
// least 10 requests have been observed in the measurement window and 60%
// or more of them failed; it probes again after a one-minute cooldown.
func NewClient(cfg config.UpstreamConfig) *Client {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateName(from), stateName(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.StateValue(toStr))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		cb:         cb,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
	}
}

func stateName(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// FetchFull retrieves the full cell export snapshot.
func (c *Client) FetchFull(ctx context.Context) (io.ReadCloser, error) {
	return c.fetch(ctx, buildFullURL(c.baseURL, c.apiKey))
}

// FetchDiff retrieves the per-day diff export for date (interpreted as UTC).
func (c *Client) FetchDiff(ctx context.Context, date time.Time) (io.ReadCloser, error) {
	return c.fetch(ctx, buildDiffURL(c.baseURL, c.apiKey, date))
}

// fetch performs the GET with exponential backoff between attempts, making
// at most maxRetries attempts in total (at least one). A 404 response is terminal and returned
// as ErrNotYetPublished without consuming further retries, since it is not
// a transient fault.
func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	attempts := c.maxRetries
	if attempts <= 0 {
		attempts = 1
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 250 * time.Millisecond
	eb.MaxInterval = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	var body io.ReadCloser
	attempt := 0

	operation := func() error {
		attempt++
		resp, err := c.doOnce(ctx, url)
		if err == nil {
			body = resp.Body
			return nil
		}
		if errors.Is(err, ErrNotYetPublished) {
			return backoff.Permanent(err)
		}
		logging.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).Str("url", url).Msg("fetch attempt failed")
		return err
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, ErrNotYetPublished) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch: exhausted %d attempts: %w", attempts, err)
	}

	return body, nil
}

func (c *Client) doOnce(ctx context.Context, url string) (*http.Response, error) {
	resp, err := c.cb.Execute(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			_ = resp.Body.Close()
			return nil, ErrNotYetPublished
		case resp.StatusCode >= 500:
			_ = resp.Body.Close()
			return nil, fmt.Errorf("upstream returned %s", resp.Status)
		case resp.StatusCode != http.StatusOK:
			_ = resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else if errors.Is(err, ErrNotYetPublished) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return resp, nil
}
