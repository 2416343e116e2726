// Package provider provides the HTTP client shared by every upstream API.
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/metrics"
)

// ClientConfig holds configuration for a vendor client.
type ClientConfig struct {
	Name      string
	BaseURL   string
	Host      string // sent as x-rapidapi-host
	APIKey    string // sent as x-rapidapi-key
	UserAgent string
	Timeout   time.Duration
	Retry     RetryConfig
	CB        CBConfig
	RateLimit RateLimitConfig

	// Transport replaces the default HTTP transport. Used by tests.
	Transport http.RoundTripper
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// RateLimitConfig holds client-side rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Client performs GET requests against one vendor.
// It implements domain.Vendor.
type Client struct {
	name    string
	http    *resty.Client
	cb      *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient creates a vendor client. m may be nil.
func NewClient(cfg ClientConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	if m == nil {
		m = metrics.NewNop()
	}
	logger = logger.With(zap.String("vendor", cfg.Name))

	c := &Client{
		name:    cfg.Name,
		http:    newRestyClient(cfg, logger),
		metrics: m,
		logger:  logger,
	}
	c.cb = newCircuitBreaker(cfg.Name, cfg.CB, logger)

	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	return c
}

// Name returns the vendor identifier.
func (c *Client) Name() string {
	return c.name
}

// State returns the circuit breaker state.
func (c *Client) State() string {
	return c.cb.State().String()
}

// Get issues a GET for path with the given query parameters and returns the raw JSON body.
//
// Errors:
//   - *domain.VendorError for non-2xx replies and 2xx replies that are not JSON
//   - *domain.VendorUnreachableError for transport failures, timeouts, cancellation
//     and an open circuit breaker
func (c *Client) Get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	start := time.Now()

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.VendorUnreachableError{Vendor: c.name, Err: err}
	}

	c.observe(start, err)

	if err != nil {
		c.logger.Warn("vendor request failed",
			zap.String("path", path),
			zap.Error(err),
			zap.String("state", c.State()),
		)

		return nil, err
	}

	return body, nil
}

func (c *Client) do(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.VendorUnreachableError{Vendor: c.name, Err: err}
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, &domain.VendorUnreachableError{Vendor: c.name, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, domain.NewVendorError(c.name, resp.StatusCode(), resp.Body())
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, domain.NewVendorError(c.name, http.StatusBadGateway, []byte("response body is not valid JSON"))
	}

	return body, nil
}

func (c *Client) observe(start time.Time, err error) {
	c.metrics.VendorDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
	c.metrics.VendorRequests.WithLabelValues(c.name, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case domain.IsNotFound(err):
		return metrics.OutcomeNotFound
	case domain.IsUnreachable(err):
		return metrics.OutcomeUnreachable
	default:
		return metrics.OutcomeError
	}
}

// newRestyClient creates a resty client that retries transport failures only.
// HTTP statuses are never retried, and neither is a request whose context is done.
func newRestyClient(cfg ClientConfig, logger *zap.Logger) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(logger.Sugar()).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err == nil {
				return false
			}
			if r != nil && r.Request != nil && r.Request.Context().Err() != nil {
				return false
			}

			return true
		})

	if cfg.Transport != nil {
		client.SetTransport(cfg.Transport)
	}
	if cfg.APIKey != "" {
		client.SetHeader("x-rapidapi-key", cfg.APIKey)
	}
	if cfg.Host != "" {
		client.SetHeader("x-rapidapi-host", cfg.Host)
	}
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return client
}

// newCircuitBreaker creates a circuit breaker for a vendor.
// Only upstream-side failures count against it: 5xx, 429 and transport errors.
// A request cancelled by its caller is neutral.
func newCircuitBreaker(name string, cfg CBConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.FailureRatio
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var ve *domain.VendorError
			if errors.As(err, &ve) {
				return ve.Status < http.StatusInternalServerError && ve.Status != http.StatusTooManyRequests
			}

			return false
		},
		OnStateChange: func(_ string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return gobreaker.NewCircuitBreaker[[]byte](settings)
}
