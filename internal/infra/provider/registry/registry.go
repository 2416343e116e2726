// Package registry builds the vendor clients from configuration.
package registry

import (
	"net/http"

	"go.uber.org/zap"

	"what2watch-gateway/internal/config"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/provider"
	"what2watch-gateway/internal/infra/provider/football"
	"what2watch-gateway/internal/infra/provider/movies"
	"what2watch-gateway/internal/infra/provider/streaming"
	"what2watch-gateway/internal/metrics"
)

// Vendors holds one client per upstream API.
type Vendors struct {
	Streaming *streaming.Client
	Football  *football.Client
	Movies    *movies.Client
}

// All returns the vendors in a stable order, for status reporting.
func (v *Vendors) All() []domain.Vendor {
	return []domain.Vendor{v.Streaming, v.Football, v.Movies}
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	transport http.RoundTripper
}

// WithTransport makes every client use rt instead of the default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// NewVendors creates all vendor clients. The RapidAPI key is shared by the
// streaming and movie vendors; the football vendor has its own key.
func NewVendors(cfg config.VendorsConfig, creds config.CredentialsConfig, m *metrics.Metrics, logger *zap.Logger, opts ...Option) *Vendors {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Vendors{
		Streaming: streaming.New(provider.NewClient(clientConfig(streaming.Name, cfg.Streaming, creds.RapidAPIKey, o), m, logger)),
		Football:  football.New(provider.NewClient(clientConfig(football.Name, cfg.Football, creds.FootballKey, o), m, logger)),
		Movies:    movies.New(provider.NewClient(clientConfig(movies.Name, cfg.Movies, creds.RapidAPIKey, o), m, logger)),
	}
}

func clientConfig(name string, ep config.VendorEndpoint, apiKey string, o options) provider.ClientConfig {
	return provider.ClientConfig{
		Name:      name,
		BaseURL:   ep.BaseURL,
		Host:      ep.Host,
		APIKey:    apiKey,
		UserAgent: ep.UserAgent,
		Timeout:   ep.Timeout,
		Retry: provider.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: provider.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
		RateLimit: provider.RateLimitConfig{
			RequestsPerSecond: ep.RateLimit.RequestsPerSecond,
			Burst:             ep.RateLimit.Burst,
		},
		Transport: o.transport,
	}
}
