// Package movies implements the AI Movie Recommender client.
package movies

import (
	"context"

	"what2watch-gateway/internal/infra/provider"
)

// Name identifies the vendor in errors, logs and metrics.
const Name = "movies"

// API paths.
const (
	SearchEndpoint = "/api/search"
	IDEndpoint     = "/api/getID"
)

// Client wraps the shared vendor client with recommender operations.
type Client struct {
	*provider.Client
}

// New creates an AI Movie Recommender client.
func New(base *provider.Client) *Client {
	return &Client{Client: base}
}

// Search returns recommendations for a natural-language query such as "90s sad movies".
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	return c.Get(ctx, SearchEndpoint, map[string]string{"q": query})
}

// LookupID returns the TMDB and IMDb identifiers for a title.
func (c *Client) LookupID(ctx context.Context, title string) ([]byte, error) {
	return c.Get(ctx, IDEndpoint, map[string]string{"title": title})
}
