// Package service provides the gateway use cases: one service per vendor,
// each shaping vendor queries and routing them through the cache-backed facade.
package service

import (
	"context"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
)

// Fetcher is the cache-backed facade as seen by services.
type Fetcher interface {
	Get(ctx context.Context, q domain.Query, load facade.Loader) (facade.Result, error)
}
