package service

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/provider/streaming"
)

// DefaultCountry is used when a streaming request names no country.
const DefaultCountry = "us"

// Discovery defaults.
const (
	DefaultOrderBy         = "popularity_1year"
	DefaultOrderDirection  = "desc"
	DefaultTrendingPeriod  = "1week"
	DefaultShowGranularity = "episode"
)

// trendingOrder maps a trending window to the popularity sort it ranks by.
var trendingOrder = map[string]string{
	"1day":    "popularity_1day",
	"1week":   "popularity_1week",
	"1month":  "popularity_1month",
	"1year":   "popularity_1year",
	"alltime": "popularity_alltime",
}

// TrendingOptions selects a trending list.
type TrendingOptions struct {
	Country  string
	Catalogs []string
	ShowType string
	Period   string // 1day, 1week, 1month, 1year or alltime
}

// StreamingVendor is the Streaming Availability API.
// Implementation: internal/infra/provider/streaming
type StreamingVendor interface {
	Name() string
	Services(ctx context.Context, country string) ([]byte, error)
	SearchTitle(ctx context.Context, title, country, showType string) ([]byte, error)
	Show(ctx context.Context, showType, showID, country string) ([]byte, error)
	ShowByID(ctx context.Context, showID, country, granularity string) ([]byte, error)
	SearchFilters(ctx context.Context, filter streaming.ShowFilter) ([]byte, error)
	Changes(ctx context.Context, country string) ([]byte, error)
	Countries(ctx context.Context) ([]byte, error)
	Genres(ctx context.Context) ([]byte, error)
}

// StreamingService serves streaming catalog lookups.
type StreamingService struct {
	vendor  StreamingVendor
	fetcher Fetcher
	logger  *zap.Logger
}

// NewStreamingService creates a new StreamingService.
func NewStreamingService(vendor StreamingVendor, fetcher Fetcher, logger *zap.Logger) *StreamingService {
	return &StreamingService{
		vendor:  vendor,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Services lists streaming services available in country.
func (s *StreamingService) Services(ctx context.Context, country string) (facade.Result, error) {
	country = normalizeCountry(country)
	q := domain.NewQuery(domain.CategoryStreaming, "services", map[string]string{"country": country})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Services(ctx, country)
	})
}

// SearchShows searches shows by title. showType is "movie", "series" or empty for both.
func (s *StreamingService) SearchShows(ctx context.Context, title, country, showType string) (facade.Result, error) {
	title = domain.NormalizeText(title)
	country = normalizeCountry(country)
	q := domain.NewQuery(domain.CategoryStreaming, "search", map[string]string{
		"title":     title,
		"country":   country,
		"show_type": showType,
	})

	s.logger.Debug("searching shows",
		zap.String("title", title),
		zap.String("country", country),
		zap.String("show_type", showType),
	)

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.SearchTitle(ctx, title, country, showType)
	})
}

// ShowDetails returns one show with its streaming options in country.
func (s *StreamingService) ShowDetails(ctx context.Context, showType, showID, country string) (facade.Result, error) {
	country = normalizeCountry(country)
	q := domain.NewQuery(domain.CategoryStreaming, "show", map[string]string{
		"show_type": showType,
		"show_id":   showID,
		"country":   country,
	})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Show(ctx, showType, showID, country)
	})
}

// ShowByID returns one show by id. Series carry seasons, or seasons and
// episodes, depending on granularity; empty means episode.
func (s *StreamingService) ShowByID(ctx context.Context, showID, country, granularity string) (facade.Result, error) {
	country = normalizeCountry(country)
	if granularity == "" {
		granularity = DefaultShowGranularity
	}
	q := domain.NewQuery(domain.CategoryStreaming, "show-by-id", map[string]string{
		"show_id":            showID,
		"country":            country,
		"series_granularity": granularity,
	})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.ShowByID(ctx, showID, country, granularity)
	})
}

// Discover searches shows by catalog, genre, year, rating and keyword.
// Results are ranked by one-year popularity, most popular first, unless the filter says otherwise.
func (s *StreamingService) Discover(ctx context.Context, filter streaming.ShowFilter) (facade.Result, error) {
	filter.Country = normalizeCountry(filter.Country)
	filter.Catalogs = normalizeList(filter.Catalogs)
	filter.Genres = normalizeList(filter.Genres)
	filter.Keyword = domain.NormalizeText(filter.Keyword)
	if filter.OrderBy == "" {
		filter.OrderBy = DefaultOrderBy
	}
	if filter.OrderDirection == "" {
		filter.OrderDirection = DefaultOrderDirection
	}

	q := domain.NewQuery(domain.CategoryStreamingTrending, "discover", filter.Params())

	s.logger.Debug("discovering shows", zap.String("key", q.Key()))

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.SearchFilters(ctx, filter)
	})
}

// Trending lists the most popular shows over a time window.
func (s *StreamingService) Trending(ctx context.Context, opts TrendingOptions) (facade.Result, error) {
	period := opts.Period
	if period == "" {
		period = DefaultTrendingPeriod
	}
	order, ok := trendingOrder[period]
	if !ok {
		return facade.Result{}, domain.NewValidationError("period",
			"period must be one of: 1day 1week 1month 1year alltime")
	}

	return s.Discover(ctx, streaming.ShowFilter{
		Country:        opts.Country,
		Catalogs:       opts.Catalogs,
		ShowType:       opts.ShowType,
		OrderBy:        order,
		OrderDirection: DefaultOrderDirection,
	})
}

// NewShows lists shows recently added to catalogs in country.
func (s *StreamingService) NewShows(ctx context.Context, country string) (facade.Result, error) {
	country = normalizeCountry(country)
	q := domain.NewQuery(domain.CategoryStreaming, "new", map[string]string{"country": country})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Changes(ctx, country)
	})
}

// Countries lists supported countries.
func (s *StreamingService) Countries(ctx context.Context) (facade.Result, error) {
	q := domain.NewQuery(domain.CategoryStreamingReference, "countries", nil)

	return s.fetcher.Get(ctx, q, s.vendor.Countries)
}

// Genres lists supported genres.
func (s *StreamingService) Genres(ctx context.Context) (facade.Result, error) {
	q := domain.NewQuery(domain.CategoryStreamingReference, "genres", nil)

	return s.fetcher.Get(ctx, q, s.vendor.Genres)
}

// Test checks connectivity with an uncached call.
func (s *StreamingService) Test(ctx context.Context) (string, error) {
	if _, err := s.vendor.Countries(ctx); err != nil {
		return "", err
	}

	return s.vendor.Name(), nil
}

// normalizeList lower-cases, de-duplicates and sorts values so equal sets share a cache key.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)

	return slices.Compact(out)
}

func normalizeCountry(country string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return DefaultCountry
	}

	return country
}
