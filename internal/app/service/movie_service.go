package service

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
)

// Canned recommendation queries.
const (
	FamilyQuery = "family friendly movies"
	KidsQuery   = "kids movies"
	healthQuery = "action movies"
)

// movieListKeys are the object fields checked, in order, for the movie list
// when the recommender does not answer with a bare array.
var movieListKeys = []string{"movies", "results", "data"}

// MovieVendor is the AI Movie Recommender API.
// Implementation: internal/infra/provider/movies
type MovieVendor interface {
	Name() string
	Search(ctx context.Context, query string) ([]byte, error)
	LookupID(ctx context.Context, title string) ([]byte, error)
}

// Recommendations is a recommender reply reduced to its movie list.
type Recommendations struct {
	Query  string
	Movies []json.RawMessage
	Status facade.Status
}

// Total returns the number of movies.
func (r Recommendations) Total() int {
	return len(r.Movies)
}

// MovieService serves movie recommendations and ID lookups.
type MovieService struct {
	vendor  MovieVendor
	fetcher Fetcher
	logger  *zap.Logger
}

// NewMovieService creates a new MovieService.
func NewMovieService(vendor MovieVendor, fetcher Fetcher, logger *zap.Logger) *MovieService {
	return &MovieService{
		vendor:  vendor,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Search returns recommendations for a natural-language query.
// Queries are normalized, so "Happy  Movies" and "happy movies" share a cache entry.
func (s *MovieService) Search(ctx context.Context, query string) (Recommendations, error) {
	query = domain.NormalizeText(query)
	q := domain.NewQuery(domain.CategoryMovieRecommendations, "search", map[string]string{"q": query})

	res, err := s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Search(ctx, query)
	})
	if err != nil {
		return Recommendations{}, err
	}

	return Recommendations{
		Query:  query,
		Movies: s.extractMovies(query, res.Body),
		Status: res.Status,
	}, nil
}

// ByMood recommends movies for a mood, optionally within a decade such as "90s".
func (s *MovieService) ByMood(ctx context.Context, mood, decade string) (Recommendations, error) {
	return s.Search(ctx, qualified(decade, mood))
}

// ByGenre recommends movies for a genre, optionally from one year.
func (s *MovieService) ByGenre(ctx context.Context, genre, year string) (Recommendations, error) {
	return s.Search(ctx, qualified(year, genre))
}

// Family recommends family friendly movies.
func (s *MovieService) Family(ctx context.Context) (Recommendations, error) {
	return s.Search(ctx, FamilyQuery)
}

// Kids recommends movies for children.
func (s *MovieService) Kids(ctx context.Context) (Recommendations, error) {
	return s.Search(ctx, KidsQuery)
}

// LookupID returns the TMDB and IMDb identifiers for a title. The body is passed through.
func (s *MovieService) LookupID(ctx context.Context, title string) (facade.Result, error) {
	title = domain.NormalizeText(title)
	q := domain.NewQuery(domain.CategoryMovieIDs, "lookup", map[string]string{"title": title})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.LookupID(ctx, title)
	})
}

// Test checks connectivity with an uncached call.
func (s *MovieService) Test(ctx context.Context) (string, error) {
	if _, err := s.vendor.Search(ctx, healthQuery); err != nil {
		return "", err
	}

	return s.vendor.Name(), nil
}

// extractMovies finds the movie list in a recommender body: either the body
// itself is an array, or the first array among movieListKeys. Anything else
// yields an empty list.
func (s *MovieService) extractMovies(query string, body []byte) []json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return nonNil(list)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err == nil {
		for _, k := range movieListKeys {
			raw, ok := object[k]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &list); err == nil {
				return nonNil(list)
			}
		}
	}

	s.logger.Warn("recommender reply has no movie list",
		zap.String("query", query),
		zap.Int("bytes", len(body)),
	)

	return []json.RawMessage{}
}

func qualified(qualifier, subject string) string {
	if qualifier == "" {
		return fmt.Sprintf("%s movies", subject)
	}

	return fmt.Sprintf("%s %s movies", qualifier, subject)
}

func nonNil(list []json.RawMessage) []json.RawMessage {
	if list == nil {
		return []json.RawMessage{}
	}

	return list
}
