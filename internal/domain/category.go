package domain

import "time"

// Category groups queries that share one freshness policy.
type Category string

const (
	CategoryStreaming            Category = "streaming"
	CategoryStreamingReference   Category = "streaming-reference"
	CategoryStreamingTrending    Category = "streaming-trending"
	CategoryFootballFixtures     Category = "football-fixtures"
	CategoryFootballLive         Category = "football-live"
	CategoryFootballStandings    Category = "football-standings"
	CategoryFootballReference    Category = "football-reference"
	CategoryFootballTop5         Category = "football-top5"
	CategoryFootballTop5Live     Category = "football-top5-live"
	CategoryMovieRecommendations Category = "movie-recommendations"
	CategoryMovieIDs             Category = "movie-ids"
)

// Categories lists every known category.
func Categories() []Category {
	return []Category{
		CategoryStreaming,
		CategoryStreamingReference,
		CategoryStreamingTrending,
		CategoryFootballFixtures,
		CategoryFootballLive,
		CategoryFootballStandings,
		CategoryFootballReference,
		CategoryFootballTop5,
		CategoryFootballTop5Live,
		CategoryMovieRecommendations,
		CategoryMovieIDs,
	}
}

// TTLPolicy maps each category to how long its entries stay fresh.
// A TTL of zero or less disables caching for that category.
type TTLPolicy map[Category]time.Duration

// DefaultTTLPolicy returns the built-in TTL table.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		CategoryStreaming:            time.Hour,
		CategoryStreamingReference:   7 * 24 * time.Hour,
		CategoryStreamingTrending:    30 * time.Minute,
		CategoryFootballFixtures:     30 * time.Minute,
		CategoryFootballLive:         15 * time.Second,
		CategoryFootballStandings:    6 * time.Hour,
		CategoryFootballReference:    7 * 24 * time.Hour,
		CategoryFootballTop5:         time.Hour,
		CategoryFootballTop5Live:     time.Minute,
		CategoryMovieRecommendations: 6 * time.Hour,
		CategoryMovieIDs:             24 * time.Hour,
	}
}

// TTL returns the configured TTL for c. Unknown categories are not cached.
func (p TTLPolicy) TTL(c Category) time.Duration {
	return p[c]
}

// Cacheable reports whether entries of category c are stored at all.
func (p TTLPolicy) Cacheable(c Category) bool {
	return p.TTL(c) > 0
}
