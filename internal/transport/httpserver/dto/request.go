// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strconv"
	"strings"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/infra/provider/streaming"
)

// CountryRequest is the optional country filter shared by the streaming endpoints.
type CountryRequest struct {
	Country string `query:"country" validate:"omitempty,len=2"`
}

// SearchShowsRequest represents GET /search.
type SearchShowsRequest struct {
	Title    string `query:"title" validate:"required,max=200"`
	Country  string `query:"country" validate:"omitempty,len=2"`
	ShowType string `query:"show_type" validate:"omitempty,oneof=movie series"`
}

// ShowRequest represents GET /show/:show_type/:show_id.
type ShowRequest struct {
	ShowType string `params:"show_type" validate:"required,oneof=movie series"`
	ShowID   string `params:"show_id" validate:"required,max=100"`
	Country  string `query:"country" validate:"omitempty,len=2"`
}

// ShowByIDRequest represents GET /show/:show_id.
type ShowByIDRequest struct {
	ShowID            string `params:"show_id" validate:"required,max=100"`
	Country           string `query:"country" validate:"omitempty,len=2"`
	SeriesGranularity string `query:"series_granularity" validate:"omitempty,oneof=show season episode"`
}

// TrendingRequest represents GET /trending.
type TrendingRequest struct {
	Country  string `query:"country" validate:"omitempty,len=2"`
	Catalogs string `query:"catalogs" validate:"omitempty,max=200"` // comma-separated
	ShowType string `query:"show_type" validate:"omitempty,oneof=movie series"`
	Period   string `query:"period" validate:"omitempty,oneof=1day 1week 1month 1year alltime"`
}

// ToOptions converts the request into service options.
func (r *TrendingRequest) ToOptions() service.TrendingOptions {
	return service.TrendingOptions{
		Country:  r.Country,
		Catalogs: splitList(r.Catalogs),
		ShowType: r.ShowType,
		Period:   r.Period,
	}
}

// DiscoverRequest represents GET /discover.
type DiscoverRequest struct {
	Country        string `query:"country" validate:"omitempty,len=2"`
	Catalogs       string `query:"catalogs" validate:"omitempty,max=200"`
	ShowType       string `query:"show_type" validate:"omitempty,oneof=movie series"`
	Genres         string `query:"genres" validate:"omitempty,max=200"`
	OrderBy        string `query:"order_by" validate:"omitempty,oneof=original_title release_year rating popularity_1day popularity_1week popularity_1month popularity_1year popularity_alltime"`
	OrderDirection string `query:"order_direction" validate:"omitempty,oneof=asc desc"`
	YearMin        int    `query:"year_min" validate:"omitempty,min=1900,max=2100"`
	YearMax        int    `query:"year_max" validate:"omitempty,min=1900,max=2100,gtefield=YearMin"`
	RatingMin      int    `query:"rating_min" validate:"omitempty,min=0,max=100"`
	RatingMax      int    `query:"rating_max" validate:"omitempty,min=0,max=100,gtefield=RatingMin"`
	Keyword        string `query:"keyword" validate:"omitempty,max=100"`
	Cursor         string `query:"cursor" validate:"omitempty,max=200"`
}

// ToFilter converts the request into a vendor filter.
func (r *DiscoverRequest) ToFilter() streaming.ShowFilter {
	return streaming.ShowFilter{
		Country:        r.Country,
		Catalogs:       splitList(r.Catalogs),
		ShowType:       r.ShowType,
		Genres:         splitList(r.Genres),
		OrderBy:        r.OrderBy,
		OrderDirection: r.OrderDirection,
		YearMin:        r.YearMin,
		YearMax:        r.YearMax,
		RatingMin:      r.RatingMin,
		RatingMax:      r.RatingMax,
		Keyword:        r.Keyword,
		Cursor:         r.Cursor,
	}
}

// FixturesRequest represents GET /football/premier-league.
// At most one of season, date and next may be supplied.
type FixturesRequest struct {
	Season string `query:"season" validate:"omitempty,number,len=4,excluded_with=Date Next"`
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02,excluded_with=Next"`
	Next   string `query:"next" validate:"omitempty,number,posint"`
}

// ToOptions converts the request into service options. Call after validation.
func (r *FixturesRequest) ToOptions() service.FixtureOptions {
	return service.FixtureOptions{
		Season: atoi(r.Season),
		Date:   r.Date,
		Next:   atoi(r.Next),
	}
}

// LeagueRequest is the optional league filter for live and today's matches.
type LeagueRequest struct {
	LeagueID string `query:"league_id" validate:"omitempty,number,posint"`
}

// League returns the league ID, or 0 for all leagues.
func (r *LeagueRequest) League() int {
	return atoi(r.LeagueID)
}

// SearchTeamRequest represents GET /football/search-team.
type SearchTeamRequest struct {
	Name string `query:"name" validate:"required,min=3,max=100"`
}

// TeamRequest represents GET /football/team/:team_id.
type TeamRequest struct {
	TeamID string `params:"team_id" validate:"required,number,posint"`
}

// Team returns the team ID. Call after validation.
func (r *TeamRequest) Team() int {
	return atoi(r.TeamID)
}

// Top5Request represents GET /football/top5.
type Top5Request struct {
	Date      string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	League    string `query:"league" validate:"omitempty,oneof=premier_league la_liga bundesliga serie_a ligue_1"`
	DaysAhead int    `query:"days_ahead" validate:"omitempty,min=1,max=14,excluded_with=Date"`
}

// ToOptions converts the request into service options.
func (r *Top5Request) ToOptions() service.Top5Options {
	return service.Top5Options{
		Date:      r.Date,
		League:    r.League,
		DaysAhead: r.DaysAhead,
	}
}

// Top5LeagueRequest is the optional league filter for today's top-5 matches.
type Top5LeagueRequest struct {
	League string `query:"league" validate:"omitempty,oneof=premier_league la_liga bundesliga serie_a ligue_1"`
}

// StandingsRequest represents GET /football/standings.
type StandingsRequest struct {
	LeagueID string `query:"league_id" validate:"required,number,posint"`
	Season   string `query:"season" validate:"required,number,len=4"`
}

// League returns the league ID. Call after validation.
func (r *StandingsRequest) League() int {
	return atoi(r.LeagueID)
}

// Year returns the season. Call after validation.
func (r *StandingsRequest) Year() int {
	return atoi(r.Season)
}

// LeaguesRequest represents GET /football/leagues.
type LeaguesRequest struct {
	Country string `query:"country" validate:"omitempty,max=60"`
	Season  string `query:"season" validate:"omitempty,number,len=4"`
}

// Year returns the season, or 0 when absent.
func (r *LeaguesRequest) Year() int {
	return atoi(r.Season)
}

// MovieSearchRequest represents GET /movies/search.
type MovieSearchRequest struct {
	Query string `query:"q" validate:"required,max=200"`
}

// MoodRequest represents GET /movies/mood.
type MoodRequest struct {
	Mood   string `query:"mood" validate:"required,max=50"`
	Decade string `query:"decade" validate:"omitempty,max=10"`
}

// GenreRequest represents GET /movies/genre.
type GenreRequest struct {
	Genre string `query:"genre" validate:"required,max=50"`
	Year  string `query:"year" validate:"omitempty,number,len=4"`
}

// MovieIDRequest represents GET /movies/id.
type MovieIDRequest struct {
	Title string `query:"title" validate:"required,max=200"`
}

// splitList splits a comma-separated parameter, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

// atoi parses a value that already passed "number" and "posint" validation.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
