package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestRequests_Validation_Valid tests valid requests.
func TestRequests_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  interface{}
	}{
		{"search title only", &SearchShowsRequest{Title: "breaking bad"}},
		{"search full", &SearchShowsRequest{Title: "dune", Country: "gb", ShowType: "movie"}},
		{"show", &ShowRequest{ShowType: "series", ShowID: "tt0903747"}},
		{"no country", &CountryRequest{}},
		{"fixtures empty", &FixturesRequest{}},
		{"fixtures season", &FixturesRequest{Season: "2024"}},
		{"fixtures date", &FixturesRequest{Date: "2024-08-16"}},
		{"fixtures next", &FixturesRequest{Next: "5"}},
		{"league empty", &LeagueRequest{}},
		{"league", &LeagueRequest{LeagueID: "140"}},
		{"team", &SearchTeamRequest{Name: "arsenal"}},
		{"standings", &StandingsRequest{LeagueID: "39", Season: "2024"}},
		{"leagues empty", &LeaguesRequest{}},
		{"leagues full", &LeaguesRequest{Country: "England", Season: "2024"}},
		{"movie search", &MovieSearchRequest{Query: "sad 90s movies"}},
		{"mood", &MoodRequest{Mood: "happy"}},
		{"mood decade", &MoodRequest{Mood: "happy", Decade: "80s"}},
		{"genre year", &GenreRequest{Genre: "horror", Year: "1999"}},
		{"movie id", &MovieIDRequest{Title: "inception"}},
		{"show by id", &ShowByIDRequest{ShowID: "tt0903747", SeriesGranularity: "season"}},
		{"trending", &TrendingRequest{Catalogs: "netflix,prime", Period: "alltime"}},
		{"discover empty", &DiscoverRequest{}},
		{"discover years", &DiscoverRequest{YearMin: 1990, YearMax: 1990, RatingMax: 100}},
		{"team", &TeamRequest{TeamID: "42"}},
		{"top5 empty", &Top5Request{}},
		{"top5 window", &Top5Request{League: "la_liga", DaysAhead: 14}},
		{"top5 date", &Top5Request{Date: "2026-10-18"}},
		{"top5 today", &Top5LeagueRequest{League: "ligue_1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(tt.req))
		})
	}
}

// TestRequests_Validation_Invalid tests invalid requests.
func TestRequests_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name         string
		req          interface{}
		expectField  string
		expectErrMsg string
	}{
		{
			name:         "search missing title",
			req:          &SearchShowsRequest{},
			expectField:  "title",
			expectErrMsg: "title is required",
		},
		{
			name:         "search bad show type",
			req:          &SearchShowsRequest{Title: "x", ShowType: "podcast"},
			expectField:  "show_type",
			expectErrMsg: "show_type must be one of: movie series",
		},
		{
			name:         "show missing id",
			req:          &ShowRequest{ShowType: "movie"},
			expectField:  "show_id",
			expectErrMsg: "show_id is required",
		},
		{
			name:         "country too long",
			req:          &CountryRequest{Country: "usa"},
			expectField:  "country",
			expectErrMsg: "country must be 2 characters long",
		},
		{
			name:         "fixtures season and next",
			req:          &FixturesRequest{Season: "2024", Next: "3"},
			expectField:  "season",
			expectErrMsg: "season cannot be combined with date or next",
		},
		{
			name:         "fixtures date format",
			req:          &FixturesRequest{Date: "2024/08/16"},
			expectField:  "date",
			expectErrMsg: "date must be a date in the format YYYY-MM-DD",
		},
		{
			name:         "fixtures negative next",
			req:          &FixturesRequest{Next: "-2"},
			expectField:  "next",
			expectErrMsg: "next must be numeric",
		},
		{
			name:         "fixtures zero next",
			req:          &FixturesRequest{Next: "0"},
			expectField:  "next",
			expectErrMsg: "next must be a positive integer",
		},
		{
			name:         "league id overflows int",
			req:          &LeagueRequest{LeagueID: "99999999999999999999"},
			expectField:  "league_id",
			expectErrMsg: "league_id must be a positive integer",
		},
		{
			name:         "standings league id overflows int",
			req:          &StandingsRequest{LeagueID: "99999999999999999999", Season: "2024"},
			expectField:  "league_id",
			expectErrMsg: "league_id must be a positive integer",
		},
		{
			name:         "trending bad period",
			req:          &TrendingRequest{Period: "2weeks"},
			expectField:  "period",
			expectErrMsg: "period must be one of: 1day 1week 1month 1year alltime",
		},
		{
			name:         "discover year too early",
			req:          &DiscoverRequest{YearMin: 1800},
			expectField:  "year_min",
			expectErrMsg: "year_min must be at least 1900",
		},
		{
			name:         "discover ratings reversed",
			req:          &DiscoverRequest{RatingMin: 80, RatingMax: 50},
			expectField:  "rating_max",
			expectErrMsg: "rating_max must not be less than rating_min",
		},
		{
			name:         "team id overflows int",
			req:          &TeamRequest{TeamID: "99999999999999999999"},
			expectField:  "team_id",
			expectErrMsg: "team_id must be a positive integer",
		},
		{
			name:         "top5 date and window",
			req:          &Top5Request{Date: "2026-10-18", DaysAhead: 2},
			expectField:  "days_ahead",
			expectErrMsg: "days_ahead cannot be combined with date",
		},
		{
			name:         "top5 unknown league",
			req:          &Top5LeagueRequest{League: "mls"},
			expectField:  "league",
			expectErrMsg: "league must be one of: premier_league la_liga bundesliga serie_a ligue_1",
		},
		{
			name:         "standings missing season",
			req:          &StandingsRequest{LeagueID: "39"},
			expectField:  "season",
			expectErrMsg: "season is required",
		},
		{
			name:         "team name too short",
			req:          &SearchTeamRequest{Name: "ac"},
			expectField:  "name",
			expectErrMsg: "name must be at least 3",
		},
		{
			name:         "movie search missing q",
			req:          &MovieSearchRequest{},
			expectField:  "q",
			expectErrMsg: "q is required",
		},
		{
			name:         "genre short year",
			req:          &GenreRequest{Genre: "drama", Year: "99"},
			expectField:  "year",
			expectErrMsg: "year must be 4 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var valErr *domain.ValidationError
			require.True(t, errors.As(err, &valErr), "expected *domain.ValidationError")

			found := false
			for _, fe := range valErr.Fields {
				if fe.Field == tt.expectField {
					found = true
					assert.Equal(t, tt.expectErrMsg, fe.Message)
				}
			}
			assert.True(t, found, "expected error for field %s, got %v", tt.expectField, valErr.Fields)
		})
	}
}

// TestStandingsRequest_Validation_MultipleErrors tests requests with multiple validation errors.
func TestStandingsRequest_Validation_MultipleErrors(t *testing.T) {
	err := newTestValidator().Validate(&StandingsRequest{})
	require.Error(t, err)

	assert.Equal(t, "league_id is required; season is required", err.Error())
}

// TestFixturesRequest_ToOptions tests conversion to service options.
func TestFixturesRequest_ToOptions(t *testing.T) {
	tests := []struct {
		name     string
		req      FixturesRequest
		expected service.FixtureOptions
	}{
		{"empty", FixturesRequest{}, service.FixtureOptions{}},
		{"season", FixturesRequest{Season: "2023"}, service.FixtureOptions{Season: 2023}},
		{"date", FixturesRequest{Date: "2024-12-26"}, service.FixtureOptions{Date: "2024-12-26"}},
		{"next", FixturesRequest{Next: "10"}, service.FixtureOptions{Next: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.ToOptions())
		})
	}
}

func TestTrendingRequest_ToOptions(t *testing.T) {
	req := TrendingRequest{Country: "gb", Catalogs: "prime, ,disney,", ShowType: "series", Period: "1day"}

	assert.Equal(t, service.TrendingOptions{
		Country:  "gb",
		Catalogs: []string{"prime", "disney"},
		ShowType: "series",
		Period:   "1day",
	}, req.ToOptions())
}

func TestDiscoverRequest_ToFilter(t *testing.T) {
	req := DiscoverRequest{
		Catalogs:  "netflix",
		Genres:    "action,comedy",
		OrderBy:   "release_year",
		YearMin:   2000,
		RatingMin: 70,
		Keyword:   "heist",
	}

	filter := req.ToFilter()

	assert.Equal(t, []string{"netflix"}, filter.Catalogs)
	assert.Equal(t, []string{"action", "comedy"}, filter.Genres)
	assert.Equal(t, "release_year", filter.OrderBy)
	assert.Equal(t, 2000, filter.YearMin)
	assert.Equal(t, 70, filter.RatingMin)
	assert.Equal(t, "heist", filter.Keyword)
	assert.Nil(t, (&DiscoverRequest{}).ToFilter().Catalogs)
}

func TestTop5Request_ToOptions(t *testing.T) {
	req := Top5Request{League: "serie_a", DaysAhead: 3}

	assert.Equal(t, service.Top5Options{League: "serie_a", DaysAhead: 3}, req.ToOptions())
	assert.Equal(t, 42, (&TeamRequest{TeamID: "42"}).Team())
}

func TestNumericAccessors(t *testing.T) {
	assert.Equal(t, 0, (&LeagueRequest{}).League())
	assert.Equal(t, 140, (&LeagueRequest{LeagueID: "140"}).League())

	standings := StandingsRequest{LeagueID: "39", Season: "2024"}
	assert.Equal(t, 39, standings.League())
	assert.Equal(t, 2024, standings.Year())

	assert.Equal(t, 0, (&LeaguesRequest{}).Year())
}

func TestFromRecommendations(t *testing.T) {
	resp := FromRecommendations(service.Recommendations{Query: "kids movies"})

	assert.True(t, resp.Success)
	assert.Equal(t, "kids movies", resp.Query)
	assert.NotNil(t, resp.Movies)
	assert.Equal(t, 0, resp.Total)
}

func TestNewTestResponse(t *testing.T) {
	resp := NewTestResponse("football")

	assert.Equal(t, TestResponse{
		Success: true,
		Message: "football API connection successful",
		Vendor:  "football",
	}, resp)
}
