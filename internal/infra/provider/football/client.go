// Package football implements the API-Football client.
package football

import (
	"context"
	"strconv"

	"what2watch-gateway/internal/infra/provider"
)

// Name identifies the vendor in errors, logs and metrics.
const Name = "football"

// PremierLeagueID is the API-Football league id of the English Premier League.
const PremierLeagueID = 39

// StatusLive filters fixtures currently in progress.
const StatusLive = "LIVE"

// API paths.
const (
	StatusEndpoint    = "/status"
	FixturesEndpoint  = "/fixtures"
	TeamsEndpoint     = "/teams"
	StandingsEndpoint = "/standings"
	LeaguesEndpoint   = "/leagues"
)

// FixtureFilter narrows a fixtures query. Zero values are omitted.
type FixtureFilter struct {
	League int
	Season int
	Date   string // YYYY-MM-DD
	From   string // YYYY-MM-DD, with To; needs League and Season
	To     string
	Next   int
	Status string
}

func (f FixtureFilter) params() map[string]string {
	params := make(map[string]string, 7)
	if f.League > 0 {
		params["league"] = strconv.Itoa(f.League)
	}
	if f.Season > 0 {
		params["season"] = strconv.Itoa(f.Season)
	}
	if f.Date != "" {
		params["date"] = f.Date
	}
	if f.From != "" {
		params["from"] = f.From
	}
	if f.To != "" {
		params["to"] = f.To
	}
	if f.Next > 0 {
		params["next"] = strconv.Itoa(f.Next)
	}
	if f.Status != "" {
		params["status"] = f.Status
	}

	return params
}

// Client wraps the shared vendor client with API-Football operations.
type Client struct {
	*provider.Client
}

// New creates an API-Football client.
func New(base *provider.Client) *Client {
	return &Client{Client: base}
}

// Status returns the account status. Used as a connectivity check.
func (c *Client) Status(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, StatusEndpoint, nil)
}

// Fixtures lists fixtures matching the filter.
func (c *Client) Fixtures(ctx context.Context, filter FixtureFilter) ([]byte, error) {
	return c.Get(ctx, FixturesEndpoint, filter.params())
}

// SearchTeams finds teams by name.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]byte, error) {
	return c.Get(ctx, TeamsEndpoint, map[string]string{"search": name})
}

// Team returns one team by id.
func (c *Client) Team(ctx context.Context, id int) ([]byte, error) {
	return c.Get(ctx, TeamsEndpoint, map[string]string{"id": strconv.Itoa(id)})
}

// Standings returns a league table for one season.
func (c *Client) Standings(ctx context.Context, league, season int) ([]byte, error) {
	return c.Get(ctx, StandingsEndpoint, map[string]string{
		"league": strconv.Itoa(league),
		"season": strconv.Itoa(season),
	})
}

// Leagues lists leagues, optionally filtered by country name and season.
func (c *Client) Leagues(ctx context.Context, country string, season int) ([]byte, error) {
	params := make(map[string]string, 2)
	if country != "" {
		params["country"] = country
	}
	if season > 0 {
		params["season"] = strconv.Itoa(season)
	}

	return c.Get(ctx, LeaguesEndpoint, params)
}
