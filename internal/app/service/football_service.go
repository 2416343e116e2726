package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/provider/football"
)

// dateLayout is the API-Football date format.
const dateLayout = "2006-01-02"

// FootballVendor is the API-Football API.
// Implementation: internal/infra/provider/football
type FootballVendor interface {
	Name() string
	Status(ctx context.Context) ([]byte, error)
	Fixtures(ctx context.Context, filter football.FixtureFilter) ([]byte, error)
	SearchTeams(ctx context.Context, name string) ([]byte, error)
	Team(ctx context.Context, id int) ([]byte, error)
	Standings(ctx context.Context, league, season int) ([]byte, error)
	Leagues(ctx context.Context, country string, season int) ([]byte, error)
}

// FixtureOptions selects Premier League fixtures. At most one field may be set.
// Precedence when resolving: Next, then Date, then Season, then today.
type FixtureOptions struct {
	Season int
	Date   string // YYYY-MM-DD
	Next   int
}

// FootballService serves football fixtures, live scores and reference data.
type FootballService struct {
	vendor  FootballVendor
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// FootballOption configures a FootballService.
type FootballOption func(*FootballService)

// WithClock replaces time.Now when computing "today" and the current season.
func WithClock(now func() time.Time) FootballOption {
	return func(s *FootballService) {
		s.now = now
	}
}

// NewFootballService creates a new FootballService.
func NewFootballService(vendor FootballVendor, fetcher Fetcher, logger *zap.Logger, opts ...FootballOption) *FootballService {
	s := &FootballService{
		vendor:  vendor,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PremierLeagueFixtures returns Premier League fixtures for the next N matches,
// a date, a season, or, with no options, today's matches.
func (s *FootballService) PremierLeagueFixtures(ctx context.Context, opts FixtureOptions) (facade.Result, error) {
	if opts.set() > 1 {
		return facade.Result{}, domain.NewValidationError("season",
			"only one of season, date or next may be supplied")
	}

	today := s.today()
	filter := football.FixtureFilter{League: football.PremierLeagueID}
	switch {
	case opts.Next > 0:
		filter.Season = today.Year()
		filter.Next = opts.Next
	case opts.Date != "":
		filter.Season = today.Year()
		filter.Date = opts.Date
	case opts.Season > 0:
		filter.Season = opts.Season
	default:
		filter.Date = today.Format(dateLayout)
	}

	q := domain.NewQuery(domain.CategoryFootballFixtures, "premier-league", filterParams(filter))

	s.logger.Debug("fetching premier league fixtures", zap.String("key", q.Key()))

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Fixtures(ctx, filter)
	})
}

// LiveMatches returns matches in progress, optionally for one league.
func (s *FootballService) LiveMatches(ctx context.Context, leagueID int) (facade.Result, error) {
	filter := football.FixtureFilter{League: leagueID, Status: football.StatusLive}
	q := domain.NewQuery(domain.CategoryFootballLive, "live", filterParams(filter))

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Fixtures(ctx, filter)
	})
}

// TodaysMatches returns today's fixtures (UTC), optionally for one league.
func (s *FootballService) TodaysMatches(ctx context.Context, leagueID int) (facade.Result, error) {
	filter := football.FixtureFilter{League: leagueID, Date: s.today().Format(dateLayout)}
	q := domain.NewQuery(domain.CategoryFootballFixtures, "today", filterParams(filter))

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Fixtures(ctx, filter)
	})
}

// SearchTeam finds teams by name.
func (s *FootballService) SearchTeam(ctx context.Context, name string) (facade.Result, error) {
	name = domain.NormalizeText(name)
	q := domain.NewQuery(domain.CategoryFootballFixtures, "search-team", map[string]string{"name": name})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.SearchTeams(ctx, name)
	})
}

// TeamInfo returns one team by id.
func (s *FootballService) TeamInfo(ctx context.Context, teamID int) (facade.Result, error) {
	q := domain.NewQuery(domain.CategoryFootballReference, "team", map[string]string{"id": strconv.Itoa(teamID)})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Team(ctx, teamID)
	})
}

// Standings returns a league table for one season.
func (s *FootballService) Standings(ctx context.Context, leagueID, season int) (facade.Result, error) {
	q := domain.NewQuery(domain.CategoryFootballStandings, "standings", map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": strconv.Itoa(season),
	})

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Standings(ctx, leagueID, season)
	})
}

// Leagues lists leagues, optionally filtered by country and season.
func (s *FootballService) Leagues(ctx context.Context, country string, season int) (facade.Result, error) {
	params := map[string]string{"country": country}
	if season > 0 {
		params["season"] = strconv.Itoa(season)
	}
	q := domain.NewQuery(domain.CategoryFootballReference, "leagues", params)

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		return s.vendor.Leagues(ctx, country, season)
	})
}

// Test checks connectivity with an uncached call.
func (s *FootballService) Test(ctx context.Context) (string, error) {
	if _, err := s.vendor.Status(ctx); err != nil {
		return "", err
	}

	return s.vendor.Name(), nil
}

func (s *FootballService) today() time.Time {
	return s.now().UTC()
}

func (o FixtureOptions) set() int {
	n := 0
	if o.Season > 0 {
		n++
	}
	if o.Date != "" {
		n++
	}
	if o.Next > 0 {
		n++
	}

	return n
}

// filterParams mirrors the vendor query so the cache key names exactly what was asked.
func filterParams(f football.FixtureFilter) map[string]string {
	params := map[string]string{"date": f.Date, "status": f.Status}
	if f.League > 0 {
		params["league"] = strconv.Itoa(f.League)
	}
	if f.Season > 0 {
		params["season"] = strconv.Itoa(f.Season)
	}
	if f.Next > 0 {
		params["next"] = strconv.Itoa(f.Next)
	}

	return params
}
