package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // kickoff times are rendered in Europe/Stockholm on hosts without zoneinfo

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/provider/football"
)

// Top-5 match window limits.
const (
	DefaultTop5Days = 7
	MaxTop5Days     = 14
)

// BroadcastUnavailable is the only channel listed for leagues without a broadcast mapping.
const BroadcastUnavailable = "Broadcast info unavailable"

// kickoffZone is the local time zone kickoff times are rendered in.
const kickoffZone = "Europe/Stockholm"

// Top5League is one of the five major European leagues.
type Top5League struct {
	Key      string
	ID       int
	Name     string
	Country  string
	Channels []string
}

var top5Leagues = []Top5League{
	{Key: "premier_league", ID: football.PremierLeagueID, Name: "Premier League", Country: "England",
		Channels: []string{"Sky Sports", "TNT Sports", "NOW TV"}},
	{Key: "la_liga", ID: 140, Name: "La Liga", Country: "Spain",
		Channels: []string{"Premier Sports", "LaLigaTV"}},
	{Key: "bundesliga", ID: 78, Name: "Bundesliga", Country: "Germany",
		Channels: []string{"Sky Sports", "TNT Sports"}},
	{Key: "serie_a", ID: 135, Name: "Serie A", Country: "Italy",
		Channels: []string{"TNT Sports", "BT Sport"}},
	{Key: "ligue_1", ID: 61, Name: "Ligue 1", Country: "France",
		Channels: []string{"TNT Sports", "beIN Sports"}},
}

var stockholm = mustLoadLocation(kickoffZone)

// Top5LeagueKeys lists the accepted league filters.
func Top5LeagueKeys() []string {
	keys := make([]string, len(top5Leagues))
	for i, l := range top5Leagues {
		keys[i] = l.Key
	}

	return keys
}

func top5ByID(id int) (Top5League, bool) {
	for _, l := range top5Leagues {
		if l.ID == id {
			return l, true
		}
	}

	return Top5League{}, false
}

func top5ByKey(key string) (Top5League, bool) {
	for _, l := range top5Leagues {
		if l.Key == key {
			return l, true
		}
	}

	return Top5League{}, false
}

// BroadcastChannels returns the channels showing a league, or BroadcastUnavailable.
func BroadcastChannels(leagueID int) []string {
	if l, ok := top5ByID(leagueID); ok {
		return slices.Clone(l.Channels)
	}

	return []string{BroadcastUnavailable}
}

// Top5Options selects top-5 league matches. Date and DaysAhead are exclusive;
// with neither, the next DefaultTop5Days days starting today are returned.
type Top5Options struct {
	Date      string // YYYY-MM-DD
	League    string // one of Top5LeagueKeys, empty for all
	DaysAhead int
}

// Top5Filters echoes the applied filters. Unused filters are null.
type Top5Filters struct {
	Date      *string `json:"date"`
	League    *string `json:"league"`
	DaysAhead *int    `json:"days_ahead"`
}

// Top5Reply is the body of every top-5 reply.
type Top5Reply struct {
	Count   int          `json:"count"`
	Filters *Top5Filters `json:"filters,omitempty"`
	Matches []Match      `json:"matches"`
}

// Match is a fixture reduced to what a viewer needs, with local kickoff and channels.
type Match struct {
	ID                int         `json:"id"`
	League            MatchLeague `json:"league"`
	HomeTeam          MatchTeam   `json:"home_team"`
	AwayTeam          MatchTeam   `json:"away_team"`
	Kickoff           Kickoff     `json:"kickoff"`
	Status            string      `json:"status"`
	Score             Score       `json:"score"`
	BroadcastChannels []string    `json:"broadcast_channels"`
}

type MatchLeague struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
}

type MatchTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Score is null on both sides until the match starts.
type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Kickoff is the vendor UTC timestamp plus the local date and time in Stockholm.
type Kickoff struct {
	UTC       string  `json:"utc"`
	LocalTime string  `json:"local_time"`
	LocalDate *string `json:"local_date"`
	DayOfWeek *string `json:"day_of_week"`
	Timezone  string  `json:"timezone"` // CET or CEST
}

// fixturesReply is the part of an API-Football fixtures reply that matches are built from.
type fixturesReply struct {
	Response []struct {
		Fixture struct {
			ID     int    `json:"id"`
			Date   string `json:"date"`
			Status struct {
				Short string `json:"short"`
			} `json:"status"`
		} `json:"fixture"`
		League struct {
			ID      int    `json:"id"`
			Name    string `json:"name"`
			Country string `json:"country"`
			Logo    string `json:"logo"`
		} `json:"league"`
		Teams struct {
			Home MatchTeam `json:"home"`
			Away MatchTeam `json:"away"`
		} `json:"teams"`
		Goals Score `json:"goals"`
	} `json:"response"`
}

// Top5Matches returns fixtures from the five major European leagues for one
// date or a window of days, sorted by kickoff.
func (s *FootballService) Top5Matches(ctx context.Context, opts Top5Options) (facade.Result, error) {
	leagues := top5Leagues
	if opts.League != "" {
		l, ok := top5ByKey(opts.League)
		if !ok {
			return facade.Result{}, domain.NewValidationError("league",
				"league must be one of: "+strings.Join(Top5LeagueKeys(), " "))
		}
		leagues = []Top5League{l}
	}
	if opts.Date != "" && opts.DaysAhead > 0 {
		return facade.Result{}, domain.NewValidationError("date", "date cannot be combined with days_ahead")
	}
	if opts.DaysAhead > MaxTop5Days {
		return facade.Result{}, domain.NewValidationError("days_ahead",
			fmt.Sprintf("days_ahead must be at most %d", MaxTop5Days))
	}

	today := s.today()
	filters := &Top5Filters{}
	if opts.League != "" {
		filters.League = &opts.League
	}

	params := map[string]string{"league": opts.League}
	from, to := opts.Date, opts.Date
	if opts.Date != "" {
		filters.Date = &opts.Date
		params["date"] = opts.Date
	} else {
		days := opts.DaysAhead
		if days == 0 {
			days = DefaultTop5Days
		}
		filters.DaysAhead = &days
		from = today.Format(dateLayout)
		to = today.AddDate(0, 0, days-1).Format(dateLayout)
		params["from"] = from
		params["days_ahead"] = strconv.Itoa(days)
	}

	q := domain.NewQuery(domain.CategoryFootballTop5, "top5", params)

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		start, _ := time.Parse(dateLayout, from)
		matches, err := s.top5Fixtures(ctx, leagues, from, to, seasonOf(start))
		if err != nil {
			return nil, err
		}

		return json.Marshal(Top5Reply{Count: len(matches), Filters: filters, Matches: matches})
	})
}

// Top5Today returns today's top-5 league fixtures (UTC).
func (s *FootballService) Top5Today(ctx context.Context, league string) (facade.Result, error) {
	return s.Top5Matches(ctx, Top5Options{Date: s.today().Format(dateLayout), League: league})
}

// Top5Live returns top-5 league matches in progress.
func (s *FootballService) Top5Live(ctx context.Context) (facade.Result, error) {
	q := domain.NewQuery(domain.CategoryFootballTop5Live, "top5-live", nil)

	return s.fetcher.Get(ctx, q, func(ctx context.Context) ([]byte, error) {
		body, err := s.vendor.Fixtures(ctx, football.FixtureFilter{Status: football.StatusLive})
		if err != nil {
			return nil, err
		}

		matches, err := top5MatchesFrom(body)
		if err != nil {
			return nil, err
		}

		return json.Marshal(Top5Reply{Count: len(matches), Matches: matches})
	})
}

// top5Fixtures fetches every league concurrently. Any league failing fails the whole reply.
func (s *FootballService) top5Fixtures(ctx context.Context, leagues []Top5League, from, to string, season int) ([]Match, error) {
	perLeague := make([][]Match, len(leagues))

	g, ctx := errgroup.WithContext(ctx)
	for i, l := range leagues {
		filter := football.FixtureFilter{League: l.ID, Season: season}
		if from == to {
			filter.Date = from
		} else {
			filter.From, filter.To = from, to
		}

		g.Go(func() error {
			body, err := s.vendor.Fixtures(ctx, filter)
			if err != nil {
				return err
			}

			perLeague[i], err = top5MatchesFrom(body)

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]Match, 0)
	for _, m := range perLeague {
		matches = append(matches, m...)
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return strings.Compare(a.Kickoff.UTC, b.Kickoff.UTC)
	})

	s.logger.Debug("collected top-5 fixtures",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}

// top5MatchesFrom decodes a fixtures reply and keeps only top-5 league matches.
func top5MatchesFrom(body []byte) ([]Match, error) {
	var reply fixturesReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, domain.NewVendorError(football.Name, 502, body)
	}

	matches := make([]Match, 0, len(reply.Response))
	for _, f := range reply.Response {
		l, ok := top5ByID(f.League.ID)
		if !ok {
			continue
		}

		status := f.Fixture.Status.Short
		if status == "" {
			status = "NS"
		}

		matches = append(matches, Match{
			ID: f.Fixture.ID,
			League: MatchLeague{
				ID:      l.ID,
				Name:    l.Name,
				Country: l.Country,
				Logo:    f.League.Logo,
			},
			HomeTeam:          f.Teams.Home,
			AwayTeam:          f.Teams.Away,
			Kickoff:           KickoffAt(f.Fixture.Date),
			Status:            status,
			Score:             f.Goals,
			BroadcastChannels: BroadcastChannels(l.ID),
		})
	}

	return matches, nil
}

// kickoffLayouts are the timestamp shapes API-Football has been seen to send.
var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// KickoffAt renders a UTC timestamp in Stockholm time. Unparseable input
// yields 00:00 CET with no date.
func KickoffAt(utc string) Kickoff {
	k := Kickoff{UTC: utc, LocalTime: "00:00", Timezone: "CET"}

	for _, layout := range kickoffLayouts {
		t, err := time.ParseInLocation(layout, utc, time.UTC)
		if err != nil {
			continue
		}

		local := t.In(stockholm)
		date := local.Format(dateLayout)
		day := local.Weekday().String()
		k.LocalTime = local.Format("15:04")
		k.LocalDate = &date
		k.DayOfWeek = &day
		k.Timezone, _ = local.Zone()

		return k
	}

	return k
}

// seasonOf returns the season a date falls in. Seasons start in August.
func seasonOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	if t.Month() < time.August {
		return t.Year() - 1
	}

	return t.Year()
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("loading time zone %s: %v", name, err))
	}

	return loc
}
