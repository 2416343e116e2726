// Package streaming implements the Streaming Availability API client.
package streaming

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"what2watch-gateway/internal/infra/provider"
)

// Name identifies the vendor in errors, logs and metrics.
const Name = "streaming"

// API paths.
const (
	ServicesEndpoint  = "/services"
	SearchEndpoint    = "/shows/search/title"
	FiltersEndpoint   = "/shows/search/filters"
	ShowEndpoint      = "/shows/%s/%s"
	ShowByIDEndpoint  = "/shows/%s"
	ChangesEndpoint   = "/changes"
	CountriesEndpoint = "/countries"
	GenresEndpoint    = "/genres"
)

// defaultOrderBy is the sort the vendor applies to title searches.
const defaultOrderBy = "original_title"

// outputLanguage is requested on every detail and filter lookup.
const outputLanguage = "en"

// ShowFilter narrows a filter search. Zero values are omitted.
type ShowFilter struct {
	Country        string
	Catalogs       []string // e.g. netflix, prime.subscription
	ShowType       string
	Genres         []string
	OrderBy        string // original_title, release_year, popularity_1day ... popularity_alltime
	OrderDirection string // asc, desc
	YearMin        int
	YearMax        int
	RatingMin      int
	RatingMax      int
	Keyword        string
	Cursor         string
}

// Params returns the vendor query for the filter.
func (f ShowFilter) Params() map[string]string {
	params := map[string]string{"output_language": outputLanguage}
	set := func(name, value string) {
		if value != "" {
			params[name] = value
		}
	}
	setInt := func(name string, value int) {
		if value > 0 {
			params[name] = strconv.Itoa(value)
		}
	}

	set("country", f.Country)
	set("catalogs", strings.Join(f.Catalogs, ","))
	set("show_type", f.ShowType)
	set("genres", strings.Join(f.Genres, ","))
	set("order_by", f.OrderBy)
	set("order_direction", f.OrderDirection)
	setInt("year_min", f.YearMin)
	setInt("year_max", f.YearMax)
	setInt("rating_min", f.RatingMin)
	setInt("rating_max", f.RatingMax)
	set("keyword", f.Keyword)
	set("cursor", f.Cursor)

	return params
}

// Client wraps the shared vendor client with Streaming Availability operations.
type Client struct {
	*provider.Client
}

// New creates a Streaming Availability client.
func New(base *provider.Client) *Client {
	return &Client{Client: base}
}

// Services lists the streaming services available in a country.
func (c *Client) Services(ctx context.Context, country string) ([]byte, error) {
	return c.Get(ctx, ServicesEndpoint, map[string]string{"country": country})
}

// SearchTitle searches shows by title. showType may be empty for both movies and series.
func (c *Client) SearchTitle(ctx context.Context, title, country, showType string) ([]byte, error) {
	params := map[string]string{
		"title":    title,
		"country":  country,
		"order_by": defaultOrderBy,
	}
	if showType != "" {
		params["show_type"] = showType
	}

	return c.Get(ctx, SearchEndpoint, params)
}

// Show returns a single show with its streaming options.
func (c *Client) Show(ctx context.Context, showType, showID, country string) ([]byte, error) {
	path := fmt.Sprintf(ShowEndpoint, url.PathEscape(showType), url.PathEscape(showID))

	return c.Get(ctx, path, map[string]string{"country": country})
}

// SearchFilters searches shows by catalog, genre, year and rating, in the requested order.
func (c *Client) SearchFilters(ctx context.Context, filter ShowFilter) ([]byte, error) {
	return c.Get(ctx, FiltersEndpoint, filter.Params())
}

// ShowByID returns a show by vendor or IMDb id. granularity is show, season or episode.
func (c *Client) ShowByID(ctx context.Context, showID, country, granularity string) ([]byte, error) {
	path := fmt.Sprintf(ShowByIDEndpoint, url.PathEscape(showID))

	return c.Get(ctx, path, map[string]string{
		"country":            country,
		"series_granularity": granularity,
		"output_language":    outputLanguage,
	})
}

// Changes lists shows newly added to catalogs in a country.
func (c *Client) Changes(ctx context.Context, country string) ([]byte, error) {
	return c.Get(ctx, ChangesEndpoint, map[string]string{
		"country":     country,
		"change_type": "new",
		"item_type":   "show",
	})
}

// Countries lists supported countries.
func (c *Client) Countries(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, CountriesEndpoint, nil)
}

// Genres lists supported genres.
func (c *Client) Genres(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, GenresEndpoint, nil)
}
