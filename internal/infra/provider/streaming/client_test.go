package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/provider"
)

const testBaseURL = "https://streaming.example.com"

func newTestClient(transport *httpmock.MockTransport) *Client {
	return New(provider.NewClient(provider.ClientConfig{
		Name:      Name,
		BaseURL:   testBaseURL,
		Host:      "streaming-availability.p.rapidapi.com",
		APIKey:    "rapid",
		Timeout:   time.Second,
		CB:        provider.CBConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureRatio: 0.5},
		Transport: transport,
	}, nil, zap.NewNop()))
}

func TestClient_Services(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", testBaseURL+ServicesEndpoint,
		map[string]string{"country": "gb"},
		httpmock.NewStringResponder(200, `[{"id":"netflix"}]`))

	body, err := newTestClient(transport).Services(context.Background(), "gb")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"netflix"}]`, string(body))
}

func TestClient_SearchTitle(t *testing.T) {
	t.Run("with show type", func(t *testing.T) {
		transport := httpmock.NewMockTransport()
		transport.RegisterResponderWithQuery("GET", testBaseURL+SearchEndpoint,
			map[string]string{
				"title":     "breaking bad",
				"country":   "us",
				"order_by":  "original_title",
				"show_type": "series",
			},
			httpmock.NewStringResponder(200, `[{"title":"Breaking Bad"}]`))

		body, err := newTestClient(transport).SearchTitle(context.Background(), "breaking bad", "us", "series")

		require.NoError(t, err)
		assert.JSONEq(t, `[{"title":"Breaking Bad"}]`, string(body))
	})

	t.Run("without show type", func(t *testing.T) {
		transport := httpmock.NewMockTransport()
		transport.RegisterResponderWithQuery("GET", testBaseURL+SearchEndpoint,
			map[string]string{"title": "dune", "country": "us", "order_by": "original_title"},
			httpmock.NewStringResponder(200, `[]`))

		_, err := newTestClient(transport).SearchTitle(context.Background(), "dune", "us", "")

		require.NoError(t, err)
		assert.Equal(t, 1, transport.GetTotalCallCount())
	})
}

func TestClient_Show_NotFound(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", testBaseURL+"/shows/movie/tt0000000",
		map[string]string{"country": "us"},
		httpmock.NewStringResponder(404, `{"message":"show not found"}`))

	_, err := newTestClient(transport).Show(context.Background(), "movie", "tt0000000", "us")

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestClient_Changes(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", testBaseURL+ChangesEndpoint,
		map[string]string{"country": "us", "change_type": "new", "item_type": "show"},
		httpmock.NewStringResponder(200, `{"changes":[]}`))

	_, err := newTestClient(transport).Changes(context.Background(), "us")

	require.NoError(t, err)
}

func TestClient_ReferenceLists(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testBaseURL+CountriesEndpoint,
		httpmock.NewStringResponder(200, `{"us":{"name":"United States"}}`))
	transport.RegisterResponder("GET", testBaseURL+GenresEndpoint,
		httpmock.NewStringResponder(200, `[{"id":"drama"}]`))

	client := newTestClient(transport)

	_, err := client.Countries(context.Background())
	require.NoError(t, err)
	_, err = client.Genres(context.Background())
	require.NoError(t, err)

	info := transport.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testBaseURL+CountriesEndpoint])
	assert.Equal(t, 1, info["GET "+testBaseURL+GenresEndpoint])
}

func TestShowFilter_Params(t *testing.T) {
	tests := []struct {
		name   string
		filter ShowFilter
		want   map[string]string
	}{
		{"empty", ShowFilter{}, map[string]string{"output_language": "en"}},
		{
			name: "full",
			filter: ShowFilter{
				Country:        "gb",
				Catalogs:       []string{"prime", "disney"},
				ShowType:       "series",
				Genres:         []string{"comedy", "drama"},
				OrderBy:        "popularity_1week",
				OrderDirection: "desc",
				YearMin:        1990,
				YearMax:        1999,
				RatingMin:      70,
				Keyword:        "zombie",
				Cursor:         "abc",
			},
			want: map[string]string{
				"output_language": "en",
				"country":         "gb",
				"catalogs":        "prime,disney",
				"show_type":       "series",
				"genres":          "comedy,drama",
				"order_by":        "popularity_1week",
				"order_direction": "desc",
				"year_min":        "1990",
				"year_max":        "1999",
				"rating_min":      "70",
				"keyword":         "zombie",
				"cursor":          "abc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Params())
		})
	}
}

func TestClient_SearchFilters(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", testBaseURL+FiltersEndpoint,
		map[string]string{
			"country":         "us",
			"catalogs":        "netflix",
			"order_by":        "popularity_alltime",
			"order_direction": "desc",
			"output_language": "en",
		},
		httpmock.NewStringResponder(200, `{"shows":[],"hasMore":false}`))

	body, err := newTestClient(transport).SearchFilters(context.Background(), ShowFilter{
		Country:        "us",
		Catalogs:       []string{"netflix"},
		OrderBy:        "popularity_alltime",
		OrderDirection: "desc",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"shows":[],"hasMore":false}`, string(body))
}

func TestClient_ShowByID(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", testBaseURL+"/shows/tt0903747",
		map[string]string{"country": "us", "series_granularity": "episode", "output_language": "en"},
		httpmock.NewStringResponder(200, `{"id":"tt0903747","seasons":[]}`))

	body, err := newTestClient(transport).ShowByID(context.Background(), "tt0903747", "us", "episode")

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"tt0903747","seasons":[]}`, string(body))
}
