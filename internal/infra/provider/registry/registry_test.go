package registry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"what2watch-gateway/internal/config"
)

func testEndpoint(baseURL, host string) config.VendorEndpoint {
	return config.VendorEndpoint{
		BaseURL: baseURL,
		Host:    host,
		Timeout: time.Second,
		CB:      config.CBConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureRatio: 0.5},
	}
}

func TestNewVendors_KeysPerVendor(t *testing.T) {
	transport := httpmock.NewMockTransport()

	seen := map[string]string{}
	record := func(req *http.Request) (*http.Response, error) {
		seen[req.URL.Host] = req.Header.Get("x-rapidapi-key")

		return httpmock.NewStringResponse(200, `{}`), nil
	}
	transport.RegisterResponder("GET", "https://streaming.test/countries", record)
	transport.RegisterResponder("GET", "https://football.test/status", record)
	transport.RegisterResponder("GET", "https://movies.test/api/search", record)

	vendors := NewVendors(
		config.VendorsConfig{
			Streaming: testEndpoint("https://streaming.test", "streaming.test"),
			Football:  testEndpoint("https://football.test", "football.test"),
			Movies:    testEndpoint("https://movies.test", "movies.test"),
		},
		config.CredentialsConfig{RapidAPIKey: "rapid", FootballKey: "ball"},
		nil,
		zap.NewNop(),
		WithTransport(transport),
	)

	ctx := context.Background()
	_, err := vendors.Streaming.Countries(ctx)
	require.NoError(t, err)
	_, err = vendors.Football.Status(ctx)
	require.NoError(t, err)
	_, err = vendors.Movies.Search(ctx, "kids movies")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"streaming.test": "rapid",
		"football.test":  "ball",
		"movies.test":    "rapid",
	}, seen)
}

func TestVendors_All(t *testing.T) {
	vendors := NewVendors(
		config.VendorsConfig{
			Streaming: testEndpoint("https://streaming.test", ""),
			Football:  testEndpoint("https://football.test", ""),
			Movies:    testEndpoint("https://movies.test", ""),
		},
		config.CredentialsConfig{},
		nil,
		zap.NewNop(),
	)

	all := vendors.All()
	require.Len(t, all, 3)
	assert.Equal(t, "streaming", all[0].Name())
	assert.Equal(t, "football", all[1].Name())
	assert.Equal(t, "movies", all[2].Name())
	assert.Equal(t, "closed", all[2].State())
}
