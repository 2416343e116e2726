package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"what2watch-gateway/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "/api/content", cfg.App.PathPrefix)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Second, cfg.Vendors.Streaming.Timeout)
	assert.Equal(t, 12*time.Second, cfg.Vendors.Movies.Timeout)
	assert.Equal(t, 1, cfg.Vendors.Football.Retry.MaxAttempts)
	assert.Equal(t, "ai-movie-recommender.p.rapidapi.com", cfg.Vendors.Movies.Host)

	policy := cfg.Cache.TTL.Policy()
	assert.Equal(t, time.Hour, policy.TTL(domain.CategoryStreaming))
	assert.Equal(t, 30*time.Minute, policy.TTL(domain.CategoryFootballFixtures))
	assert.Equal(t, 15*time.Second, policy.TTL(domain.CategoryFootballLive))
	assert.Equal(t, 6*time.Hour, policy.TTL(domain.CategoryMovieRecommendations))
	assert.Equal(t, 24*time.Hour, policy.TTL(domain.CategoryMovieIDs))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_APP_PORT", "9090")
	t.Setenv("APP_CACHE_BACKEND", "memory")
	t.Setenv("APP_CACHE_TTL_FOOTBALL_LIVE", "0s")
	t.Setenv("RAPIDAPI_KEY", "rapid-secret")
	t.Setenv("API_FOOTBALL_KEY", "football-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, "rapid-secret", cfg.Credentials.RapidAPIKey)
	assert.Equal(t, "football-secret", cfg.Credentials.FootballKey)
	assert.Empty(t, cfg.MissingCredentials())
	assert.False(t, cfg.Cache.TTL.Policy().Cacheable(domain.CategoryFootballLive))
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  port: 7070
vendors:
  streaming:
    timeout: 5s
cache:
  backend: memory
  ttl:
    movie_ids: 48h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, 5*time.Second, cfg.Vendors.Streaming.Timeout)
	assert.Equal(t, 48*time.Hour, cfg.Cache.TTL.MovieIDs)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Vendors.Football.Timeout)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	base, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(_ *Config) {}, ""},
		{"bad backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"bad port", func(c *Config) { c.App.Port = 0 }, "app.port"},
		{"bad prefix", func(c *Config) { c.App.PathPrefix = "api" }, "app.path_prefix"},
		{"missing base url", func(c *Config) { c.Vendors.Movies.BaseURL = "" }, "vendors.movies.base_url"},
		{"zero timeout", func(c *Config) { c.Vendors.Football.Timeout = 0 }, "vendors.football.timeout"},
		{"retry outlives request", func(c *Config) { c.Vendors.Movies.Timeout = 30 * time.Second }, "vendors.movies: timeout and retries"},
		{"no request timeout", func(c *Config) {
			c.App.RequestTimeout = 0
			c.Vendors.Movies.Timeout = time.Minute
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DefaultsLeaveRoomForRetry(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	for name, ve := range map[string]VendorEndpoint{
		"streaming": cfg.Vendors.Streaming,
		"football":  cfg.Vendors.Football,
		"movies":    cfg.Vendors.Movies,
	} {
		assert.GreaterOrEqual(t, ve.Retry.MaxAttempts, 1, name)
		assert.Less(t, ve.worstCase(), cfg.App.RequestTimeout, name)
	}
}

func TestMissingCredentials(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, []string{"rapidapi_key", "football_key"}, cfg.MissingCredentials())

	cfg.Credentials.FootballKey = "x"
	assert.Equal(t, []string{"rapidapi_key"}, cfg.MissingCredentials())
}
