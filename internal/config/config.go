// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"what2watch-gateway/internal/domain"
)

// Supported cache backends.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Vendors     VendorsConfig     `mapstructure:"vendors"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Cache       CacheConfig       `mapstructure:"cache"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name           string        `mapstructure:"name"`
	Env            string        `mapstructure:"env"` // development, staging, production
	Port           int           `mapstructure:"port"`
	Debug          bool          `mapstructure:"debug"`
	PathPrefix     string        `mapstructure:"path_prefix"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CredentialsConfig holds the vendor API keys.
// RapidAPIKey is shared by the streaming and movie recommender vendors.
type CredentialsConfig struct {
	RapidAPIKey string `mapstructure:"rapidapi_key"`
	FootballKey string `mapstructure:"football_key"`
}

// VendorsConfig holds per-vendor HTTP settings.
type VendorsConfig struct {
	Streaming VendorEndpoint `mapstructure:"streaming"`
	Football  VendorEndpoint `mapstructure:"football"`
	Movies    VendorEndpoint `mapstructure:"movies"`
}

// VendorEndpoint holds a single vendor's configuration.
type VendorEndpoint struct {
	BaseURL   string          `mapstructure:"base_url"`
	Host      string          `mapstructure:"host"` // x-rapidapi-host header
	UserAgent string          `mapstructure:"user_agent"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	Retry     RetryConfig     `mapstructure:"retry"`
	CB        CBConfig        `mapstructure:"circuit_breaker"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// worstCase is the longest a single call can take: every attempt times out and waits the maximum backoff.
func (e VendorEndpoint) worstCase() time.Duration {
	attempts := time.Duration(e.Retry.MaxAttempts + 1)

	return e.Timeout*attempts + e.Retry.MaxWaitTime*time.Duration(e.Retry.MaxAttempts)
}

// RetryConfig holds retry settings. Only connection-level failures are retried.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// RateLimitConfig holds client-side rate limiting settings.
// RequestsPerSecond <= 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings for the shared cache and fill locks.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	Backend   string         `mapstructure:"backend"` // redis, memory
	KeyPrefix string         `mapstructure:"key_prefix"`
	TTL       TTLConfig      `mapstructure:"ttl"`
	FillLock  FillLockConfig `mapstructure:"fill_lock"`
}

// TTLConfig holds the per-category time-to-live table.
// A zero duration disables caching for the category.
type TTLConfig struct {
	Streaming            time.Duration `mapstructure:"streaming"`
	StreamingReference   time.Duration `mapstructure:"streaming_reference"`
	StreamingTrending    time.Duration `mapstructure:"streaming_trending"`
	FootballFixtures     time.Duration `mapstructure:"football_fixtures"`
	FootballLive         time.Duration `mapstructure:"football_live"`
	FootballStandings    time.Duration `mapstructure:"football_standings"`
	FootballReference    time.Duration `mapstructure:"football_reference"`
	FootballTop5         time.Duration `mapstructure:"football_top5"`
	FootballTop5Live     time.Duration `mapstructure:"football_top5_live"`
	MovieRecommendations time.Duration `mapstructure:"movie_recommendations"`
	MovieIDs             time.Duration `mapstructure:"movie_ids"`
}

// Policy converts the TTL table into a domain.TTLPolicy.
func (c TTLConfig) Policy() domain.TTLPolicy {
	return domain.TTLPolicy{
		domain.CategoryStreaming:            c.Streaming,
		domain.CategoryStreamingReference:   c.StreamingReference,
		domain.CategoryStreamingTrending:    c.StreamingTrending,
		domain.CategoryFootballFixtures:     c.FootballFixtures,
		domain.CategoryFootballLive:         c.FootballLive,
		domain.CategoryFootballStandings:    c.FootballStandings,
		domain.CategoryFootballReference:    c.FootballReference,
		domain.CategoryFootballTop5:         c.FootballTop5,
		domain.CategoryFootballTop5Live:     c.FootballTop5Live,
		domain.CategoryMovieRecommendations: c.MovieRecommendations,
		domain.CategoryMovieIDs:             c.MovieIDs,
	}
}

// FillLockConfig holds the cross-instance cache fill lock settings.
// Only used with the redis backend.
type FillLockConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TTL          time.Duration `mapstructure:"ttl"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Vendor keys are conventionally provided without the APP_ prefix.
	if err := v.BindEnv("credentials.rapidapi_key", "APP_CREDENTIALS_RAPIDAPI_KEY", "RAPIDAPI_KEY"); err != nil {
		return nil, fmt.Errorf("binding rapidapi key: %w", err)
	}
	if err := v.BindEnv("credentials.football_key", "APP_CREDENTIALS_FOOTBALL_KEY", "API_FOOTBALL_KEY"); err != nil {
		return nil, fmt.Errorf("binding football key: %w", err)
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail at request time.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port %d out of range", c.App.Port))
	}
	if c.App.PathPrefix != "" && !strings.HasPrefix(c.App.PathPrefix, "/") {
		errs = append(errs, fmt.Errorf("app.path_prefix %q must start with /", c.App.PathPrefix))
	}

	switch c.Cache.Backend {
	case CacheBackendRedis, CacheBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("cache.backend %q must be %q or %q",
			c.Cache.Backend, CacheBackendRedis, CacheBackendMemory))
	}

	vendors := map[string]VendorEndpoint{
		"streaming": c.Vendors.Streaming,
		"football":  c.Vendors.Football,
		"movies":    c.Vendors.Movies,
	}
	for name, ve := range vendors {
		if ve.BaseURL == "" {
			errs = append(errs, fmt.Errorf("vendors.%s.base_url is required", name))
		}
		if ve.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("vendors.%s.timeout must be positive", name))
		}
		if ve.Retry.MaxAttempts < 0 {
			errs = append(errs, fmt.Errorf("vendors.%s.retry.max_attempts must not be negative", name))
		}
		if c.App.RequestTimeout > 0 && ve.worstCase() >= c.App.RequestTimeout {
			errs = append(errs, fmt.Errorf("vendors.%s: timeout and retries (%s) must fit within app.request_timeout (%s)",
				name, ve.worstCase(), c.App.RequestTimeout))
		}
	}

	return errors.Join(errs...)
}

// MissingCredentials returns the names of vendor keys that are not set.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.Credentials.RapidAPIKey == "" {
		missing = append(missing, "rapidapi_key")
	}
	if c.Credentials.FootballKey == "" {
		missing = append(missing, "football_key")
	}

	return missing
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "what2watch-gateway")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)
	v.SetDefault("app.path_prefix", "/api/content")
	v.SetDefault("app.request_timeout", "30s")

	// Credentials have no defaults; they must come from the environment.
	v.SetDefault("credentials.rapidapi_key", "")
	v.SetDefault("credentials.football_key", "")

	// Vendor defaults
	setVendorDefaults(v, "streaming", "https://streaming-availability.p.rapidapi.com", "streaming-availability.p.rapidapi.com")
	setVendorDefaults(v, "football", "https://v3.football.api-sports.io", "v3.football.api-sports.io")
	setVendorDefaults(v, "movies", "https://ai-movie-recommender.p.rapidapi.com", "ai-movie-recommender.p.rapidapi.com")
	v.SetDefault("vendors.movies.timeout", "12s") // recommendations are generated on demand
	v.SetDefault("vendors.movies.user_agent", "Mozilla/5.0")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Cache defaults
	v.SetDefault("cache.backend", CacheBackendRedis)
	v.SetDefault("cache.key_prefix", "what2watch")
	v.SetDefault("cache.ttl.streaming", "1h")
	v.SetDefault("cache.ttl.streaming_reference", "168h")
	v.SetDefault("cache.ttl.streaming_trending", "30m")
	v.SetDefault("cache.ttl.football_fixtures", "30m")
	v.SetDefault("cache.ttl.football_live", "15s")
	v.SetDefault("cache.ttl.football_standings", "6h")
	v.SetDefault("cache.ttl.football_reference", "168h")
	v.SetDefault("cache.ttl.football_top5", "1h")
	v.SetDefault("cache.ttl.football_top5_live", "1m")
	v.SetDefault("cache.ttl.movie_recommendations", "6h")
	v.SetDefault("cache.ttl.movie_ids", "24h")
	v.SetDefault("cache.fill_lock.enabled", true)
	v.SetDefault("cache.fill_lock.ttl", "15s")
	v.SetDefault("cache.fill_lock.poll_interval", "100ms")
}

func setVendorDefaults(v *viper.Viper, name, baseURL, host string) {
	prefix := "vendors." + name + "."
	v.SetDefault(prefix+"base_url", baseURL)
	v.SetDefault(prefix+"host", host)
	v.SetDefault(prefix+"timeout", "10s")
	v.SetDefault(prefix+"retry.max_attempts", 1)
	v.SetDefault(prefix+"retry.wait_time", "500ms")
	v.SetDefault(prefix+"retry.max_wait_time", "2s")
	v.SetDefault(prefix+"circuit_breaker.max_requests", 3)
	v.SetDefault(prefix+"circuit_breaker.interval", "60s")
	v.SetDefault(prefix+"circuit_breaker.timeout", "30s")
	v.SetDefault(prefix+"circuit_breaker.failure_ratio", 0.5)
	v.SetDefault(prefix+"rate_limit.requests_per_second", 5)
	v.SetDefault(prefix+"rate_limit.burst", 10)
}
