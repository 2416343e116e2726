// Package main is the entry point for the what2watch-gateway API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/facade"
	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/config"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/infra/memory"
	rediscache "what2watch-gateway/internal/infra/redis"
	"what2watch-gateway/internal/infra/provider/registry"
	"what2watch-gateway/internal/logger"
	"what2watch-gateway/internal/metrics"
	"what2watch-gateway/internal/transport/httpserver"
	"what2watch-gateway/internal/validator"
	"what2watch-gateway/pkg/locker"
)

const shutdownTimeout = 10 * time.Second

// cache is what the facade stores into and the readiness check pings.
type cache interface {
	domain.Cache
	domain.Pinger
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
			Service: cfg.App.Name,
			Env:     cfg.App.Env,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting what2watch-gateway",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("path_prefix", cfg.App.PathPrefix),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		log.Warn("vendor credentials not set, affected vendors will reject requests",
			zap.Strings("missing", missing),
		)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Cache and optional fill lock
	var (
		store       cache
		facadeOpts  = []facade.Option{facade.WithMetrics(m)}
		redisClient *redis.Client
	)

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		log.Info("connected to Redis",
			zap.String("addr", cfg.Redis.Addr()),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)

		store = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)

		if cfg.Cache.FillLock.Enabled {
			distLocker := locker.NewRedisLocker(redisClient, log.Logger, cfg.Cache.KeyPrefix)
			facadeOpts = append(facadeOpts,
				facade.WithFillLock(distLocker, cfg.Cache.FillLock.TTL, cfg.Cache.FillLock.PollInterval))
			log.Info("cache fill lock enabled", zap.Duration("ttl", cfg.Cache.FillLock.TTL))
		}
	default:
		store = memory.NewCache()
		log.Info("using in-process cache")
	}

	f := facade.New(store, cfg.Cache.TTL.Policy(), log.Logger, facadeOpts...)

	// Vendor clients
	vendors := registry.NewVendors(cfg.Vendors, cfg.Credentials, m, log.Logger)

	// Create services
	svcs := httpserver.Services{
		Streaming: service.NewStreamingService(vendors.Streaming, f, log.Logger),
		Football:  service.NewFootballService(vendors.Football, f, log.Logger),
		Movies:    service.NewMovieService(vendors.Movies, f, log.Logger),
		Vendors:   vendors.All(),
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Name:           cfg.App.Name,
			PathPrefix:     cfg.App.PathPrefix,
			RequestTimeout: cfg.App.RequestTimeout,
			BodyLimit:      1024 * 1024, // 1MB
		},
		svcs,
		store,
		reg,
		validator.New(),
		log.Logger,
	)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if err := server.Shutdown(shutdownTimeout); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
