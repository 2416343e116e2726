// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/domain"
	"what2watch-gateway/internal/transport/httpserver/dto"
	"what2watch-gateway/internal/transport/httpserver/handler"
	"what2watch-gateway/internal/transport/httpserver/middleware"
	"what2watch-gateway/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name           string
	PathPrefix     string
	RequestTimeout time.Duration
	BodyLimit      int
}

// Services holds the use cases exposed over HTTP.
type Services struct {
	Streaming *service.StreamingService
	Football  *service.FootballService
	Movies    *service.MovieService
	Vendors   []domain.Vendor
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// cache backs the readiness check; gatherer, when non-nil, is served on /metrics.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	cache domain.Pinger,
	gatherer prometheus.Gatherer,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          errorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		// Query values outlive the handler when a coalesced vendor call is still running.
		Immutable: true,
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes health checks to work even during high load
	app.Use(middleware.NewHealthCheck(cache))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	streamingHandler := handler.NewStreamingHandler(svcs.Streaming, v, logger)
	footballHandler := handler.NewFootballHandler(svcs.Football, v, logger)
	movieHandler := handler.NewMovieHandler(svcs.Movies, v, logger)
	adminHandler := handler.NewAdminHandler(svcs.Vendors)

	api := app.Group(cfg.PathPrefix, middleware.Timeout(cfg.RequestTimeout))
	registerRoutes(api, streamingHandler, footballHandler, movieHandler, adminHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes. Routing is not strict, so every
// path also matches with a trailing slash.
func registerRoutes(
	api fiber.Router,
	streamingHandler *handler.StreamingHandler,
	footballHandler *handler.FootballHandler,
	movieHandler *handler.MovieHandler,
	adminHandler *handler.AdminHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Streaming availability
	api.Get("/test", streamingHandler.Test)
	api.Get("/services", streamingHandler.Services)
	api.Get("/search", streamingHandler.Search)
	api.Get("/show/:show_type/:show_id", streamingHandler.Show)
	api.Get("/show/:show_id", streamingHandler.ShowByID)
	api.Get("/trending", streamingHandler.Trending)
	api.Get("/discover", streamingHandler.Discover)
	api.Get("/new", streamingHandler.New)
	api.Get("/countries", streamingHandler.Countries)
	api.Get("/genres", streamingHandler.Genres)

	// Football
	football := api.Group("/football")
	football.Get("/test", footballHandler.Test)
	football.Get("/premier-league", footballHandler.PremierLeague)
	football.Get("/live", footballHandler.Live)
	football.Get("/today", footballHandler.Today)
	football.Get("/search-team", footballHandler.SearchTeam)
	football.Get("/standings", footballHandler.Standings)
	football.Get("/leagues", footballHandler.Leagues)
	football.Get("/team/:team_id", footballHandler.Team)
	football.Get("/top5", footballHandler.Top5)
	football.Get("/top5/today", footballHandler.Top5Today)
	football.Get("/top5/live", footballHandler.Top5Live)

	// Movie recommendations
	movies := api.Group("/movies")
	movies.Get("/test", movieHandler.Test)
	movies.Get("/search", movieHandler.Search)
	movies.Get("/mood", movieHandler.Mood)
	movies.Get("/genre", movieHandler.Genre)
	movies.Get("/family", movieHandler.Family)
	movies.Get("/kids", movieHandler.Kids)
	movies.Get("/id", movieHandler.ID)

	// Admin routes
	admin := api.Group("/admin")
	admin.Get("/vendors", adminHandler.Vendors)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		// Only GET routes exist, so another method on a known path is an unknown route.
		if code == fiber.StatusMethodNotAllowed {
			code = fiber.StatusNotFound
		}
		if code == fiber.StatusNotFound {
			message = "route not found"
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("route not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(dto.ErrorResponse{Error: message})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server, waiting at most timeout for
// in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.ShutdownWithTimeout(timeout)
}
