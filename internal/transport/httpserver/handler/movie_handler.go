package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/transport/httpserver/dto"
	"what2watch-gateway/internal/validator"
)

// MovieHandler handles movie recommendation requests.
type MovieHandler struct {
	service   *service.MovieService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService, v *validator.Validator, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Test handles GET /movies/test
func (h *MovieHandler) Test(c *fiber.Ctx) error {
	vendor, err := h.service.Test(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewTestResponse(vendor))
}

// Search handles GET /movies/search
func (h *MovieHandler) Search(c *fiber.Ctx) error {
	var req dto.MovieSearchRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	recs, err := h.service.Search(c.UserContext(), req.Query)

	return h.sendRecommendations(c, recs, err)
}

// Mood handles GET /movies/mood
func (h *MovieHandler) Mood(c *fiber.Ctx) error {
	var req dto.MoodRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	recs, err := h.service.ByMood(c.UserContext(), req.Mood, req.Decade)

	return h.sendRecommendations(c, recs, err)
}

// Genre handles GET /movies/genre
func (h *MovieHandler) Genre(c *fiber.Ctx) error {
	var req dto.GenreRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	recs, err := h.service.ByGenre(c.UserContext(), req.Genre, req.Year)

	return h.sendRecommendations(c, recs, err)
}

// Family handles GET /movies/family
func (h *MovieHandler) Family(c *fiber.Ctx) error {
	recs, err := h.service.Family(c.UserContext())

	return h.sendRecommendations(c, recs, err)
}

// Kids handles GET /movies/kids
func (h *MovieHandler) Kids(c *fiber.Ctx) error {
	recs, err := h.service.Kids(c.UserContext())

	return h.sendRecommendations(c, recs, err)
}

// ID handles GET /movies/id
func (h *MovieHandler) ID(c *fiber.Ctx) error {
	var req dto.MovieIDRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.LookupID(c.UserContext(), req.Title)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

func (h *MovieHandler) sendRecommendations(c *fiber.Ctx, recs service.Recommendations, err error) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(dto.HeaderCache, string(recs.Status))

	return c.JSON(dto.FromRecommendations(recs))
}
