package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/transport/httpserver/dto"
	"what2watch-gateway/internal/validator"
)

// StreamingHandler handles streaming availability requests.
type StreamingHandler struct {
	service   *service.StreamingService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewStreamingHandler creates a new StreamingHandler.
func NewStreamingHandler(svc *service.StreamingService, v *validator.Validator, logger *zap.Logger) *StreamingHandler {
	return &StreamingHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Test handles GET /test
func (h *StreamingHandler) Test(c *fiber.Ctx) error {
	vendor, err := h.service.Test(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewTestResponse(vendor))
}

// Services handles GET /services
func (h *StreamingHandler) Services(c *fiber.Ctx) error {
	var req dto.CountryRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Services(c.UserContext(), req.Country)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Search handles GET /search
func (h *StreamingHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchShowsRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.SearchShows(c.UserContext(), req.Title, req.Country, req.ShowType)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Show handles GET /show/:show_type/:show_id
func (h *StreamingHandler) Show(c *fiber.Ctx) error {
	var req dto.ShowRequest
	if err := bindPath(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.ShowDetails(c.UserContext(), req.ShowType, req.ShowID, req.Country)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// ShowByID handles GET /show/:show_id
func (h *StreamingHandler) ShowByID(c *fiber.Ctx) error {
	var req dto.ShowByIDRequest
	if err := bindPath(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.ShowByID(c.UserContext(), req.ShowID, req.Country, req.SeriesGranularity)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Trending handles GET /trending
func (h *StreamingHandler) Trending(c *fiber.Ctx) error {
	var req dto.TrendingRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Trending(c.UserContext(), req.ToOptions())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Discover handles GET /discover
func (h *StreamingHandler) Discover(c *fiber.Ctx) error {
	var req dto.DiscoverRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Discover(c.UserContext(), req.ToFilter())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// New handles GET /new
func (h *StreamingHandler) New(c *fiber.Ctx) error {
	var req dto.CountryRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.NewShows(c.UserContext(), req.Country)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Countries handles GET /countries
func (h *StreamingHandler) Countries(c *fiber.Ctx) error {
	res, err := h.service.Countries(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Genres handles GET /genres
func (h *StreamingHandler) Genres(c *fiber.Ctx) error {
	res, err := h.service.Genres(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}
