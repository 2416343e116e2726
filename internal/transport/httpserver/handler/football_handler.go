package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"what2watch-gateway/internal/app/service"
	"what2watch-gateway/internal/transport/httpserver/dto"
	"what2watch-gateway/internal/validator"
)

// FootballHandler handles football requests.
type FootballHandler struct {
	service   *service.FootballService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFootballHandler creates a new FootballHandler.
func NewFootballHandler(svc *service.FootballService, v *validator.Validator, logger *zap.Logger) *FootballHandler {
	return &FootballHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Test handles GET /football/test
func (h *FootballHandler) Test(c *fiber.Ctx) error {
	vendor, err := h.service.Test(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.NewTestResponse(vendor))
}

// PremierLeague handles GET /football/premier-league
func (h *FootballHandler) PremierLeague(c *fiber.Ctx) error {
	var req dto.FixturesRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.PremierLeagueFixtures(c.UserContext(), req.ToOptions())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Live handles GET /football/live
func (h *FootballHandler) Live(c *fiber.Ctx) error {
	var req dto.LeagueRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.LiveMatches(c.UserContext(), req.League())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Today handles GET /football/today
func (h *FootballHandler) Today(c *fiber.Ctx) error {
	var req dto.LeagueRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.TodaysMatches(c.UserContext(), req.League())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// SearchTeam handles GET /football/search-team
func (h *FootballHandler) SearchTeam(c *fiber.Ctx) error {
	var req dto.SearchTeamRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.SearchTeam(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Standings handles GET /football/standings
func (h *FootballHandler) Standings(c *fiber.Ctx) error {
	var req dto.StandingsRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Standings(c.UserContext(), req.League(), req.Year())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Leagues handles GET /football/leagues
func (h *FootballHandler) Leagues(c *fiber.Ctx) error {
	var req dto.LeaguesRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Leagues(c.UserContext(), req.Country, req.Year())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Team handles GET /football/team/:team_id
func (h *FootballHandler) Team(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := bindPath(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.TeamInfo(c.UserContext(), req.Team())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Top5 handles GET /football/top5
func (h *FootballHandler) Top5(c *fiber.Ctx) error {
	var req dto.Top5Request
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Top5Matches(c.UserContext(), req.ToOptions())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Top5Today handles GET /football/top5/today
func (h *FootballHandler) Top5Today(c *fiber.Ctx) error {
	var req dto.Top5LeagueRequest
	if err := bindQuery(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.service.Top5Today(c.UserContext(), req.League)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}

// Top5Live handles GET /football/top5/live
func (h *FootballHandler) Top5Live(c *fiber.Ctx) error {
	res, err := h.service.Top5Live(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return sendResult(c, res)
}
