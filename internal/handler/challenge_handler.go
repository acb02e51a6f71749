package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/service"
	"github.com/NovaSyntax753/promptmaster/internal/utils"
)

// ChallengeHandler serves the read-only challenge catalog.
type ChallengeHandler struct {
	service service.ChallengeService
	logger  zerolog.Logger
}

// NewChallengeHandler builds a challenge handler instance.
func NewChallengeHandler(service service.ChallengeService, logger zerolog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		service: service,
		logger:  logger.With().Str("component", "challenge_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ChallengeHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/random/challenge", h.random)
	router.Get("/category/:category", h.listByCategory)
	router.Get("/:id", h.getByID)
}

func (h *ChallengeHandler) list(c *fiber.Ctx) error {
	var category, difficulty *string
	if value := c.Query("category"); value != "" {
		category = &value
	}
	if value := c.Query("difficulty"); value != "" {
		difficulty = &value
	}

	challenges, err := h.service.List(c.UserContext(), category, difficulty)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "challenges retrieved", challenges)
}

func (h *ChallengeHandler) listByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	challenges, err := h.service.List(c.UserContext(), &category, nil)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "challenges retrieved", challenges)
}

func (h *ChallengeHandler) getByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	challenge, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "challenge retrieved", challenge)
}

func (h *ChallengeHandler) random(c *fiber.Ctx) error {
	var category *string
	if value := c.Query("category"); value != "" {
		category = &value
	}

	challenge, err := h.service.Random(c.UserContext(), category)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "challenge retrieved", challenge)
}

func (h *ChallengeHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChallengeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "challenge not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
