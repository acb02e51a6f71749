package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/service"
	"github.com/NovaSyntax753/promptmaster/internal/utils"
)

// ProgressHandler serves the derived analytics endpoints.
type ProgressHandler struct {
	service service.ProgressService
	logger  zerolog.Logger
}

// NewProgressHandler builds a progress handler instance.
func NewProgressHandler(service service.ProgressService, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service: service,
		logger:  logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/trends", h.trends)
	router.Get("/mistakes", h.mistakes)
	router.Get("/category/:category", h.categoryStats)
}

func (h *ProgressHandler) dashboard(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(c.UserContext(), bearerToken(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "dashboard stats retrieved", stats)
}

func (h *ProgressHandler) trends(c *fiber.Ctx) error {
	days := parseQueryInt(c, "days", 30)

	trends, err := h.service.ProgressTrends(c.UserContext(), bearerToken(c), days)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "progress trends retrieved", trends)
}

func (h *ProgressHandler) mistakes(c *fiber.Ctx) error {
	mistakes, err := h.service.TopMistakes(c.UserContext(), bearerToken(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "top mistakes retrieved", mistakes)
}

func (h *ProgressHandler) categoryStats(c *fiber.Ctx) error {
	stats, err := h.service.CategoryStats(c.UserContext(), bearerToken(c), c.Params("category"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "category stats retrieved", stats)
}

func (h *ProgressHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication failed")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
