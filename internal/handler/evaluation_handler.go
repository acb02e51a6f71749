package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/dto"
	"github.com/NovaSyntax753/promptmaster/internal/service"
	"github.com/NovaSyntax753/promptmaster/internal/utils"
)

// EvaluationHandler manages prompt submission and history endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler builds an evaluation handler instance.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("", h.evaluate)
	router.Get("/history", h.history)
	router.Get("/:id", h.getByID)
}

func (h *EvaluationHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.PromptSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Evaluate(c.UserContext(), bearerToken(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "prompt evaluated", result)
}

func (h *EvaluationHandler) history(c *fiber.Ctx) error {
	limit := parseQueryInt(c, "limit", 10)
	offset := parseQueryInt(c, "offset", 0)
	challengeID, err := parseQueryUint(c, "challenge_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	history, err := h.service.History(c.UserContext(), bearerToken(c), limit, offset, challengeID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation history retrieved", history)
}

func (h *EvaluationHandler) getByID(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluation, err := h.service.GetByID(c.UserContext(), bearerToken(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation retrieved", evaluation)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication failed")
	case errors.Is(err, service.ErrChallengeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "challenge not found")
	case errors.Is(err, service.ErrEvaluationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "evaluation not found")
	case errors.Is(err, service.ErrEvaluationFailed):
		// The raw backend error stays in the logs; callers get one signal.
		return utils.SendError(c, fiber.StatusBadGateway, "prompt evaluation failed")
	case errors.Is(err, service.ErrPersistenceFailed):
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store evaluation")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
