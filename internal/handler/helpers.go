package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/middleware"
)

// bearerToken extracts the opaque token from the Authorization header. The
// token is forwarded to the core untouched; resolving it is the auth
// collaborator's job.
func bearerToken(c *fiber.Ctx) string {
	authorization := strings.TrimSpace(c.Get("Authorization"))
	if authorization == "" {
		return ""
	}

	const bearer = "bearer "
	if strings.HasPrefix(strings.ToLower(authorization), bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}

	return authorization
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}

	id := uint(parsed)
	return &id, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(parsed), nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
