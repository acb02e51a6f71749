package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NovaSyntax753/promptmaster/internal/config"
	"github.com/NovaSyntax753/promptmaster/internal/handler"
	"github.com/NovaSyntax753/promptmaster/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ChallengeHandler  *handler.ChallengeHandler
	EvaluationHandler *handler.EvaluationHandler
	ProgressHandler   *handler.ProgressHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ChallengeHandler != nil {
		deps.ChallengeHandler.Register(api.Group("/challenges"))
	}

	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(api.Group("/evaluations"))
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(api.Group("/progress"))
	}
}
