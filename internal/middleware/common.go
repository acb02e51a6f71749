package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config customises the middleware registration pipeline.
type Config struct {
	CORSOrigins string
}

// Register attaches the common middlewares used across the API.
func Register(app *fiber.App, cfg Config) {
	app.Use(recover.New())
	app.Use(CorrelationID())
	app.Use(logger.New())

	corsConfig := cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}
	if cfg.CORSOrigins != "" {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(corsConfig))
}
