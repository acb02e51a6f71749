package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/config"
	"github.com/NovaSyntax753/promptmaster/internal/database"
	"github.com/NovaSyntax753/promptmaster/internal/handler"
	"github.com/NovaSyntax753/promptmaster/internal/middleware"
	"github.com/NovaSyntax753/promptmaster/internal/models"
	"github.com/NovaSyntax753/promptmaster/internal/repository"
	"github.com/NovaSyntax753/promptmaster/internal/router"
	"github.com/NovaSyntax753/promptmaster/internal/service"
	"github.com/NovaSyntax753/promptmaster/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Challenge{}, &models.Evaluation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	backend, err := ai.NewOpenAIClient(ai.ClientConfig{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.AITimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai backend client: %v", err)
	}

	gateway := ai.NewPromptEvaluator(backend, ai.EvaluatorConfig{
		GenerationModel: cfg.GenerationModel,
		EvaluationModel: cfg.EvaluationModel,
		Logger:          logger,
	})

	validate := validator.New(validator.WithRequiredStructEnabled())
	resolver := auth.NewJWTResolver(cfg.JWTSecret, logger)

	challengeRepo := repository.NewChallengeRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	publisher := service.NewNATSEvaluationPublisher(natsConn, "", logger)

	challengeService := service.NewChallengeService(challengeRepo, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, challengeRepo, resolver, gateway, publisher, validate, logger)
	progressService := service.NewProgressService(evaluationRepo, challengeRepo, resolver, redisClient, cfg.DashboardCacheTTL, logger)

	challengeHandler := handler.NewChallengeHandler(challengeService, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{CORSOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		ChallengeHandler:  challengeHandler,
		EvaluationHandler: evaluationHandler,
		ProgressHandler:   progressHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
