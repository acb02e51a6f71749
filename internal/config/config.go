package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	CORSOrigins       string
	JWTSecret         string
	AIAPIKey          string
	AIBaseURL         string
	AITimeout         time.Duration
	GenerationModel   string
	EvaluationModel   string
	DashboardCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PromptMaster API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("ai.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.generation_model", "llama-3.1-8b-instant")
	v.SetDefault("ai.evaluation_model", "llama-3.1-8b-instant")
	v.SetDefault("dashboard.cache_ttl", "5m")

	timeout, err := time.ParseDuration(v.GetString("ai.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		CORSOrigins:       v.GetString("cors.origins"),
		JWTSecret:         v.GetString("jwt.secret"),
		AIAPIKey:          v.GetString("ai.api_key"),
		AIBaseURL:         v.GetString("ai.base_url"),
		AITimeout:         timeout,
		GenerationModel:   v.GetString("ai.generation_model"),
		EvaluationModel:   v.GetString("ai.evaluation_model"),
		DashboardCacheTTL: ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
