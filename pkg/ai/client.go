package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const defaultCallTimeout = 30 * time.Second

// ClientConfig defines configuration options for the OpenAI-compatible client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// OpenAIClient implements Completer against an OpenAI-compatible chat
// completion endpoint (Groq in production).
type OpenAIClient struct {
	client  *openai.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// NewOpenAIClient builds a backend client using the provided configuration.
func NewOpenAIClient(cfg ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai api key is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(config),
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Complete sends a single chat completion request bounded by the fixed
// per-call timeout. No retries are performed.
func (c *OpenAIClient) Complete(parent context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from backend")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
