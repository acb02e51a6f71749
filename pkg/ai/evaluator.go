package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrJudgeUnavailable marks a transport or backend failure on the judge
	// call. No judged score may ever be substituted with a placeholder.
	ErrJudgeUnavailable = errors.New("judge backend unavailable")

	// ErrMalformedJudgeOutput marks a judge response that could not be
	// validated against the rubric contract.
	ErrMalformedJudgeOutput = errors.New("malformed judge output")
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "promptmaster",
		Subsystem: "ai",
		Name:      "call_duration_seconds",
		Help:      "Duration of model backend calls",
	}, []string{"operation", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promptmaster",
		Subsystem: "ai",
		Name:      "call_failures_total",
		Help:      "Number of failed model backend calls",
	}, []string{"operation", "model"})
)

// EvaluatorConfig defines the models and logging used by the prompt evaluator.
type EvaluatorConfig struct {
	GenerationModel string
	EvaluationModel string
	Logger          zerolog.Logger
}

// PromptEvaluator implements Gateway over a Completer. It owns the
// generate/judge/advise failure policy: generate and advise degrade, judge
// fails hard.
type PromptEvaluator struct {
	client    Completer
	cfg       EvaluatorConfig
	tracer    trace.Tracer
	logger    zerolog.Logger
	sanitizer *bluemonday.Policy
}

// NewPromptEvaluator builds a prompt evaluator over the given backend client.
func NewPromptEvaluator(client Completer, cfg EvaluatorConfig) *PromptEvaluator {
	if cfg.GenerationModel == "" {
		cfg.GenerationModel = "llama-3.1-8b-instant"
	}
	if cfg.EvaluationModel == "" {
		cfg.EvaluationModel = cfg.GenerationModel
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &PromptEvaluator{
		client:    client,
		cfg:       cfg,
		tracer:    otel.Tracer("github.com/NovaSyntax753/promptmaster/pkg/ai"),
		logger:    logger.With().Str("component", "prompt_evaluator").Logger(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Generate produces a candidate response to the user's prompt. Backend
// failures degrade to an inline placeholder string so the pipeline continues.
func (e *PromptEvaluator) Generate(parent context.Context, goal, userPrompt string) string {
	ctx, span := e.tracer.Start(parent, "ai.generate", trace.WithAttributes(
		attribute.String("model", e.cfg.GenerationModel),
	))
	defer span.End()

	content, err := e.complete(ctx, "generate", CompletionRequest{
		System: fmt.Sprintf("You are helping with this task: %s", goal),
		User:   userPrompt,
		Model:  e.cfg.GenerationModel,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error().Err(err).Msg("generate call failed, degrading to placeholder")
		return "Error generating response: the model backend was unavailable"
	}

	return e.sanitizer.Sanitize(content)
}

// Judge scores the user's prompt against the rubric. Transport failures and
// contract violations are hard failures; raw values are never clamped.
func (e *PromptEvaluator) Judge(parent context.Context, goal, examplePrompt, userPrompt string) (RubricScores, error) {
	ctx, span := e.tracer.Start(parent, "ai.judge", trace.WithAttributes(
		attribute.String("model", e.cfg.EvaluationModel),
	))
	defer span.End()

	content, err := e.complete(ctx, "judge", CompletionRequest{
		User:        BuildJudgePrompt(goal, examplePrompt, userPrompt),
		Temperature: 0.3,
		Model:       e.cfg.EvaluationModel,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error().Err(err).Msg("judge call failed")
		return RubricScores{}, fmt.Errorf("%w: %v", ErrJudgeUnavailable, err)
	}

	scores, err := parseRubricScores(content)
	if err != nil {
		aiFailures.WithLabelValues("judge", e.cfg.EvaluationModel).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error().Err(err).Str("body", content).Msg("judge response rejected")
		return RubricScores{}, fmt.Errorf("%w: %v", ErrMalformedJudgeOutput, err)
	}

	return scores, nil
}

// Advise asks the model for improvement suggestions. Any failure degrades to
// the fixed fallback list.
func (e *PromptEvaluator) Advise(parent context.Context, userPrompt, goal string, score Score) []Suggestion {
	ctx, span := e.tracer.Start(parent, "ai.advise", trace.WithAttributes(
		attribute.String("model", e.cfg.EvaluationModel),
	))
	defer span.End()

	content, err := e.complete(ctx, "advise", CompletionRequest{
		User:        buildAdvisePrompt(userPrompt, goal, score),
		Temperature: 0.7,
		Model:       e.cfg.EvaluationModel,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Warn().Err(err).Msg("advise call failed, using fallback suggestions")
		return FallbackSuggestions()
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		aiFailures.WithLabelValues("advise", e.cfg.EvaluationModel).Inc()
		span.RecordError(err)
		e.logger.Warn().Err(err).Str("body", content).Msg("advise response rejected, using fallback suggestions")
		return FallbackSuggestions()
	}

	for i := range suggestions {
		suggestions[i].Suggestion = e.sanitizer.Sanitize(suggestions[i].Suggestion)
	}

	return suggestions
}

func (e *PromptEvaluator) complete(ctx context.Context, operation string, req CompletionRequest) (string, error) {
	start := time.Now()
	content, err := e.client.Complete(ctx, req)
	aiDuration.WithLabelValues(operation, req.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(operation, req.Model).Inc()
		return "", err
	}

	return content, nil
}
