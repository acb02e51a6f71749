package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/dto"
	"github.com/NovaSyntax753/promptmaster/internal/models"
	"github.com/NovaSyntax753/promptmaster/internal/observability"
	"github.com/NovaSyntax753/promptmaster/internal/repository"
	"github.com/NovaSyntax753/promptmaster/pkg/ai"
)

var (
	// ErrEvaluationNotFound indicates the evaluation does not exist or
	// belongs to another user.
	ErrEvaluationNotFound = errors.New("evaluation not found")

	// ErrEvaluationFailed indicates the judge call failed, either because
	// the backend was unavailable or its output was malformed. Nothing is
	// persisted in that case.
	ErrEvaluationFailed = errors.New("prompt evaluation failed")

	// ErrPersistenceFailed indicates the computed result could not be
	// stored. The scores are reported lost, never silently dropped.
	ErrPersistenceFailed = errors.New("failed to persist evaluation")
)

const defaultHistoryLimit = 10

// EvaluationService orchestrates the prompt evaluation pipeline:
// generate, judge, advise, persist.
type EvaluationService interface {
	Evaluate(ctx context.Context, token string, payload dto.PromptSubmissionRequest) (dto.EvaluationResponse, error)
	History(ctx context.Context, token string, limit, offset int, challengeID *uint) ([]dto.EvaluationResponse, error)
	GetByID(ctx context.Context, token string, id uint) (dto.EvaluationResponse, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	challenges  repository.ChallengeRepository
	resolver    auth.Resolver
	gateway     ai.Gateway
	publisher   EvaluationPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEvaluationService constructs the evaluation orchestrator.
func NewEvaluationService(
	evaluations repository.EvaluationRepository,
	challenges repository.ChallengeRepository,
	resolver auth.Resolver,
	gateway ai.Gateway,
	publisher EvaluationPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		challenges:  challenges,
		resolver:    resolver,
		gateway:     gateway,
		publisher:   publisher,
		validator:   validate,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		now:         time.Now,
	}
}

// Evaluate runs one submission through the full pipeline. Auth and challenge
// lookup failures abort before any model call; a judge failure aborts after
// generation with nothing persisted; advise failures degrade to the fallback
// suggestion list. A single attempt is made per external call, no retries.
func (s *evaluationService) Evaluate(ctx context.Context, token string, payload dto.PromptSubmissionRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		observability.Evaluations().WithLabelValues("auth_failed").Inc()
		return dto.EvaluationResponse{}, err
	}

	challenge, err := s.challenges.GetByID(ctx, payload.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.Evaluations().WithLabelValues("challenge_not_found").Inc()
			return dto.EvaluationResponse{}, ErrChallengeNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	aiOutput := s.gateway.Generate(ctx, challenge.Goal, payload.UserPrompt)

	rubric, err := s.gateway.Judge(ctx, challenge.Goal, challenge.ExamplePrompt, payload.UserPrompt)
	if err != nil {
		observability.Evaluations().WithLabelValues("judge_failed").Inc()
		s.logger.Error().Err(err).
			Str("user_id", identity.ID).
			Uint("challenge_id", challenge.ID).
			Msg("judge step failed, evaluation aborted")
		return dto.EvaluationResponse{}, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}

	score := rubric.Normalize()
	suggestions := s.gateway.Advise(ctx, payload.UserPrompt, challenge.Goal, score)

	suggestionsJSON, err := json.Marshal(dto.NewImprovementSuggestionResponseSlice(suggestions))
	if err != nil {
		return dto.EvaluationResponse{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	overall := score.Overall
	evaluation := models.Evaluation{
		UserID:           identity.ID,
		ChallengeID:      challenge.ID,
		UserPrompt:       payload.UserPrompt,
		AIOutput:         aiOutput,
		ClarityScore:     score.Clarity,
		SpecificityScore: score.Specificity,
		CreativityScore:  score.Creativity,
		RelevanceScore:   score.Relevance,
		OverallScore:     &overall,
		Suggestions:      datatypes.JSON(suggestionsJSON),
		CreatedAt:        s.now(),
	}

	if err := s.evaluations.Create(ctx, &evaluation); err != nil {
		observability.Evaluations().WithLabelValues("persistence_failed").Inc()
		s.logger.Error().Err(err).
			Str("user_id", identity.ID).
			Uint("challenge_id", challenge.ID).
			Float64("overall", overall).
			Msg("failed to persist evaluation")
		return dto.EvaluationResponse{}, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	observability.Evaluations().WithLabelValues("succeeded").Inc()
	s.logger.Info().
		Uint("evaluation_id", evaluation.ID).
		Str("user_id", identity.ID).
		Uint("challenge_id", challenge.ID).
		Float64("overall", overall).
		Msg("evaluation completed")

	if s.publisher != nil {
		s.publisher.EvaluationCompleted(ctx, EvaluationCompletedEvent{
			EvaluationID: evaluation.ID,
			UserID:       identity.ID,
			ChallengeID:  challenge.ID,
			OverallScore: overall,
			OccurredAt:   evaluation.CreatedAt,
		})
	}

	return dto.NewEvaluationResponse(evaluation), nil
}

// History returns the user's evaluations, newest first.
func (s *evaluationService) History(ctx context.Context, token string, limit, offset int, challengeID *uint) ([]dto.EvaluationResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	evaluations, err := s.evaluations.ListByUser(ctx, identity.ID, repository.EvaluationFilter{
		ChallengeID: challengeID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewEvaluationResponseSlice(evaluations), nil
}

// GetByID returns one evaluation scoped to the requesting user.
func (s *evaluationService) GetByID(ctx context.Context, token string, id uint) (dto.EvaluationResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	evaluation, err := s.evaluations.GetByIDForUser(ctx, id, identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	return dto.NewEvaluationResponse(evaluation), nil
}
