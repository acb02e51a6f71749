package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/dto"
	"github.com/NovaSyntax753/promptmaster/internal/repository"
)

// ErrChallengeNotFound indicates the requested challenge does not exist in
// the catalog.
var ErrChallengeNotFound = errors.New("challenge not found")

// ChallengeService exposes read access to the challenge catalog.
type ChallengeService interface {
	List(ctx context.Context, category, difficulty *string) ([]dto.ChallengeResponse, error)
	GetByID(ctx context.Context, id uint) (dto.ChallengeResponse, error)
	Random(ctx context.Context, category *string) (dto.ChallengeResponse, error)
}

type challengeService struct {
	challenges repository.ChallengeRepository
	logger     zerolog.Logger
}

// NewChallengeService constructs a ChallengeService instance.
func NewChallengeService(challenges repository.ChallengeRepository, logger zerolog.Logger) ChallengeService {
	return &challengeService{
		challenges: challenges,
		logger:     logger.With().Str("component", "challenge_service").Logger(),
	}
}

func (s *challengeService) List(ctx context.Context, category, difficulty *string) ([]dto.ChallengeResponse, error) {
	challenges, err := s.challenges.List(ctx, repository.ChallengeFilter{
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewChallengeResponseSlice(challenges), nil
}

func (s *challengeService) GetByID(ctx context.Context, id uint) (dto.ChallengeResponse, error) {
	challenge, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChallengeResponse{}, ErrChallengeNotFound
		}
		return dto.ChallengeResponse{}, err
	}

	return dto.NewChallengeResponse(challenge), nil
}

func (s *challengeService) Random(ctx context.Context, category *string) (dto.ChallengeResponse, error) {
	challenge, err := s.challenges.Random(ctx, category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ChallengeResponse{}, ErrChallengeNotFound
		}
		return dto.ChallengeResponse{}, err
	}

	return dto.NewChallengeResponse(challenge), nil
}
