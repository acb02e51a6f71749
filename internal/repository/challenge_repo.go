package repository

import (
	"context"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/models"
)

// ChallengeFilter narrows challenge catalog queries.
type ChallengeFilter struct {
	Category   *string
	Difficulty *string
}

// ChallengeRepository is the read-only catalog of prompting challenges.
type ChallengeRepository interface {
	GetByID(ctx context.Context, id uint) (models.Challenge, error)
	List(ctx context.Context, filter ChallengeFilter) ([]models.Challenge, error)
	Random(ctx context.Context, category *string) (models.Challenge, error)
}

type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository instantiates the catalog repository.
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) GetByID(ctx context.Context, id uint) (models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).First(&challenge, id).Error; err != nil {
		return models.Challenge{}, err
	}

	return challenge, nil
}

func (r *challengeRepository) List(ctx context.Context, filter ChallengeFilter) ([]models.Challenge, error) {
	query := r.db.WithContext(ctx).Model(&models.Challenge{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Difficulty != nil {
		// Difficulty values are stored lowercase; match case-insensitively.
		query = query.Where("difficulty = ?", strings.ToLower(*filter.Difficulty))
	}

	var challenges []models.Challenge
	if err := query.Order("id ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}

	return challenges, nil
}

func (r *challengeRepository) Random(ctx context.Context, category *string) (models.Challenge, error) {
	challenges, err := r.List(ctx, ChallengeFilter{Category: category})
	if err != nil {
		return models.Challenge{}, err
	}

	if len(challenges) == 0 {
		return models.Challenge{}, gorm.ErrRecordNotFound
	}

	return challenges[rand.Intn(len(challenges))], nil
}
