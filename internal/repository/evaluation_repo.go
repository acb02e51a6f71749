package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/models"
)

// EvaluationFilter narrows evaluation queries for a single user.
type EvaluationFilter struct {
	ChallengeID *uint
	Since       *time.Time
	Ascending   bool
	Limit       int
	Offset      int
}

// EvaluationRepository stores finished evaluations. Records are write-once;
// no update or delete operation exists.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByIDForUser(ctx context.Context, id uint, userID string) (models.Evaluation, error)
	ListByUser(ctx context.Context, userID string, filter EvaluationFilter) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the evaluation store.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) GetByIDForUser(ctx context.Context, id uint, userID string) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) ListByUser(ctx context.Context, userID string, filter EvaluationFilter) ([]models.Evaluation, error) {
	query := r.db.WithContext(ctx).Model(&models.Evaluation{}).Where("user_id = ?", userID)

	if filter.ChallengeID != nil {
		query = query.Where("challenge_id = ?", *filter.ChallengeID)
	}

	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	order := "created_at DESC"
	if filter.Ascending {
		order = "created_at ASC"
	}
	query = query.Order(order)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var evaluations []models.Evaluation
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}
