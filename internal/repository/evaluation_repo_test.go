package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/models"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Challenge{}, &models.Evaluation{}))

	return db
}

func scorePointer(v float64) *float64 {
	return &v
}

func TestEvaluationRepositoryCreateAndGetByIDForUser(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	evaluation := models.Evaluation{
		UserID:       "repo-user-1",
		ChallengeID:  1,
		UserPrompt:   "my prompt",
		AIOutput:     "a response",
		OverallScore: scorePointer(7),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &evaluation))
	require.NotZero(t, evaluation.ID)

	fetched, err := repo.GetByIDForUser(ctx, evaluation.ID, "repo-user-1")
	require.NoError(t, err)
	require.Equal(t, "my prompt", fetched.UserPrompt)
	require.Equal(t, 7.0, *fetched.OverallScore)

	// Another user must not see the record.
	_, err = repo.GetByIDForUser(ctx, evaluation.ID, "repo-user-2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEvaluationRepositoryListFilters(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewEvaluationRepository(db)
	ctx := context.Background()

	now := time.Now()
	records := []models.Evaluation{
		{UserID: "repo-user-3", ChallengeID: 1, UserPrompt: "p1", OverallScore: scorePointer(4), CreatedAt: now.Add(-72 * time.Hour)},
		{UserID: "repo-user-3", ChallengeID: 2, UserPrompt: "p2", OverallScore: scorePointer(6), CreatedAt: now.Add(-48 * time.Hour)},
		{UserID: "repo-user-3", ChallengeID: 1, UserPrompt: "p3", OverallScore: scorePointer(8), CreatedAt: now.Add(-time.Hour)},
	}
	for i := range records {
		require.NoError(t, repo.Create(ctx, &records[i]))
	}

	all, err := repo.ListByUser(ctx, "repo-user-3", EvaluationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Default ordering is newest first.
	require.Equal(t, "p3", all[0].UserPrompt)

	ascending, err := repo.ListByUser(ctx, "repo-user-3", EvaluationFilter{Ascending: true})
	require.NoError(t, err)
	require.Equal(t, "p1", ascending[0].UserPrompt)

	challengeID := uint(1)
	byChallenge, err := repo.ListByUser(ctx, "repo-user-3", EvaluationFilter{ChallengeID: &challengeID, Ascending: true})
	require.NoError(t, err)
	require.Len(t, byChallenge, 2)
	require.Equal(t, "p1", byChallenge[0].UserPrompt)
	require.Equal(t, "p3", byChallenge[1].UserPrompt)

	since := now.Add(-50 * time.Hour)
	recent, err := repo.ListByUser(ctx, "repo-user-3", EvaluationFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 2)

	limited, err := repo.ListByUser(ctx, "repo-user-3", EvaluationFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "p2", limited[0].UserPrompt)
}

func TestChallengeRepositoryFiltersAndRandom(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	challenges := []models.Challenge{
		{Category: "writing-filter", Title: "C1", Goal: "g1", Difficulty: "easy"},
		{Category: "writing-filter", Title: "C2", Goal: "g2", Difficulty: "hard"},
		{Category: "coding-filter", Title: "C3", Goal: "g3", Difficulty: "easy"},
	}
	for i := range challenges {
		require.NoError(t, db.Create(&challenges[i]).Error)
	}

	category := "writing-filter"
	listed, err := repo.List(ctx, ChallengeFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// Difficulty matching is case-insensitive on input.
	difficulty := "EASY"
	easy, err := repo.List(ctx, ChallengeFilter{Category: &category, Difficulty: &difficulty})
	require.NoError(t, err)
	require.Len(t, easy, 1)
	require.Equal(t, "C1", easy[0].Title)

	random, err := repo.Random(ctx, &category)
	require.NoError(t, err)
	require.Equal(t, "writing-filter", random.Category)

	missing := "no-such-category"
	_, err = repo.Random(ctx, &missing)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
