package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/models"
	"github.com/NovaSyntax753/promptmaster/internal/repository"
)

func newTestProgressService(db *gorm.DB, userID string, cache *redis.Client) ProgressService {
	return NewProgressService(
		repository.NewEvaluationRepository(db),
		repository.NewChallengeRepository(db),
		&staticResolver{token: "valid-token", identity: auth.Identity{ID: userID}},
		cache,
		time.Minute,
		zerolog.Nop(),
	)
}

func seedScoredEvaluation(t *testing.T, db *gorm.DB, userID string, challengeID uint, score float64, createdAt time.Time) {
	t.Helper()

	evaluation := models.Evaluation{
		UserID:       userID,
		ChallengeID:  challengeID,
		UserPrompt:   "prompt",
		OverallScore: &score,
		CreatedAt:    createdAt,
	}
	require.NoError(t, db.Create(&evaluation).Error)
}

func TestDashboardStatsEmptyHistory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestProgressService(db, "progress-empty", nil)

	stats, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Zero(t, stats.TotalAttempts)
	require.Zero(t, stats.AverageScore)
	require.Zero(t, stats.ImprovementRate)
	require.Equal(t, "None", stats.BestCategory)
	require.Empty(t, stats.AttemptsByCategory)
}

func TestDashboardStatsImprovementRate(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-improvement")

	base := time.Now().Add(-10 * time.Hour)
	for i, score := range []float64{2, 4, 6, 8} {
		seedScoredEvaluation(t, db, "progress-improve-user", challenge.ID, score, base.Add(time.Duration(i)*time.Hour))
	}

	svc := newTestProgressService(db, "progress-improve-user", nil)
	stats, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)

	require.Equal(t, 4, stats.TotalAttempts)
	require.Equal(t, 5.0, stats.AverageScore)
	// First half averages 3, second half 7.
	require.Equal(t, 133.33, stats.ImprovementRate)
	require.Equal(t, "progress-improvement", stats.BestCategory)
	require.Equal(t, map[string]int{"progress-improvement": 4}, stats.AttemptsByCategory)
}

func TestDashboardStatsBestCategoryTieBreak(t *testing.T) {
	db := setupServiceDB(t)
	first := seedChallenge(t, db, "progress-tie-alpha")
	second := seedChallenge(t, db, "progress-tie-beta")

	base := time.Now().Add(-5 * time.Hour)
	seedScoredEvaluation(t, db, "progress-tie-user", first.ID, 6, base)
	seedScoredEvaluation(t, db, "progress-tie-user", second.ID, 6, base.Add(time.Hour))

	svc := newTestProgressService(db, "progress-tie-user", nil)
	stats, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)

	// Equal averages resolve to the category encountered first.
	require.Equal(t, "progress-tie-alpha", stats.BestCategory)
}

func TestDashboardStatsCached(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-cache")
	seedScoredEvaluation(t, db, "progress-cache-user", challenge.ID, 7, time.Now().Add(-time.Hour))

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newTestProgressService(db, "progress-cache-user", cache)

	first, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalAttempts)

	// New attempts are not visible until the cache entry expires.
	seedScoredEvaluation(t, db, "progress-cache-user", challenge.ID, 9, time.Now())

	cached, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Equal(t, 1, cached.TotalAttempts)

	mr.FastForward(2 * time.Minute)

	refreshed, err := svc.DashboardStats(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Equal(t, 2, refreshed.TotalAttempts)
}

func TestProgressTrendsSparseDates(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-trends")

	// Anchor timestamps at local noon so adding an hour never crosses a date.
	noon := func(daysAgo int) time.Time {
		d := time.Now().AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local)
	}

	// Two attempts five days ago, one attempt two days ago, one outside the window.
	seedScoredEvaluation(t, db, "progress-trends-user", challenge.ID, 4, noon(5))
	seedScoredEvaluation(t, db, "progress-trends-user", challenge.ID, 6, noon(5).Add(time.Hour))
	seedScoredEvaluation(t, db, "progress-trends-user", challenge.ID, 8, noon(2))
	seedScoredEvaluation(t, db, "progress-trends-user", challenge.ID, 10, noon(40))

	svc := newTestProgressService(db, "progress-trends-user", nil)
	trends, err := svc.ProgressTrends(context.Background(), "valid-token", 30)
	require.NoError(t, err)

	require.Len(t, trends, 2)
	require.Equal(t, noon(5).Format("2006-01-02"), trends[0].Date)
	require.Equal(t, 5.0, trends[0].AverageScore)
	require.Equal(t, 2, trends[0].Attempts)
	require.Equal(t, noon(2).Format("2006-01-02"), trends[1].Date)
	require.Equal(t, 8.0, trends[1].AverageScore)
	require.Equal(t, 1, trends[1].Attempts)
}

func TestProgressTrendsEmptyWindow(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestProgressService(db, "progress-trends-empty", nil)

	trends, err := svc.ProgressTrends(context.Background(), "valid-token", 0)
	require.NoError(t, err)
	require.Empty(t, trends)
}

func TestTopMistakesFrequencyAndTieBreak(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-mistakes")

	payloads := []string{
		`[{"category":"clarity","suggestion":"s1","priority":"high"},{"category":"clarity","suggestion":"s2","priority":"medium"}]`,
		`[{"category":"general","suggestion":"s3","priority":"low"},{"category":"structure","suggestion":"s4","priority":"medium"}]`,
		`[{"category":"clarity","suggestion":"s5","priority":"high"},{"category":"relevance","suggestion":"s6","priority":"low"}]`,
	}
	base := time.Now().Add(-6 * time.Hour)
	score := 5.0
	for i, payload := range payloads {
		evaluation := models.Evaluation{
			UserID:       "progress-mistakes-user",
			ChallengeID:  challenge.ID,
			UserPrompt:   "prompt",
			OverallScore: &score,
			Suggestions:  datatypes.JSON(payload),
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&evaluation).Error)
	}

	svc := newTestProgressService(db, "progress-mistakes-user", nil)
	mistakes, err := svc.TopMistakes(context.Background(), "valid-token")
	require.NoError(t, err)

	require.Len(t, mistakes, 3)
	require.Equal(t, "clarity", mistakes[0].Category)
	require.Equal(t, 3, mistakes[0].Frequency)
	require.Equal(t, "Prompts lack clear structure and organization", mistakes[0].Description)

	// general and structure both occur once; first encountered ranks first.
	require.Equal(t, "general", mistakes[1].Category)
	require.Equal(t, "structure", mistakes[2].Category)
	// Categories outside the known table get the generic description.
	require.Equal(t, "Area for improvement", mistakes[2].Description)
}

func TestTopMistakesEmptyHistory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestProgressService(db, "progress-mistakes-empty", nil)

	mistakes, err := svc.TopMistakes(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Empty(t, mistakes)
}

func TestCategoryStatsTrends(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-category")

	base := time.Now().Add(-12 * time.Hour)
	for i, score := range []float64{2, 2, 2, 8, 8, 8} {
		seedScoredEvaluation(t, db, "progress-category-user", challenge.ID, score, base.Add(time.Duration(i)*time.Hour))
	}

	svc := newTestProgressService(db, "progress-category-user", nil)
	stats, err := svc.CategoryStats(context.Background(), "valid-token", "progress-category")
	require.NoError(t, err)

	require.Equal(t, "progress-category", stats.Category)
	require.Equal(t, 6, stats.TotalAttempts)
	require.Equal(t, 5.0, stats.AverageScore)
	require.Equal(t, 8.0, stats.BestScore)
	require.Equal(t, TrendImproving, stats.RecentTrend)
}

func TestCategoryStatsStableAtThreeAttempts(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-category-stable")

	base := time.Now().Add(-3 * time.Hour)
	for i, score := range []float64{5, 5, 9} {
		seedScoredEvaluation(t, db, "progress-stable-user", challenge.ID, score, base.Add(time.Duration(i)*time.Hour))
	}

	svc := newTestProgressService(db, "progress-stable-user", nil)
	stats, err := svc.CategoryStats(context.Background(), "valid-token", "progress-category-stable")
	require.NoError(t, err)

	// With exactly three attempts the recent window equals the whole history.
	require.Equal(t, TrendStable, stats.RecentTrend)
}

func TestCategoryStatsInsufficientData(t *testing.T) {
	db := setupServiceDB(t)
	challenge := seedChallenge(t, db, "progress-category-thin")
	seedScoredEvaluation(t, db, "progress-thin-user", challenge.ID, 6, time.Now().Add(-time.Hour))

	svc := newTestProgressService(db, "progress-thin-user", nil)
	stats, err := svc.CategoryStats(context.Background(), "valid-token", "progress-category-thin")
	require.NoError(t, err)

	require.Equal(t, 1, stats.TotalAttempts)
	require.Equal(t, TrendInsufficientData, stats.RecentTrend)
}

func TestCategoryStatsUnknownCategory(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestProgressService(db, "progress-nodata-user", nil)

	stats, err := svc.CategoryStats(context.Background(), "valid-token", "progress-no-such-category")
	require.NoError(t, err)

	require.Equal(t, TrendNoData, stats.RecentTrend)
	require.Zero(t, stats.TotalAttempts)
	require.Zero(t, stats.AverageScore)
}

func TestProgressEndpointsRejectBadToken(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestProgressService(db, "progress-auth-user", nil)

	_, err := svc.DashboardStats(context.Background(), "wrong-token")
	require.ErrorIs(t, err, auth.ErrAuthenticationFailed)

	_, err = svc.TopMistakes(context.Background(), "wrong-token")
	require.ErrorIs(t, err, auth.ErrAuthenticationFailed)
}
