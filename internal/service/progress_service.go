package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NovaSyntax753/promptmaster/internal/auth"
	"github.com/NovaSyntax753/promptmaster/internal/dto"
	"github.com/NovaSyntax753/promptmaster/internal/models"
	"github.com/NovaSyntax753/promptmaster/internal/observability"
	"github.com/NovaSyntax753/promptmaster/internal/repository"
)

const defaultTrendDays = 30

// Trend classification labels for category stats.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
	TrendNoData           = "no_data"
)

// mistakeDescriptions maps suggestion categories to static operator-facing
// descriptions. Categories outside the table get a generic fallback.
var mistakeDescriptions = map[string]string{
	"clarity":     "Prompts lack clear structure and organization",
	"specificity": "Instructions are too vague or general",
	"creativity":  "Prompts could be more unique and innovative",
	"relevance":   "Prompts don't fully align with challenge goals",
	"general":     "General improvements needed in prompt construction",
}

const genericMistakeDescription = "Area for improvement"

// ProgressService aggregates a user's evaluation history into derived
// read-side projections. Every operation resolves the caller's token first.
type ProgressService interface {
	DashboardStats(ctx context.Context, token string) (dto.DashboardStatsResponse, error)
	ProgressTrends(ctx context.Context, token string, days int) ([]dto.ProgressTrendResponse, error)
	TopMistakes(ctx context.Context, token string) ([]dto.TopMistakeResponse, error)
	CategoryStats(ctx context.Context, token, category string) (dto.CategoryStatsResponse, error)
}

type progressService struct {
	evaluations repository.EvaluationRepository
	challenges  repository.ChallengeRepository
	resolver    auth.Resolver
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProgressService builds the analytics aggregator. A nil cache client
// disables dashboard caching.
func NewProgressService(
	evaluations repository.EvaluationRepository,
	challenges repository.ChallengeRepository,
	resolver auth.Resolver,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ProgressService {
	return &progressService{
		evaluations: evaluations,
		challenges:  challenges,
		resolver:    resolver,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "progress_service").Logger(),
		now:         time.Now,
	}
}

func (s *progressService) DashboardStats(ctx context.Context, token string) (dto.DashboardStatsResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}
	observability.AnalyticsRequests().WithLabelValues("dashboard").Inc()

	cacheKey := fmt.Sprintf("dashboard:user:%s", identity.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var stats dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				s.logger.Debug().Str("user_id", identity.ID).Msg("dashboard cache hit")
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	evaluations, err := s.evaluations.ListByUser(ctx, identity.ID, repository.EvaluationFilter{Ascending: true})
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	stats := s.buildDashboardStats(ctx, evaluations)

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return stats, nil
}

func (s *progressService) buildDashboardStats(ctx context.Context, evaluations []models.Evaluation) dto.DashboardStatsResponse {
	stats := dto.DashboardStatsResponse{
		BestCategory:       "None",
		AttemptsByCategory: map[string]int{},
	}

	if len(evaluations) == 0 {
		return stats
	}

	stats.TotalAttempts = len(evaluations)

	var scored []float64
	for _, evaluation := range evaluations {
		if evaluation.HasScore() {
			scored = append(scored, *evaluation.OverallScore)
		}
	}

	if len(scored) == 0 {
		return stats
	}

	var sum float64
	for _, score := range scored {
		sum += score
	}
	stats.AverageScore = round2(sum / float64(len(scored)))

	// Improvement rate compares the chronological first half against the
	// second, only once four scored attempts exist.
	if len(scored) >= 4 {
		mid := len(scored) / 2
		firstAvg := mean(scored[:mid])
		secondAvg := mean(scored[mid:])
		if firstAvg > 0 {
			stats.ImprovementRate = round2((secondAvg - firstAvg) / firstAvg * 100)
		}
	}

	// Category aggregation requires one catalog lookup per record; records
	// whose challenge lookup fails are skipped.
	categoryScores := map[string][]float64{}
	var categoryOrder []string
	for _, evaluation := range evaluations {
		challenge, err := s.challenges.GetByID(ctx, evaluation.ChallengeID)
		if err != nil {
			s.logger.Warn().Err(err).Uint("challenge_id", evaluation.ChallengeID).Msg("skipping record with unresolvable challenge")
			continue
		}

		stats.AttemptsByCategory[challenge.Category]++

		if evaluation.HasScore() {
			if _, seen := categoryScores[challenge.Category]; !seen {
				categoryOrder = append(categoryOrder, challenge.Category)
			}
			categoryScores[challenge.Category] = append(categoryScores[challenge.Category], *evaluation.OverallScore)
		}
	}

	// Ties break toward the first-encountered category.
	best := ""
	bestAvg := math.Inf(-1)
	for _, category := range categoryOrder {
		if avg := mean(categoryScores[category]); avg > bestAvg {
			best = category
			bestAvg = avg
		}
	}
	if best != "" {
		stats.BestCategory = best
	}

	return stats
}

func (s *progressService) ProgressTrends(ctx context.Context, token string, days int) ([]dto.ProgressTrendResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	observability.AnalyticsRequests().WithLabelValues("trends").Inc()

	if days <= 0 {
		days = defaultTrendDays
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	evaluations, err := s.evaluations.ListByUser(ctx, identity.ID, repository.EvaluationFilter{
		Since:     &since,
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		scores   []float64
		attempts int
	}
	buckets := map[string]*bucket{}
	for _, evaluation := range evaluations {
		date := evaluation.CreatedAt.Local().Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.attempts++
		if evaluation.HasScore() {
			b.scores = append(b.scores, *evaluation.OverallScore)
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trends := make([]dto.ProgressTrendResponse, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		avg := 0.0
		if len(b.scores) > 0 {
			avg = round2(mean(b.scores))
		}
		trends = append(trends, dto.ProgressTrendResponse{
			Date:         date,
			AverageScore: avg,
			Attempts:     b.attempts,
		})
	}

	return trends, nil
}

func (s *progressService) TopMistakes(ctx context.Context, token string) ([]dto.TopMistakeResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	observability.AnalyticsRequests().WithLabelValues("mistakes").Inc()

	evaluations, err := s.evaluations.ListByUser(ctx, identity.ID, repository.EvaluationFilter{Ascending: true})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	for _, evaluation := range evaluations {
		if len(evaluation.Suggestions) == 0 {
			continue
		}

		var suggestions []dto.ImprovementSuggestionResponse
		if err := json.Unmarshal(evaluation.Suggestions, &suggestions); err != nil {
			s.logger.Warn().Err(err).Uint("evaluation_id", evaluation.ID).Msg("skipping undecodable suggestion payload")
			continue
		}

		for _, suggestion := range suggestions {
			if suggestion.Category == "" {
				continue
			}
			if _, seen := counts[suggestion.Category]; !seen {
				order = append(order, suggestion.Category)
			}
			counts[suggestion.Category]++
		}
	}

	// Stable sort keeps first-encountered order among equal frequencies.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 3 {
		order = order[:3]
	}

	mistakes := make([]dto.TopMistakeResponse, 0, len(order))
	for _, category := range order {
		description, ok := mistakeDescriptions[category]
		if !ok {
			description = genericMistakeDescription
		}
		mistakes = append(mistakes, dto.TopMistakeResponse{
			Category:    category,
			Frequency:   counts[category],
			Description: description,
		})
	}

	return mistakes, nil
}

func (s *progressService) CategoryStats(ctx context.Context, token, category string) (dto.CategoryStatsResponse, error) {
	identity, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		return dto.CategoryStatsResponse{}, err
	}
	observability.AnalyticsRequests().WithLabelValues("category").Inc()

	noData := dto.CategoryStatsResponse{Category: category, RecentTrend: TrendNoData}

	challenges, err := s.challenges.List(ctx, repository.ChallengeFilter{Category: &category})
	if err != nil {
		return dto.CategoryStatsResponse{}, err
	}
	if len(challenges) == 0 {
		return noData, nil
	}

	// Records arrive ordered per challenge, then concatenated. Chronological
	// order across challenges is not guaranteed.
	var evaluations []models.Evaluation
	for _, challenge := range challenges {
		challengeID := challenge.ID
		batch, err := s.evaluations.ListByUser(ctx, identity.ID, repository.EvaluationFilter{
			ChallengeID: &challengeID,
			Ascending:   true,
		})
		if err != nil {
			return dto.CategoryStatsResponse{}, err
		}
		evaluations = append(evaluations, batch...)
	}

	if len(evaluations) == 0 {
		return noData, nil
	}

	var scores []float64
	for _, evaluation := range evaluations {
		if evaluation.HasScore() {
			scores = append(scores, *evaluation.OverallScore)
		}
	}

	stats := dto.CategoryStatsResponse{
		Category:      category,
		TotalAttempts: len(evaluations),
		RecentTrend:   TrendInsufficientData,
	}

	if len(scores) == 0 {
		return stats, nil
	}

	stats.AverageScore = round2(mean(scores))
	best := scores[0]
	for _, score := range scores[1:] {
		if score > best {
			best = score
		}
	}
	stats.BestScore = round2(best)

	if len(scores) >= 3 {
		recent := mean(scores[len(scores)-3:])
		older := mean(scores)
		if len(scores) > 3 {
			older = mean(scores[:len(scores)-3])
		}

		switch {
		case recent > older*1.1:
			stats.RecentTrend = TrendImproving
		case recent < older*0.9:
			stats.RecentTrend = TrendDeclining
		default:
			stats.RecentTrend = TrendStable
		}
	}

	return stats, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
