package dto

import (
	"encoding/json"
	"time"

	"github.com/NovaSyntax753/promptmaster/internal/models"
	"github.com/NovaSyntax753/promptmaster/pkg/ai"
)

// PromptSubmissionRequest is the payload for submitting a prompt against a
// challenge.
type PromptSubmissionRequest struct {
	ChallengeID uint   `json:"challenge_id" validate:"required,gt=0"`
	UserPrompt  string `json:"user_prompt" validate:"required,min=1"`
}

// EvaluationScoreResponse is the public 0-10 score representation. Overall is
// the 0-10 sum of the five raw rubric components, not of the scaled fields.
type EvaluationScoreResponse struct {
	Clarity     float64 `json:"clarity"`
	Specificity float64 `json:"specificity"`
	Creativity  float64 `json:"creativity"`
	Relevance   float64 `json:"relevance"`
	Overall     float64 `json:"overall"`
}

// ImprovementSuggestionResponse is one suggestion attached to an evaluation.
type ImprovementSuggestionResponse struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// EvaluationResponse represents a stored evaluation to API consumers.
type EvaluationResponse struct {
	ID          uint                            `json:"id"`
	UserID      string                          `json:"user_id"`
	ChallengeID uint                            `json:"challenge_id"`
	UserPrompt  string                          `json:"user_prompt"`
	AIOutput    string                          `json:"ai_output"`
	Scores      EvaluationScoreResponse         `json:"scores"`
	Suggestions []ImprovementSuggestionResponse `json:"suggestions"`
	CreatedAt   time.Time                       `json:"created_at"`
}

// NewEvaluationScoreResponse converts a normalized score into the API shape.
func NewEvaluationScoreResponse(score ai.Score) EvaluationScoreResponse {
	return EvaluationScoreResponse{
		Clarity:     score.Clarity,
		Specificity: score.Specificity,
		Creativity:  score.Creativity,
		Relevance:   score.Relevance,
		Overall:     score.Overall,
	}
}

// NewImprovementSuggestionResponseSlice converts gateway suggestions into DTOs.
func NewImprovementSuggestionResponseSlice(suggestions []ai.Suggestion) []ImprovementSuggestionResponse {
	responses := make([]ImprovementSuggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		responses = append(responses, ImprovementSuggestionResponse{
			Category:   suggestion.Category,
			Suggestion: suggestion.Suggestion,
			Priority:   suggestion.Priority,
		})
	}
	return responses
}

// NewEvaluationResponse builds a response DTO from a stored evaluation.
func NewEvaluationResponse(evaluation models.Evaluation) EvaluationResponse {
	overall := 0.0
	if evaluation.OverallScore != nil {
		overall = *evaluation.OverallScore
	}

	var suggestions []ImprovementSuggestionResponse
	if len(evaluation.Suggestions) > 0 {
		_ = json.Unmarshal(evaluation.Suggestions, &suggestions)
	}

	return EvaluationResponse{
		ID:          evaluation.ID,
		UserID:      evaluation.UserID,
		ChallengeID: evaluation.ChallengeID,
		UserPrompt:  evaluation.UserPrompt,
		AIOutput:    evaluation.AIOutput,
		Scores: EvaluationScoreResponse{
			Clarity:     evaluation.ClarityScore,
			Specificity: evaluation.SpecificityScore,
			Creativity:  evaluation.CreativityScore,
			Relevance:   evaluation.RelevanceScore,
			Overall:     overall,
		},
		Suggestions: suggestions,
		CreatedAt:   evaluation.CreatedAt,
	}
}

// NewEvaluationResponseSlice converts a slice of stored evaluations into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}
	return responses
}
