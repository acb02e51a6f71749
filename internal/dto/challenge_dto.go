package dto

import (
	"time"

	"github.com/NovaSyntax753/promptmaster/internal/models"
)

// ChallengeResponse represents a catalog challenge to API consumers.
type ChallengeResponse struct {
	ID            uint      `json:"id"`
	Category      string    `json:"category"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Goal          string    `json:"goal"`
	ExamplePrompt string    `json:"example_prompt"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewChallengeResponse builds a response DTO from a model.
func NewChallengeResponse(challenge models.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:            challenge.ID,
		Category:      challenge.Category,
		Title:         challenge.Title,
		Description:   challenge.Description,
		Goal:          challenge.Goal,
		ExamplePrompt: challenge.ExamplePrompt,
		Difficulty:    challenge.Difficulty,
		CreatedAt:     challenge.CreatedAt,
	}
}

// NewChallengeResponseSlice converts a slice of models into DTOs.
func NewChallengeResponseSlice(challenges []models.Challenge) []ChallengeResponse {
	responses := make([]ChallengeResponse, 0, len(challenges))
	for _, challenge := range challenges {
		responses = append(responses, NewChallengeResponse(challenge))
	}
	return responses
}
