package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation captures one scored prompt submission. Rows are write-once;
// there is no update or delete path after creation.
type Evaluation struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           string         `gorm:"size:64;index;not null" json:"user_id"`
	ChallengeID      uint           `gorm:"index;not null" json:"challenge_id"`
	UserPrompt       string         `gorm:"type:text;not null" json:"user_prompt"`
	AIOutput         string         `gorm:"type:text" json:"ai_output"`
	ClarityScore     float64        `json:"clarity_score"`
	SpecificityScore float64        `json:"specificity_score"`
	CreativityScore  float64        `json:"creativity_score"`
	RelevanceScore   float64        `json:"relevance_score"`
	OverallScore     *float64       `json:"overall_score"`
	Suggestions      datatypes.JSON `json:"suggestions"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
}

// HasScore reports whether the evaluation carries a judged overall score.
func (e Evaluation) HasScore() bool {
	return e.OverallScore != nil
}
