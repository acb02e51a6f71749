package models

import "time"

// Challenge difficulty levels stored in the catalog.
const (
	ChallengeDifficultyEasy   = "easy"
	ChallengeDifficultyMedium = "medium"
	ChallengeDifficultyHard   = "hard"
)

// Challenge represents a prompting exercise from the catalog. Catalog rows
// are read-only from this service's point of view.
type Challenge struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Category      string    `gorm:"size:64;index;not null" json:"category"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Goal          string    `gorm:"type:text;not null" json:"goal"`
	ExamplePrompt string    `gorm:"type:text" json:"example_prompt"`
	Difficulty    string    `gorm:"size:32;index" json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
}
