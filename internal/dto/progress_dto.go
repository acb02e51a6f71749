package dto

// DashboardStatsResponse aggregates a user's evaluation history. It is
// recomputed on request and never stored.
type DashboardStatsResponse struct {
	TotalAttempts      int            `json:"total_attempts"`
	AverageScore       float64        `json:"average_score"`
	ImprovementRate    float64        `json:"improvement_rate"`
	BestCategory       string         `json:"best_category"`
	AttemptsByCategory map[string]int `json:"attempts_by_category"`
}

// ProgressTrendResponse is one calendar date's aggregate in a trend window.
// Dates with no attempts produce no entry.
type ProgressTrendResponse struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"average_score"`
	Attempts     int     `json:"attempts"`
}

// TopMistakeResponse is one of the user's most frequent suggestion categories.
type TopMistakeResponse struct {
	Category    string `json:"category"`
	Frequency   int    `json:"frequency"`
	Description string `json:"description"`
}

// CategoryStatsResponse summarises a user's attempts within one challenge
// category.
type CategoryStatsResponse struct {
	Category      string  `json:"category"`
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
	RecentTrend   string  `json:"recent_trend"`
}
