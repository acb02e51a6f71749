package ai

import "context"

// CompletionRequest describes a single call to the text-generation backend.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	Model       string
}

// Completer is the capability interface over the text-generation backend.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Suggestion is one structured improvement suggestion for a submitted prompt.
type Suggestion struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// Gateway groups the three model operations used by the evaluation pipeline.
// Generate and Advise degrade internally and never fail the pipeline; Judge
// is the only operation allowed to return an error.
type Gateway interface {
	Generate(ctx context.Context, goal, userPrompt string) string
	Judge(ctx context.Context, goal, examplePrompt, userPrompt string) (RubricScores, error)
	Advise(ctx context.Context, userPrompt, goal string, score Score) []Suggestion
}
