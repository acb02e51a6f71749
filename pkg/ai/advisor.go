package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackSuggestions returns the fixed generic suggestion list used whenever
// the advise call fails. Suggestions are advisory and must never block an
// otherwise-successful evaluation.
func FallbackSuggestions() []Suggestion {
	return []Suggestion{
		{
			Category:   "general",
			Suggestion: "Be more specific about the expected output format",
			Priority:   "medium",
		},
		{
			Category:   "general",
			Suggestion: "Add context about the target audience or use case",
			Priority:   "medium",
		},
	}
}

// buildAdvisePrompt assembles the suggestion-generation instruction text.
// Scores are presented back on the raw 0-2 scale the judge used.
func buildAdvisePrompt(userPrompt, goal string, score Score) string {
	builder := strings.Builder{}
	builder.WriteString("Based on the prompt evaluation, provide 3-5 specific improvement suggestions.\n\n")
	builder.WriteString("CHALLENGE GOAL: ")
	builder.WriteString(goal)
	builder.WriteString("\n\nUSER'S PROMPT: ")
	builder.WriteString(userPrompt)
	builder.WriteString("\n\nEVALUATION SCORES (0-2 scale):\n")
	fmt.Fprintf(&builder, "- Clarity: %d/2 (ease of understanding)\n", int(score.Clarity/5))
	fmt.Fprintf(&builder, "- Purpose: %d/2 (clear goal statement)\n", int(score.Relevance/5))
	fmt.Fprintf(&builder, "- Structure: %d/2 (organized format)\n", int(score.Creativity/5))
	fmt.Fprintf(&builder, "- Completeness: %d/2 (sufficient detail)\n", int(score.Specificity/5))
	builder.WriteString("- Language Quality: (grammar and readability)\n")
	fmt.Fprintf(&builder, "\nOverall Score: %g/10\n", score.Overall)
	builder.WriteString("\nProvide actionable suggestions to improve this prompt. Focus on the lowest-scoring criteria.\n")
	builder.WriteString("\nRespond ONLY with valid JSON in this exact format:\n")
	builder.WriteString(`[
    {
        "category": "clarity",
        "suggestion": "Break down your prompt into numbered steps for better structure",
        "priority": "high"
    },
    {
        "category": "purpose",
        "suggestion": "Clearly state what output format or result you expect",
        "priority": "medium"
    }
]`)
	builder.WriteString("\n\nValid categories: clarity, purpose, structure, completeness, language, general\n")
	builder.WriteString("Valid priorities: high, medium, low")
	return builder.String()
}

// parseSuggestions decodes the advise response body into suggestion entries.
func parseSuggestions(content string) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("advise response is not a valid suggestion array: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("advise response contained no suggestions")
	}

	for i := range suggestions {
		suggestions[i].Category = strings.ToLower(strings.TrimSpace(suggestions[i].Category))
		if suggestions[i].Category == "" || strings.TrimSpace(suggestions[i].Suggestion) == "" {
			return nil, fmt.Errorf("advise response entry %d is missing category or text", i)
		}
		if suggestions[i].Priority == "" {
			suggestions[i].Priority = "medium"
		}
	}

	return suggestions, nil
}
