package ai

import "strings"

// BuildJudgePrompt assembles the evaluation instruction text for the judge
// call. The embedded rubric and output contract are fixed; only the goal,
// example prompt and candidate prompt vary.
func BuildJudgePrompt(goal, examplePrompt, userPrompt string) string {
	builder := strings.Builder{}
	builder.WriteString("You are a strict and consistent Prompt Quality Evaluator. ")
	builder.WriteString("Your job is to rate the given prompt based on five criteria. ")
	builder.WriteString("You must think through each criterion step by step before giving a final score.\n\n")
	builder.WriteString("CHALLENGE GOAL: ")
	builder.WriteString(goal)
	builder.WriteString("\n\nEXAMPLE PROMPT: ")
	builder.WriteString(examplePrompt)
	builder.WriteString("\n\nUSER'S PROMPT TO EVALUATE: ")
	builder.WriteString(userPrompt)
	builder.WriteString("\n\nEvaluation Criteria (each worth 2 points):\n")
	builder.WriteString("1. Clarity - The prompt should be easy to understand in one reading. (0 = fails, 1 = partial, 2 = fully meets)\n")
	builder.WriteString("2. Purpose - The prompt should clearly state the goal or expected result. (0 = fails, 1 = partial, 2 = fully meets)\n")
	builder.WriteString("3. Structure - The prompt should have organized instructions, formatting, steps, or bullet points when needed. (0 = fails, 1 = partial, 2 = fully meets)\n")
	builder.WriteString("4. Completeness - The prompt should include enough detail for a useful, high-quality response. (0 = fails, 1 = partial, 2 = fully meets)\n")
	builder.WriteString("5. Language Quality - The prompt should be readable, grammatically correct, and free of confusing wording. (0 = fails, 1 = partial, 2 = fully meets)\n")
	builder.WriteString("\nThink through each criterion step by step, then respond with ONLY valid JSON in this exact format:\n")
	builder.WriteString(`{
    "clarity": 2,
    "purpose": 1,
    "structure": 2,
    "completeness": 1,
    "language_quality": 2,
    "reasoning": {
        "clarity": "Brief explanation of clarity score",
        "purpose": "Brief explanation of purpose score",
        "structure": "Brief explanation of structure score",
        "completeness": "Brief explanation of completeness score",
        "language_quality": "Brief explanation of language quality score"
    }
}`)
	builder.WriteString("\n\nScores must be integers: 0, 1, or 2 only.")
	return builder.String()
}
