package ai

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// judgeSchema is the contract the judge call must satisfy. Validation is a
// separate step from decoding so that a well-formed JSON body with out-of-range
// or missing values is classified as malformed rather than silently coerced.
const judgeSchemaJSON = `{
	"type": "object",
	"required": ["clarity", "purpose", "structure", "completeness", "language_quality"],
	"properties": {
		"clarity": {"type": "integer", "minimum": 0, "maximum": 2},
		"purpose": {"type": "integer", "minimum": 0, "maximum": 2},
		"structure": {"type": "integer", "minimum": 0, "maximum": 2},
		"completeness": {"type": "integer", "minimum": 0, "maximum": 2},
		"language_quality": {"type": "integer", "minimum": 0, "maximum": 2},
		"reasoning": {
			"type": "object",
			"properties": {
				"clarity": {"type": "string"},
				"purpose": {"type": "string"},
				"structure": {"type": "string"},
				"completeness": {"type": "string"},
				"language_quality": {"type": "string"}
			}
		}
	}
}`

var judgeSchema = jsonschema.MustCompileString("judge.json", judgeSchemaJSON)

// parseRubricScores decodes and validates the judge response body. Every
// failure mode (invalid JSON, schema violation, undecodable values) is a
// malformed-output classification for the caller.
func parseRubricScores(content string) (RubricScores, error) {
	var document interface{}
	if err := json.Unmarshal([]byte(content), &document); err != nil {
		return RubricScores{}, fmt.Errorf("judge response is not valid JSON: %w", err)
	}

	if err := judgeSchema.Validate(document); err != nil {
		return RubricScores{}, fmt.Errorf("judge response violates rubric schema: %w", err)
	}

	var scores RubricScores
	if err := json.Unmarshal([]byte(content), &scores); err != nil {
		return RubricScores{}, fmt.Errorf("judge response could not be decoded: %w", err)
	}

	return scores, nil
}
