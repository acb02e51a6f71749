package ai

// RubricReasoning carries the judge's free-text explanation per criterion.
type RubricReasoning struct {
	Clarity         string `json:"clarity"`
	Purpose         string `json:"purpose"`
	Structure       string `json:"structure"`
	Completeness    string `json:"completeness"`
	LanguageQuality string `json:"language_quality"`
}

// RubricScores holds the raw rubric integers returned by the judge call.
// Each criterion is scored 0, 1 or 2.
type RubricScores struct {
	Clarity         int             `json:"clarity"`
	Purpose         int             `json:"purpose"`
	Structure       int             `json:"structure"`
	Completeness    int             `json:"completeness"`
	LanguageQuality int             `json:"language_quality"`
	Reasoning       RubricReasoning `json:"reasoning"`
}

// Score is the public 0-10 representation of an evaluation.
//
// The four named fields are the corresponding rubric criteria scaled by 5.
// Overall is the plain sum of all five raw rubric components and therefore
// lives on a different scale than the named fields; language quality feeds
// only into Overall and is not exposed as its own field.
type Score struct {
	Clarity     float64 `json:"clarity"`
	Specificity float64 `json:"specificity"`
	Creativity  float64 `json:"creativity"`
	Relevance   float64 `json:"relevance"`
	Overall     float64 `json:"overall"`
}

// Normalize maps raw rubric integers onto the public score representation.
func (r RubricScores) Normalize() Score {
	return Score{
		Clarity:     float64(r.Clarity) * 5,
		Specificity: float64(r.Completeness) * 5,
		Creativity:  float64(r.Structure) * 5,
		Relevance:   float64(r.Purpose) * 5,
		Overall:     float64(r.Clarity + r.Purpose + r.Structure + r.Completeness + r.LanguageQuality),
	}
}
