package model

// FactAnchor is a sentence selected as highly information-dense, used
// to ground generated summaries.
type FactAnchor struct {
	SentenceText string `json:"sentence_text"`

	// Score is the sum of all feature contributions.
	Score float64 `json:"score"`

	// ScoreBreakdown maps feature name (date, amount, denial, action,
	// authority, length) to its contribution, for explainability.
	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`

	// SourceIndex is the sentence position in original order (0-based).
	SourceIndex int `json:"source_index"`
}
