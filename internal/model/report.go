package model

import "time"

// Report is the complete analysis of one disclosure response.
// Classification feeds Status and Suggestions only; Summaries are
// produced from the full text plus Anchors, never from the
// classification output.
type Report struct {
	Source     string    `json:"source,omitempty"` // Input file path or label
	AnalyzedAt time.Time `json:"analyzed_at"`

	Response *StructuredResponse `json:"response"`
	Anchors  []FactAnchor        `json:"anchors"`

	Summaries SummaryBundle `json:"summaries"`

	Status      Status             `json:"status"`
	Suggestions []ActionSuggestion `json:"suggestions"`
}
