package model

// Category classifies a sentence of a disclosure response
type Category string

const (
	CategoryInformative Category = "informative" // Actual information was provided
	CategoryDenial      Category = "denial"      // Information refused, usually citing an exemption
	CategoryProcedural  Category = "procedural"  // Transfer, fee demand, acknowledgment
	CategoryEvasive     Category = "evasive"     // Hedging or non-answer
)

// Categories lists all sentence categories in severity-tiebreak order:
// when detector scores tie, the earlier category wins.
var Categories = []Category{
	CategoryDenial,
	CategoryEvasive,
	CategoryProcedural,
	CategoryInformative,
}

// ClassifiedSentence is a sentence with its category assignment and the
// evidence that produced it.
type ClassifiedSentence struct {
	Text              string   `json:"text"`
	Category          Category `json:"category"`
	Confidence        float64  `json:"confidence"`                   // 0.0-1.0
	SectionReferences []string `json:"section_references,omitempty"` // Statute sections cited, in order of appearance
	MatchedKeywords   []string `json:"matched_keywords,omitempty"`   // Lexical cues that triggered the category
	SourceIndex       int      `json:"source_index"`                 // Position in original sentence order (0-based)
}

// StructuredResponse is the full classification of a disclosure letter.
// Every non-empty sentence of the input appears in exactly one of the
// four category slices; within each slice, original sentence order is
// preserved.
type StructuredResponse struct {
	OriginalText string `json:"original_text"`

	Informative []ClassifiedSentence `json:"informative"`
	Denial      []ClassifiedSentence `json:"denial"`
	Procedural  []ClassifiedSentence `json:"procedural"`
	Evasive     []ClassifiedSentence `json:"evasive"`

	// SectionIndex maps each statute section identifier to the source
	// indices of the sentences that reference it.
	SectionIndex map[string][]int `json:"section_index,omitempty"`

	// SkippedSentences counts malformed inputs dropped during
	// classification. Diagnostic only, never fatal.
	SkippedSentences int `json:"skipped_sentences,omitempty"`
}

// ByCategory returns the slice holding the given category.
func (r *StructuredResponse) ByCategory(c Category) []ClassifiedSentence {
	switch c {
	case CategoryInformative:
		return r.Informative
	case CategoryDenial:
		return r.Denial
	case CategoryProcedural:
		return r.Procedural
	case CategoryEvasive:
		return r.Evasive
	default:
		return nil
	}
}

// TotalSentences returns the number of classified sentences across all
// four categories.
func (r *StructuredResponse) TotalSentences() int {
	return len(r.Informative) + len(r.Denial) + len(r.Procedural) + len(r.Evasive)
}

// Stats summarizes category counts for status evaluation and display.
type Stats struct {
	Total       int `json:"total"`
	Informative int `json:"informative"`
	Denial      int `json:"denial"`
	Procedural  int `json:"procedural"`
	Evasive     int `json:"evasive"`
	Skipped     int `json:"skipped,omitempty"`
}

// GetStats computes per-category counts.
func (r *StructuredResponse) GetStats() Stats {
	return Stats{
		Total:       r.TotalSentences(),
		Informative: len(r.Informative),
		Denial:      len(r.Denial),
		Procedural:  len(r.Procedural),
		Evasive:     len(r.Evasive),
		Skipped:     r.SkippedSentences,
	}
}
