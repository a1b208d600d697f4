package model

// Variant identifies a summary style
type Variant string

const (
	VariantUltraShort      Variant = "ultra_short"      // 1-2 sentences
	VariantCitizenFriendly Variant = "citizen_friendly" // Plain language, 3-5 sentences
	VariantTechnical       Variant = "technical"        // Formal/legal register
)

// Variants lists all summary variants in presentation order.
var Variants = []Variant{
	VariantUltraShort,
	VariantCitizenFriendly,
	VariantTechnical,
}

// Provenance tags which backend produced a summary
type Provenance string

const (
	ProvenancePrimary  Provenance = "primary"  // Remote generative backend
	ProvenanceFallback Provenance = "fallback" // Local deterministic extractive backend
)

// SummaryEntry is the result for a single variant.
type SummaryEntry struct {
	Variant    Variant    `json:"variant"`
	Text       string     `json:"text,omitempty"`
	Provenance Provenance `json:"provenance,omitempty"`

	// Error is set when both backends failed (or the configured mode
	// disallowed the fallback). It carries the error kind plus message.
	Error string `json:"error,omitempty"`
}

// Failed reports whether this variant produced no summary.
func (e SummaryEntry) Failed() bool {
	return e.Error != ""
}

// SummaryBundle holds one entry per requested variant, in Variants order.
type SummaryBundle struct {
	Entries []SummaryEntry `json:"entries"`
}

// Lookup returns the entry for the given variant.
func (b *SummaryBundle) Lookup(v Variant) (SummaryEntry, bool) {
	for _, e := range b.Entries {
		if e.Variant == v {
			return e, true
		}
	}
	return SummaryEntry{}, false
}

// AllFailed reports whether every variant reached the failed state.
func (b *SummaryBundle) AllFailed() bool {
	if len(b.Entries) == 0 {
		return false
	}
	for _, e := range b.Entries {
		if !e.Failed() {
			return false
		}
	}
	return true
}
