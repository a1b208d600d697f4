// Package classify implements the deterministic sentence classifier
// for disclosure responses. Its output drives status evaluation and
// display only; it is never consulted by summarization.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/rtiscope/rtiscope/internal/ingest"
	"github.com/rtiscope/rtiscope/internal/model"
)

// detector is one keyword-table category matcher. Detectors run
// independently per sentence; the highest score wins, and on a tie the
// detector listed earlier in the table wins. Table order is the fixed
// priority Denial > Evasive > Procedural > Informative.
type detector struct {
	category model.Category
	keywords []string
}

// detection is the tagged result of running one detector.
type detection struct {
	category model.Category
	score    float64
	matched  []string
}

// Classifier categorizes sentences of a disclosure response.
type Classifier struct {
	detectors []detector
}

// NewClassifier creates a classifier with the built-in keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		detectors: []detector{
			{
				category: model.CategoryDenial,
				keywords: []string{
					"cannot be provided", "denied", "rejected", "exempt", "exemption",
					"refused", "decline", "not possible", "section 8",
					"confidential", "classified", "sensitive", "national security",
				},
			},
			{
				category: model.CategoryEvasive,
				keywords: []string{
					"no such information", "not maintained", "not available",
					"beyond scope", "voluminous", "vague", "clarify", "resubmit",
				},
			},
			{
				category: model.CategoryProcedural,
				keywords: []string{
					"transferred to", "forwarded to", "fee required", "please deposit",
					"additional fee", "time extension", "additional time",
					"competent authority", "cpio", "acknowledged", "acknowledgment",
				},
			},
			{
				category: model.CategoryInformative,
				keywords: []string{
					"information is", "details are", "as per records", "enclosed",
					"attached", "provided herewith", "following information",
					"data shows", "was processed", "has been credited",
				},
			},
		},
	}
}

// Statute section citations: "Section 8(1)(j)", "Sec. 19", "under section 7".
var sectionRe = regexp.MustCompile(`(?i)\bsec(?:tion)?\.?\s*(\d+(?:\s*\(\s*\d+\s*\))?(?:\s*\(\s*[a-z]\s*\))?)`)

// Transfer phrasing that boosts the procedural detector even without a
// section 6(3) citation.
var transferRe = regexp.MustCompile(`(?i)\b(transfer|forward)`)

// hasTextRe decides whether a fragment is classifiable at all.
var hasTextRe = regexp.MustCompile(`[\p{L}\p{N}]`)

// Classify segments cleanedText into sentences and partitions them
// into the four category sequences. Empty fragments are dropped
// silently; malformed fragments (no letters or digits) are skipped and
// counted in SkippedSentences. The call never fails.
func (c *Classifier) Classify(cleanedText string) *model.StructuredResponse {
	result := &model.StructuredResponse{
		OriginalText: cleanedText,
		SectionIndex: make(map[string][]int),
	}

	sentences := ingest.SplitSentences(cleanedText)
	for i, sentence := range sentences {
		if !hasTextRe.MatchString(sentence) {
			result.SkippedSentences++
			continue
		}

		cs := c.ClassifySentence(sentence)
		cs.SourceIndex = i

		switch cs.Category {
		case model.CategoryDenial:
			result.Denial = append(result.Denial, cs)
		case model.CategoryEvasive:
			result.Evasive = append(result.Evasive, cs)
		case model.CategoryProcedural:
			result.Procedural = append(result.Procedural, cs)
		default:
			result.Informative = append(result.Informative, cs)
		}

		for _, ref := range cs.SectionReferences {
			result.SectionIndex[ref] = append(result.SectionIndex[ref], i)
		}
	}

	return result
}

// ClassifySentence runs every detector over one sentence and assigns
// the highest-scoring category. Section references are extracted
// independently and attached regardless of category.
func (c *Classifier) ClassifySentence(sentence string) model.ClassifiedSentence {
	sentence = strings.TrimSpace(sentence)
	lower := strings.ToLower(sentence)
	refs := ExtractSectionRefs(sentence)

	var detections []detection
	for _, d := range c.detectors {
		var matched []string
		for _, kw := range d.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, kw)
			}
		}
		det := detection{
			category: d.category,
			score:    float64(len(matched)),
			matched:  matched,
		}

		// Citation boosts: an exemption-section citation strengthens
		// denial; a transfer section or transfer phrasing strengthens
		// procedural.
		switch d.category {
		case model.CategoryDenial:
			if hasSectionPrefix(refs, "8") {
				det.score += 1.0
			}
		case model.CategoryProcedural:
			if hasSectionPrefix(refs, "7") || hasSectionPrefix(refs, "6") || transferRe.MatchString(sentence) {
				det.score += 0.5
			}
		}

		detections = append(detections, det)
	}

	// Highest score wins; strict comparison preserves table order on ties.
	best := detection{category: model.CategoryInformative}
	for _, det := range detections {
		if det.score > best.score {
			best = det
		}
	}

	words := len(strings.Fields(sentence))
	confidence := 0.5 // No lexical signal: informative fall-through
	if best.score > 0 {
		confidence = matchConfidence(len(best.matched), best.score, words)
	}

	return model.ClassifiedSentence{
		Text:              sentence,
		Category:          best.category,
		Confidence:        confidence,
		SectionReferences: refs,
		MatchedKeywords:   best.matched,
	}
}

// matchConfidence normalizes a detector score into (0, 1]: it grows
// with match count and shrinks with sentence length, so a single cue
// in a long sentence counts for less than the same cue in a short one.
func matchConfidence(matches int, score float64, words int) float64 {
	if words < 1 {
		words = 1
	}
	weight := 2.0*score + float64(matches)
	return math.Min(1.0, weight/(weight+float64(words)/4.0))
}

// ExtractSectionRefs returns the statute section identifiers cited in
// a sentence, normalized (whitespace stripped, e.g. "8(1)(j)"), in
// order of appearance without duplicates.
func ExtractSectionRefs(sentence string) []string {
	matches := sectionRe.FindAllStringSubmatch(sentence, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var refs []string
	for _, m := range matches {
		ref := strings.ToLower(strings.Join(strings.Fields(m[1]), ""))
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

func hasSectionPrefix(refs []string, prefix string) bool {
	for _, r := range refs {
		if r == prefix || strings.HasPrefix(r, prefix+"(") {
			return true
		}
	}
	return false
}
