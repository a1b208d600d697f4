package llm

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rtiscope/rtiscope/internal/ingest"
	"github.com/rtiscope/rtiscope/internal/model"
)

// Extractive is the local deterministic fallback backend. It selects
// sentences by word-frequency scoring with domain keyword boosts and
// makes no external calls: identical input always yields identical
// output.
type Extractive struct{}

// NewExtractive creates the fallback backend.
func NewExtractive() *Extractive {
	return &Extractive{}
}

// Target sentence counts per variant.
const (
	ultraShortSentences = 2
	citizenSentences    = 4
	technicalSentences  = 5
)

var importantKeywords = []string{
	"provided", "denied", "rejected", "approved", "processed",
	"transferred", "forwarded", "exemption", "section", "appeal",
	"information", "refund", "amount", "credited", "submitted",
	"sanctioned", "ministry", "department", "officer", "authority",
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "this": true,
	"that": true, "from": true, "have": true, "has": true, "was": true,
	"were": true, "been": true, "being": true, "are": true, "you": true,
	"your": true, "our": true, "their": true, "which": true, "would": true,
	"could": true, "should": true, "may": true, "will": true, "can": true,
	"not": true, "but": true, "also": true, "any": true, "all": true,
	"such": true,
}

var (
	extractiveAmountRe = regexp.MustCompile(`(?i)Rs\.?\s*[\d,]+`)
	extractiveDateRe   = regexp.MustCompile(`\d{1,2}(?:st|nd|rd|th)?\s+\w+,?\s+\d{4}`)
	nonWordRe          = regexp.MustCompile(`[^\p{L}\p{N}\s.]`)
)

// Summarize produces a variant-shaped extractive summary over the same
// (full text, anchors) pair the primary backend would have seen.
func (e *Extractive) Summarize(fullText string, anchors []model.FactAnchor, variant model.Variant) (string, error) {
	switch variant {
	case model.VariantCitizenFriendly:
		return simplify(e.extractTop(fullText, anchors, citizenSentences)), nil
	case model.VariantTechnical:
		return e.technicalSummary(fullText, anchors), nil
	default:
		return e.extractTop(fullText, anchors, ultraShortSentences), nil
	}
}

// extractTop returns the n highest-scoring sentences, reordered to
// original position for coherence.
func (e *Extractive) extractTop(fullText string, anchors []model.FactAnchor, n int) string {
	sentences := ingest.SplitSentences(fullText)
	if len(sentences) == 0 {
		if len(fullText) > 500 {
			return fullText[:500]
		}
		return fullText
	}

	freq := wordFrequencies(fullText)
	anchorSet := anchorTexts(anchors)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{index: i, score: scoreSentence(s, freq, anchorSet)}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	keep := make(map[int]bool, n)
	for _, r := range ranked[:n] {
		keep[r.index] = true
	}

	var out []string
	for i, s := range sentences {
		if keep[i] {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

// technicalSummary builds a structured three-section summary.
func (e *Extractive) technicalSummary(fullText string, anchors []model.FactAnchor) string {
	sentences := ingest.SplitSentences(fullText)
	freq := wordFrequencies(fullText)
	anchorSet := anchorTexts(anchors)

	denialCues := []string{"denied", "rejected", "cannot", "exemption", "section 8", "not available"}
	proceduralCues := []string{"transferred", "forwarded", "fee", "appeal", "days", "applicant"}

	var denied, procedural []string
	type scored struct {
		text  string
		score float64
	}
	var informative []scored

	for _, s := range sentences {
		lower := strings.ToLower(s)
		switch {
		case containsAny(lower, denialCues):
			denied = append(denied, s)
		case containsAny(lower, proceduralCues):
			procedural = append(procedural, s)
		default:
			if sc := scoreSentence(s, freq, anchorSet); sc > 3 {
				informative = append(informative, scored{text: s, score: sc})
			}
		}
	}

	var parts []string
	if len(informative) > 0 {
		sort.SliceStable(informative, func(a, b int) bool {
			return informative[a].score > informative[b].score
		})
		top := informative
		if len(top) > 3 {
			top = top[:3]
		}
		var texts []string
		for _, s := range top {
			texts = append(texts, s.text)
		}
		parts = append(parts, "INFORMATION PROVIDED: "+strings.Join(texts, " "))
	}
	if len(denied) > 0 {
		parts = append(parts, "INFORMATION DENIED: "+strings.Join(capSlice(denied, 2), " "))
	}
	if len(procedural) > 0 {
		parts = append(parts, "PROCEDURAL NOTES: "+strings.Join(capSlice(procedural, 2), " "))
	}

	if len(parts) == 0 {
		return e.extractTop(fullText, anchors, technicalSentences)
	}
	return strings.Join(parts, "\n\n")
}

// scoreSentence combines normalized word frequency, domain keyword
// boosts, amount/date boosts and an anchor-membership boost.
func scoreSentence(sentence string, freq map[string]int, anchorSet map[string]bool) float64 {
	words := tokenize(sentence)
	if len(words) == 0 {
		return 0
	}

	sum := 0
	for _, w := range words {
		sum += freq[w]
	}
	score := float64(sum) / float64(len(words))

	lower := strings.ToLower(sentence)
	for _, kw := range importantKeywords {
		if strings.Contains(lower, kw) {
			score += 2.0
		}
	}

	if extractiveAmountRe.MatchString(sentence) {
		score += 3.0
	}
	if extractiveDateRe.MatchString(sentence) {
		score += 2.0
	}

	// Anchor sentences ground the fallback the same way they ground
	// the generative prompt.
	if anchorSet[strings.TrimSpace(sentence)] {
		score += 3.0
	}

	if len(words) > 40 {
		score *= 0.9
	}

	return score
}

func wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range tokenize(text) {
		if !stopwords[w] {
			freq[w]++
		}
	}
	return freq
}

func tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	var words []string
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".")
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func anchorTexts(anchors []model.FactAnchor) map[string]bool {
	set := make(map[string]bool, len(anchors))
	for _, a := range anchors {
		set[strings.TrimSpace(a.SentenceText)] = true
	}
	return set
}

// simplify swaps bureaucratic phrasing for plain words in the
// citizen-friendly variant.
func simplify(text string) string {
	r := strings.NewReplacer(
		"herewith", "here",
		"aforementioned", "mentioned above",
		"vide", "by",
	)
	return r.Replace(text)
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

func capSlice(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
