// Package anchor implements fact anchor extraction: the selection of
// the most information-dense sentences of a disclosure response.
// Selection is a pure function of text and configuration; it never
// consults sentence classification.
package anchor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rtiscope/rtiscope/internal/ingest"
	"github.com/rtiscope/rtiscope/internal/model"
)

// Feature weights. Amounts are the most specific signal, dates and
// denial citations next, generic authority names the weakest.
const (
	weightAmount    = 3.0
	weightDate      = 2.5
	weightDenial    = 2.5
	weightAction    = 2.0
	weightAuthority = 1.0
)

var actionKeywords = []string{
	"provided", "processed", "credited", "transferred", "completed",
	"approved", "sanctioned", "issued", "granted", "received",
	"dispatched", "forwarded", "deposited", "verified", "confirmed",
}

var denialKeywords = []string{
	"denied", "rejected", "cannot be provided", "not available",
	"exemption", "section 8", "confidential", "not maintained",
}

var authorityKeywords = []string{
	"ministry", "department", "office", "cpio", "pio",
	"authority", "commissioner", "secretary", "officer",
}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Rs\.?\s*[\d,]+`),
	regexp.MustCompile(`(?i)₹\s*[\d,]+`),
	regexp.MustCompile(`(?i)INR\s*[\d,]+`),
	regexp.MustCompile(`(?i)\d+\s*(?:lakh|crore|thousand)`),
	regexp.MustCompile(`(?i)amount(?:ing)?\s+(?:of|to)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December),?\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),
}

// Extractor selects fact anchors from cleaned text.
type Extractor struct {
	cfg model.AnchorConfig
}

// NewExtractor creates an extractor with the given configuration.
// MaxAnchors below 1 is clamped to 1.
func NewExtractor(cfg model.AnchorConfig) *Extractor {
	if cfg.MaxAnchors < 1 {
		cfg.MaxAnchors = 1
	}
	return &Extractor{cfg: cfg}
}

// Extract scores every sentence of cleanedText and returns the top
// anchors sorted by descending score, ties broken by original sentence
// order. A result of zero anchors (no sentence meets MinScore) is
// valid, not an error.
func (e *Extractor) Extract(cleanedText string) []model.FactAnchor {
	sentences := ingest.SplitSentences(cleanedText)

	var anchors []model.FactAnchor
	for i, sentence := range sentences {
		score, breakdown := ScoreSentence(sentence)
		if score < e.cfg.MinScore {
			continue
		}
		anchors = append(anchors, model.FactAnchor{
			SentenceText:   sentence,
			Score:          score,
			ScoreBreakdown: breakdown,
			SourceIndex:    i,
		})
	}

	sort.SliceStable(anchors, func(a, b int) bool {
		if anchors[a].Score != anchors[b].Score {
			return anchors[a].Score > anchors[b].Score
		}
		return anchors[a].SourceIndex < anchors[b].SourceIndex
	})

	if len(anchors) > e.cfg.MaxAnchors {
		anchors = anchors[:e.cfg.MaxAnchors]
	}

	return anchors
}

// ScoreSentence computes the fact-richness score of one sentence and a
// per-feature breakdown. Keyword features add their weight once per
// matched keyword; pattern features add their weight once per match.
func ScoreSentence(sentence string) (float64, map[string]float64) {
	lower := strings.ToLower(sentence)
	breakdown := make(map[string]float64)

	addKeywords := func(feature string, keywords []string, weight float64) {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				breakdown[feature] += weight
			}
		}
	}
	addPatterns := func(feature string, patterns []*regexp.Regexp, weight float64) {
		for _, re := range patterns {
			if n := len(re.FindAllString(sentence, -1)); n > 0 {
				breakdown[feature] += weight * float64(n)
			}
		}
	}

	addKeywords("action", actionKeywords, weightAction)
	addKeywords("denial", denialKeywords, weightDenial)
	addKeywords("authority", authorityKeywords, weightAuthority)
	addPatterns("amount", amountPatterns, weightAmount)
	addPatterns("date", datePatterns, weightDate)

	score := 0.0
	for _, v := range breakdown {
		score += v
	}

	// Length heuristic: mid-length sentences tend to carry complete
	// facts; fragments rarely do.
	words := len(strings.Fields(sentence))
	switch {
	case words >= 15 && words <= 50:
		breakdown["length"] = 1.0
		score += 1.0
	case words > 50:
		breakdown["length"] = 0.5
		score += 0.5
	case words < 5:
		score *= 0.5
		for k := range breakdown {
			breakdown[k] *= 0.5
		}
	}

	if len(breakdown) == 0 {
		breakdown = nil
	}
	return score, breakdown
}

// FormatAnchors renders anchors as a numbered list for prompt
// injection.
func FormatAnchors(anchors []model.FactAnchor) string {
	if len(anchors) == 0 {
		return "No specific facts extracted."
	}

	var b strings.Builder
	for i, a := range anchors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + strings.TrimSpace(a.SentenceText))
	}
	return b.String()
}
