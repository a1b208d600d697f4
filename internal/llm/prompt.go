package llm

import (
	"fmt"
	"strings"

	"github.com/rtiscope/rtiscope/internal/anchor"
	"github.com/rtiscope/rtiscope/internal/model"
)

// Fact-anchored prompt templates. Each template embeds the anchor list
// AND the entire cleaned text: the anchors ground the output in
// concrete facts, while the full text guards against context loss.
// Summarization input is never a classification-filtered subset.

const ultraShortTemplate = `You are summarizing an RTI response.

Task:
- State what INFORMATION was actually provided by the public authority.
- Mention key activities, dates, locations, and outcomes.
- If procedural or appeal-related information exists, mention it briefly at the end.
- Do NOT generate generic explanations.
- Do NOT repeat template phrases.
- Base the summary strictly on the content provided.

Key Facts:
%s

Full RTI Response:
%s

ULTRA-SHORT SUMMARY (1-2 sentences only):`

const citizenFriendlyTemplate = `Explain the RTI response in simple English for a common citizen.

Clearly explain:
- What work or information was shared
- When and where it happened
- Which authority provided the information
- What the applicant can do next (only if appeal is mentioned)

Avoid legal jargon unless necessary.
Avoid generic procedural descriptions.
Use facts from the response.

Key Facts:
%s

Full RTI Response:
%s

CITIZEN-FRIENDLY SUMMARY (3-5 sentences):`

const technicalTemplate = `Provide a formal RTI-style summary.

Include:
- Actions taken by the public authority
- Relevant dates, scope, and subject matter
- Procedural rights such as appeal, if explicitly mentioned

Do NOT assume denial unless stated.
Do NOT produce generic procedural summaries.

Key Facts:
%s

Full RTI Response:
%s

TECHNICAL/LEGAL SUMMARY:`

// BuildPrompt materializes the prompt for one variant from the full
// cleaned text and the anchor set. maxChunk caps how many characters
// of the full text are embedded (0 means no cap); the anchor list is
// never truncated.
func BuildPrompt(variant model.Variant, fullText string, anchors []model.FactAnchor, maxChunk int) string {
	if maxChunk > 0 && len(fullText) > maxChunk {
		fullText = fullText[:maxChunk]
	}
	facts := anchor.FormatAnchors(anchors)

	var tmpl string
	switch variant {
	case model.VariantUltraShort:
		tmpl = ultraShortTemplate
	case model.VariantCitizenFriendly:
		tmpl = citizenFriendlyTemplate
	case model.VariantTechnical:
		tmpl = technicalTemplate
	default:
		tmpl = ultraShortTemplate
	}

	return fmt.Sprintf(tmpl, facts, strings.TrimSpace(fullText))
}
