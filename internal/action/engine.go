// Package action implements the actionability engine: rule-driven
// next-step guidance derived from the classified response. It is the
// only consumer of classification output.
package action

import (
	"fmt"
	"strings"
	"time"

	"github.com/rtiscope/rtiscope/internal/model"
)

// rule is one table entry. Rules are evaluated in fixed order; the
// first applicable rule per suggestion kind fires. Each rule also
// contributes a status, and the most severe status wins.
type rule struct {
	name   string
	status model.Status
	apply  func(e *Engine, r *model.StructuredResponse) []model.ActionSuggestion
}

// Engine evaluates a structured response into a status and ordered
// suggestions. It is pure: no side effects, no external calls.
type Engine struct {
	cfg model.ActionConfig
	now func() time.Time
}

// NewEngine creates an engine. now supplies the reference time for
// statutory deadlines (typically the response receipt date); nil means
// time.Now.
func NewEngine(cfg model.ActionConfig, now func() time.Time) *Engine {
	if cfg.AppealWindowDays <= 0 {
		cfg.AppealWindowDays = 30
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{cfg: cfg, now: now}
}

// Evaluate derives the overall status and ordered next-step
// suggestions from classification output alone.
func (e *Engine) Evaluate(resp *model.StructuredResponse) (model.Status, []model.ActionSuggestion) {
	status := model.StatusSatisfactory
	var suggestions []model.ActionSuggestion
	fired := make(map[model.ActionKind]bool)

	for _, r := range rules {
		for _, s := range r.apply(e, resp) {
			if fired[s.Kind] {
				continue
			}
			fired[s.Kind] = true
			suggestions = append(suggestions, s)
			status = model.Worst(status, r.status)
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, model.ActionSuggestion{
			Kind:      model.ActionNoActionNeeded,
			Priority:  model.PriorityLow,
			Rationale: "response contains only informative statements",
		})
	}

	return status, suggestions
}

// Rule table, in evaluation order. Denial outranks evasive, which
// outranks procedural; a purely informative response needs no action.
var rules = []rule{
	{
		name:   "denial",
		status: model.StatusUnsatisfactory,
		apply: func(e *Engine, r *model.StructuredResponse) []model.ActionSuggestion {
			if len(r.Denial) == 0 {
				return nil
			}
			deadline := e.now().AddDate(0, 0, e.cfg.AppealWindowDays)
			rationale := fmt.Sprintf(
				"information denied without citing a specific exemption clause; first appeal lies under Section 19(1) within %d days",
				e.cfg.AppealWindowDays)
			if ref := firstExemptionRef(r); ref != "" {
				rationale = fmt.Sprintf(
					"information denied citing exemption under Section %s; first appeal lies under Section 19(1) within %d days",
					ref, e.cfg.AppealWindowDays)
			}
			return []model.ActionSuggestion{{
				Kind:      model.ActionAppeal,
				Priority:  model.PriorityHigh,
				Deadline:  &deadline,
				Rationale: rationale,
			}}
		},
	},
	{
		name:   "evasive-without-denial",
		status: model.StatusPartial,
		apply: func(e *Engine, r *model.StructuredResponse) []model.ActionSuggestion {
			if len(r.Evasive) == 0 || len(r.Denial) > 0 {
				return nil
			}
			return []model.ActionSuggestion{{
				Kind:      model.ActionClarification,
				Priority:  model.PriorityHigh,
				Rationale: "response contains evasive or non-committal statements; request clarification under Section 7(8)",
			}}
		},
	},
	{
		name:   "procedural-fee-or-transfer",
		status: model.StatusPartial,
		apply: func(e *Engine, r *model.StructuredResponse) []model.ActionSuggestion {
			if len(r.Procedural) == 0 || len(r.Denial) > 0 || len(r.Evasive) > 0 {
				return nil
			}

			text := proceduralText(r)
			var out []model.ActionSuggestion
			if strings.Contains(text, "fee") || strings.Contains(text, "deposit") || strings.Contains(text, "payment") {
				out = append(out, model.ActionSuggestion{
					Kind:      model.ActionPayFee,
					Priority:  model.PriorityMedium,
					Rationale: "additional fee demanded under Section 7; pay within the stated window and keep the receipt",
				})
			}
			if strings.Contains(text, "transfer") || strings.Contains(text, "forward") {
				out = append(out, model.ActionSuggestion{
					Kind:      model.ActionWait,
					Priority:  model.PriorityLow,
					Rationale: "application transferred under Section 6(3); await a response from the receiving officer",
				})
			}
			return out
		},
	},
	{
		name:   "informative-only",
		status: model.StatusSatisfactory,
		apply: func(e *Engine, r *model.StructuredResponse) []model.ActionSuggestion {
			if len(r.Denial) > 0 || len(r.Evasive) > 0 || len(r.Procedural) > 0 {
				return nil
			}
			if len(r.Informative) == 0 {
				return nil
			}
			return []model.ActionSuggestion{{
				Kind:      model.ActionNoActionNeeded,
				Priority:  model.PriorityLow,
				Rationale: "response adequately addresses the request",
			}}
		},
	},
}

// firstExemptionRef returns the first exemption-section reference cited
// by a denial sentence, or "" when none is cited.
func firstExemptionRef(r *model.StructuredResponse) string {
	for _, s := range r.Denial {
		for _, ref := range s.SectionReferences {
			if ref == "8" || strings.HasPrefix(ref, "8(") || ref == "9" || strings.HasPrefix(ref, "9(") {
				return ref
			}
		}
	}
	return ""
}

func proceduralText(r *model.StructuredResponse) string {
	var b strings.Builder
	for _, s := range r.Procedural {
		b.WriteString(strings.ToLower(s.Text))
		b.WriteString(" ")
	}
	return b.String()
}
