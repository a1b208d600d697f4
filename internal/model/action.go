package model

import "time"

// ActionKind identifies a suggested next step for the applicant
type ActionKind string

const (
	ActionAppeal         ActionKind = "appeal"           // File a first appeal
	ActionClarification  ActionKind = "clarification"    // Ask the officer to clarify
	ActionPayFee         ActionKind = "pay_fee"          // Deposit the demanded fee
	ActionWait           ActionKind = "wait"             // Application transferred, await the new officer
	ActionNoActionNeeded ActionKind = "no_action_needed" // Response is adequate
)

// Priority orders suggestions for display
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionSuggestion is one recommended step, with the statutory context
// that triggered it.
type ActionSuggestion struct {
	Kind     ActionKind `json:"kind"`
	Priority Priority   `json:"priority"`

	// Deadline is computed from the statutory window (e.g. the 30-day
	// appeal window) relative to the analysis reference time. Nil when
	// the action has no statutory deadline.
	Deadline *time.Time `json:"deadline,omitempty"`

	// Rationale names the section or category that triggered the
	// suggestion.
	Rationale string `json:"rationale"`
}

// Status grades the overall response quality, derived from the
// StructuredResponse only.
type Status string

const (
	StatusSatisfactory   Status = "satisfactory"
	StatusPartial        Status = "partial"
	StatusUnsatisfactory Status = "unsatisfactory"
)

// severity ranks statuses so the most severe condition wins.
func (s Status) severity() int {
	switch s {
	case StatusUnsatisfactory:
		return 2
	case StatusPartial:
		return 1
	default:
		return 0
	}
}

// Worst returns the more severe of two statuses.
func Worst(a, b Status) Status {
	if b.severity() > a.severity() {
		return b
	}
	return a
}
