// Package llm holds the two summary backends: the remote generative
// backend behind the Backend interface, and the local deterministic
// extractive fallback. The quota/transient/fatal error taxonomy that
// drives the orchestrator's fallback transitions lives here too.
package llm

import (
	"context"
	"errors"

	"github.com/rtiscope/rtiscope/internal/model"
)

// Backend is the primary generative backend interface.
type Backend interface {
	// Name returns the backend name
	Name() string

	// Generate produces text for the given prompt. Failures are
	// classified by Kind: quota errors and transient errors trigger
	// the orchestrator's fallback transition.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fallback is the local deterministic backend interface. It performs
// no external calls and is bit-for-bit repeatable.
type Fallback interface {
	Summarize(fullText string, anchors []model.FactAnchor, variant model.Variant) (string, error)
}

// Sentinel error kinds for backend failures.
var (
	// ErrQuotaExceeded signals the remote backend rejected the call on
	// quota or rate-limit grounds.
	ErrQuotaExceeded = errors.New("backend quota exceeded")

	// ErrTransient signals a temporary backend failure (5xx, timeout).
	// One retry is permitted before the fallback transition.
	ErrTransient = errors.New("transient backend error")

	// ErrFatal signals a failure that fallback cannot recover, or that
	// occurred with fallback disallowed.
	ErrFatal = errors.New("fatal backend error")
)

// ErrorKind labels for failure-log records.
const (
	KindQuotaExceeded = "quota_exceeded"
	KindTransient     = "transient"
	KindTimeout       = "timeout"
	KindFatal         = "fatal"
)

// Kind maps an error to its taxonomy label. Context deadline expiry is
// reported as a timeout, which the orchestrator treats like any other
// transient failure.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindFatal
	}
}

// Recoverable reports whether an error permits the fallback transition.
func Recoverable(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrTransient) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Retryable reports whether one more primary attempt is permitted
// before falling back. Quota failures are never retried.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}
