// Package summarize implements the summarization orchestrator: the
// per-variant state machine that attempts the primary generative
// backend and falls back to the local extractive backend.
//
// The orchestrator accepts only raw text and fact anchors. It is
// structurally unable to receive classification output, which keeps
// the classifier from ever gating what is summarized.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rtiscope/rtiscope/internal/cache"
	"github.com/rtiscope/rtiscope/internal/faillog"
	"github.com/rtiscope/rtiscope/internal/llm"
	"github.com/rtiscope/rtiscope/internal/model"
	"github.com/rtiscope/rtiscope/internal/worker"
)

// State tracks a variant request through the orchestration state
// machine: NotStarted -> PrimaryAttempt -> {Complete | FallbackAttempt}
// -> {Complete | Failed}.
type State string

const (
	StateNotStarted      State = "not_started"
	StatePrimaryAttempt  State = "primary_attempt"
	StateFallbackAttempt State = "fallback_attempt"
	StateComplete        State = "complete"
	StateFailed          State = "failed"
)

// ErrAllVariantsFailed is returned by SummarizeAll when every variant
// reached the failed state. Partial failure is not an error: failed
// variants carry their error in the bundle entry.
var ErrAllVariantsFailed = errors.New("all summary variants failed")

// Orchestrator coordinates summary generation per variant.
type Orchestrator struct {
	primary  llm.Backend
	fallback llm.Fallback
	sink     faillog.Sink
	store    cache.Cache
	limiter  *worker.Limiter
	cfg      model.LLMConfig
	cacheTTL time.Duration

	now func() time.Time // Injectable clock for log records
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithCache enables summary memoization.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.store = store
		o.cacheTTL = ttl
	}
}

// WithLimiter gates primary backend calls with a rate limiter.
func WithLimiter(l *worker.Limiter) Option {
	return func(o *Orchestrator) { o.limiter = l }
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator creates an orchestrator. primary may be nil: Auto
// and LocalOnly then take the local path, while PrimaryOnly fails each
// variant (that mode promises a generative summary or nothing).
// sink must not be nil; pass faillog.NopSink{} to disable logging.
func NewOrchestrator(primary llm.Backend, fallback llm.Fallback, sink faillog.Sink, cfg model.LLMConfig, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		primary:  primary,
		fallback: fallback,
		sink:     sink,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Summarize runs the state machine for a single variant. The prompt
// materialized for the primary backend embeds the anchors and the
// entire full text; the fallback sees the identical pair. The input is
// never a category-filtered subset.
func (o *Orchestrator) Summarize(ctx context.Context, fullText string, anchors []model.FactAnchor, variant model.Variant) model.SummaryEntry {
	key := o.cacheKey(variant, fullText, anchors)
	if entry, ok := o.cached(key); ok {
		return entry
	}

	mode := o.cfg.FallbackMode
	if !mode.Valid() {
		mode = model.FallbackAuto
	}
	if o.primary == nil {
		// PrimaryOnly promises a generative summary or nothing, so a
		// missing backend is a Failed transition, not a silent
		// downgrade to the local path.
		if mode == model.FallbackPrimaryOnly {
			err := fmt.Errorf("%w: no primary backend configured", llm.ErrFatal)
			o.logFailure(variant, err, false)
			return model.SummaryEntry{
				Variant: variant,
				Error:   llm.Kind(err) + ": " + err.Error(),
			}
		}
		mode = model.FallbackLocalOnly
	}

	// LocalOnly skips PrimaryAttempt entirely: the fallback is the
	// configured path, not a failure transition, so nothing is logged.
	if mode == model.FallbackLocalOnly {
		return o.finish(key, o.runFallback(fullText, anchors, variant, nil))
	}

	res := o.runPrimary(ctx, fullText, anchors, variant)
	if res.err == nil {
		return o.finish(key, res.entry)
	}

	if mode == model.FallbackAuto && llm.Recoverable(res.err) {
		// Transition into FallbackAttempt: exactly one record.
		o.logFailure(variant, res.err, true)
		return o.finish(key, o.runFallback(fullText, anchors, variant, res.err))
	}

	// PrimaryOnly mode, or a non-recoverable failure: straight to
	// Failed, one record.
	o.logFailure(variant, res.err, false)
	return model.SummaryEntry{
		Variant: variant,
		Error:   llm.Kind(res.err) + ": " + res.err.Error(),
	}
}

type attempt struct {
	entry model.SummaryEntry
	err   error
}

// runPrimary performs the PrimaryAttempt state, with one retry on
// transient errors. The per-call timeout is treated identically to a
// transient error.
func (o *Orchestrator) runPrimary(ctx context.Context, fullText string, anchors []model.FactAnchor, variant model.Variant) attempt {
	prompt := llm.BuildPrompt(variant, fullText, anchors, o.cfg.MaxChunkSize)

	call := func() (string, error) {
		callCtx := ctx
		if o.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
			defer cancel()
		}
		if o.limiter != nil {
			if err := o.limiter.Wait(callCtx, o.cfg.Model); err != nil {
				return "", err
			}
		}
		return o.primary.Generate(callCtx, prompt)
	}

	text, err := call()
	if err != nil && llm.Retryable(err) {
		text, err = call()
	}
	if err != nil {
		return attempt{err: err}
	}

	return attempt{entry: model.SummaryEntry{
		Variant:    variant,
		Text:       text,
		Provenance: model.ProvenancePrimary,
	}}
}

// runFallback performs the FallbackAttempt state. No remote call is
// permitted here; the fallback backend is pure and local. A fallback
// failure transitions to Failed with its own record.
func (o *Orchestrator) runFallback(fullText string, anchors []model.FactAnchor, variant model.Variant, primaryErr error) model.SummaryEntry {
	text, err := o.fallback.Summarize(fullText, anchors, variant)
	if err != nil {
		o.logFailure(variant, err, false)
		msg := llm.KindFatal + ": fallback failed: " + err.Error()
		if primaryErr != nil {
			msg += " (primary: " + primaryErr.Error() + ")"
		}
		return model.SummaryEntry{Variant: variant, Error: msg}
	}

	return model.SummaryEntry{
		Variant:    variant,
		Text:       text,
		Provenance: model.ProvenanceFallback,
	}
}

// SummarizeAll dispatches the three variants concurrently. Each
// variant runs its own state-machine instance; failure of one never
// affects the others. ErrAllVariantsFailed is returned only when every
// variant failed.
func (o *Orchestrator) SummarizeAll(ctx context.Context, fullText string, anchors []model.FactAnchor) (model.SummaryBundle, error) {
	entries := make([]model.SummaryEntry, len(model.Variants))

	var g errgroup.Group
	for i, v := range model.Variants {
		i, v := i, v
		g.Go(func() error {
			entries[i] = o.Summarize(ctx, fullText, anchors, v)
			return nil
		})
	}
	_ = g.Wait()

	bundle := model.SummaryBundle{Entries: entries}
	if bundle.AllFailed() {
		return bundle, ErrAllVariantsFailed
	}
	return bundle, nil
}

// logFailure emits one failure-log record. Sink errors are swallowed:
// the audit log must never break summarization.
func (o *Orchestrator) logFailure(variant model.Variant, err error, fallbackUsed bool) {
	_ = o.sink.Append(faillog.Record{
		Timestamp:    o.now().UTC(),
		Variant:      variant,
		ErrorKind:    llm.Kind(err),
		ErrorMessage: err.Error(),
		FallbackUsed: fallbackUsed,
	})
}

// cached returns a memoized entry, if caching is enabled and a
// completed entry exists for this (variant, model, input) triple.
func (o *Orchestrator) cached(key string) (model.SummaryEntry, bool) {
	if o.store == nil {
		return model.SummaryEntry{}, false
	}

	data, ok := o.store.Get(key)
	if !ok {
		return model.SummaryEntry{}, false
	}

	var entry model.SummaryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return model.SummaryEntry{}, false
	}
	return entry, true
}

// finish memoizes completed entries and returns them unchanged.
func (o *Orchestrator) finish(key string, entry model.SummaryEntry) model.SummaryEntry {
	if o.store != nil && !entry.Failed() {
		if data, err := json.Marshal(entry); err == nil {
			_ = o.store.Set(key, data, o.cacheTTL)
		}
	}
	return entry
}

func (o *Orchestrator) cacheKey(variant model.Variant, fullText string, anchors []model.FactAnchor) string {
	keyText := fullText
	for _, a := range anchors {
		keyText += "\n" + a.SentenceText
	}
	return cache.SummaryKey(string(variant), o.cfg.Model, keyText)
}
