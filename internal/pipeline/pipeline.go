// Package pipeline wires the analysis components together. The cleaned
// text fans out unchanged to the classifier and the anchor extractor;
// the orchestrator receives the full text plus anchors; classification
// output reaches only the actionability engine.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rtiscope/rtiscope/internal/action"
	"github.com/rtiscope/rtiscope/internal/anchor"
	"github.com/rtiscope/rtiscope/internal/cache"
	"github.com/rtiscope/rtiscope/internal/classify"
	"github.com/rtiscope/rtiscope/internal/faillog"
	"github.com/rtiscope/rtiscope/internal/ingest"
	"github.com/rtiscope/rtiscope/internal/llm"
	"github.com/rtiscope/rtiscope/internal/model"
	"github.com/rtiscope/rtiscope/internal/summarize"
	"github.com/rtiscope/rtiscope/internal/worker"
)

// Classifier categorizes sentences. Its output is consumed by the
// evaluator only.
type Classifier interface {
	Classify(cleanedText string) *model.StructuredResponse
}

// AnchorExtractor selects fact anchors from cleaned text.
type AnchorExtractor interface {
	Extract(cleanedText string) []model.FactAnchor
}

// Summarizer generates the summary bundle from full text and anchors.
// The signature cannot accept a StructuredResponse: classification is
// structurally unable to gate summarization input.
type Summarizer interface {
	SummarizeAll(ctx context.Context, fullText string, anchors []model.FactAnchor) (model.SummaryBundle, error)
}

// Evaluator derives status and suggestions from classification output.
type Evaluator interface {
	Evaluate(resp *model.StructuredResponse) (model.Status, []model.ActionSuggestion)
}

// Analyzer orchestrates the complete analysis of one letter.
type Analyzer struct {
	classifier Classifier
	extractor  AnchorExtractor
	summarizer Summarizer
	evaluator  Evaluator
	renderer   *Renderer
	sink       *faillog.FileSink // Retained for Close; nil when logging disabled
	cfg        *model.Config
}

// NewAnalyzer builds the full pipeline from configuration.
func NewAnalyzer(cfg *model.Config) (*Analyzer, error) {
	backend, err := llm.NewBackend(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initialize LLM backend: %w", err)
	}

	var sink faillog.Sink = faillog.NopSink{}
	var fileSink *faillog.FileSink
	if cfg.FailLog.Enabled {
		fileSink, err = faillog.NewFileSink(cfg.FailLog.Path)
		if err != nil {
			return nil, fmt.Errorf("open failure log: %w", err)
		}
		sink = fileSink
	}

	var opts []summarize.Option
	if cfg.Cache.Enabled {
		opts = append(opts, summarize.WithCache(
			cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute), cfg.Cache.TTL))
	}
	if backend != nil && cfg.LLM.RequestsPerSecond > 0 {
		opts = append(opts, summarize.WithLimiter(
			worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)))
	}

	orchestrator := summarize.NewOrchestrator(backend, llm.NewExtractive(), sink, cfg.LLM, opts...)

	return &Analyzer{
		classifier: classify.NewClassifier(),
		extractor:  anchor.NewExtractor(cfg.Anchors),
		summarizer: orchestrator,
		evaluator:  action.NewEngine(cfg.Actions, nil),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		sink:       fileSink,
		cfg:        cfg,
	}, nil
}

// NewAnalyzerWith assembles an analyzer from explicit components.
// Used by tests and by callers that need custom backends.
func NewAnalyzerWith(c Classifier, e AnchorExtractor, s Summarizer, ev Evaluator, cfg *model.Config) *Analyzer {
	return &Analyzer{
		classifier: c,
		extractor:  e,
		summarizer: s,
		evaluator:  ev,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		cfg:        cfg,
	}
}

// Analyze runs the full analysis over cleaned text. The entire text
// and the extracted anchors go to summarization regardless of how any
// sentence classified. A report is returned even when summarization
// failed for every variant; that condition is also surfaced as
// summarize.ErrAllVariantsFailed.
func (a *Analyzer) Analyze(ctx context.Context, cleanedText string) (*model.Report, error) {
	resp := a.classifier.Classify(cleanedText)
	anchors := a.extractor.Extract(cleanedText)

	bundle, sumErr := a.summarizer.SummarizeAll(ctx, cleanedText, anchors)

	status, suggestions := a.evaluator.Evaluate(resp)

	report := &model.Report{
		AnalyzedAt:  time.Now().UTC(),
		Response:    resp,
		Anchors:     anchors,
		Summaries:   bundle,
		Status:      status,
		Suggestions: suggestions,
	}

	return report, sumErr
}

// AnalyzeFile reads, cleans and analyzes a document from disk.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	text, err := ingest.ReadDocument(path)
	if err != nil {
		return nil, err
	}

	report, err := a.Analyze(ctx, text)
	if report != nil {
		report.Source = path
	}
	return report, err
}

// RenderReport renders the report to the configured outputs.
func (a *Analyzer) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	return a.renderer.Render(report, jsonPath, mdPath, verbose)
}

// Close releases the failure-log file handle, if one is open.
func (a *Analyzer) Close() error {
	if a.sink != nil {
		return a.sink.Close()
	}
	return nil
}
