package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtiscope/rtiscope/internal/model"
	"github.com/rtiscope/rtiscope/internal/pipeline"
	"github.com/rtiscope/rtiscope/internal/summarize"
)

var (
	outJSON      string
	outMD        string
	llmProvider  string
	llmModel     string
	fallbackMode string
	maxAnchors   int
	callTimeout  time.Duration
	noFailLog    bool
	failLogPath  string
	noCache      bool
	noFooter     bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single RTI response letter",
	Long: `Analyze reads one disclosure letter (plain text or HTML export),
classifies its sentences, extracts fact anchors, generates the three
summary variants and suggests next steps.

Example:
  rtiscope analyze response.txt
  rtiscope analyze response.txt --json report.json --md report.md
  rtiscope analyze response.html --llm-provider openai --llm-model gpt-4o-mini
  rtiscope analyze response.txt --fallback-mode local_only`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Analysis flags
	analyzeCmd.Flags().IntVar(&maxAnchors, "max-anchors", 5, "maximum number of fact anchors (>= 1)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "primary LLM provider (openai; empty = local extractive only)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "primary model identifier")
	analyzeCmd.Flags().StringVar(&fallbackMode, "fallback-mode", "auto", "fallback mode (auto, local_only, primary_only)")
	analyzeCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "per-backend-call timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable summary memoization")

	// Failure log flags
	analyzeCmd.Flags().BoolVar(&noFailLog, "no-faillog", false, "disable the backend failure log")
	analyzeCmd.Flags().StringVar(&failLogPath, "faillog", "logs/backend_failures.jsonl", "failure log path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = analyzer.Close() }()

	ctx := context.Background()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", args[0])
	}

	report, err := analyzer.AnalyzeFile(ctx, args[0])
	if err != nil && !errors.Is(err, summarize.ErrAllVariantsFailed) {
		return fmt.Errorf("analyze failed: %w", err)
	}
	allFailed := errors.Is(err, summarize.ErrAllVariantsFailed)

	if verbose {
		stats := report.Response.GetStats()
		fmt.Fprintf(os.Stderr, "Classified %d sentences (%d skipped)\n", stats.Total, stats.Skipped)
		fmt.Fprintf(os.Stderr, "Extracted %d fact anchors\n", len(report.Anchors))
	}

	if err := analyzer.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if allFailed {
		return fmt.Errorf("analysis rendered, but all summary variants failed")
	}
	return nil
}

// buildConfig merges defaults with flag values and environment keys.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.Anchors.MaxAnchors = maxAnchors
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.Timeout = callTimeout
	cfg.LLM.FallbackMode = model.FallbackMode(fallbackMode)
	cfg.FailLog.Enabled = !noFailLog
	cfg.FailLog.Path = failLogPath
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if cfg.Anchors.MaxAnchors < 1 {
		return nil, fmt.Errorf("--max-anchors must be >= 1")
	}
	if !cfg.LLM.FallbackMode.Valid() {
		return nil, fmt.Errorf("invalid --fallback-mode %q (auto, local_only, primary_only)", fallbackMode)
	}

	if cfg.LLM.Provider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}
