package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtiscope/rtiscope/internal/pipeline"
	"github.com/rtiscope/rtiscope/internal/worker"
)

var (
	batchWorkers int
	batchOutDir  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Analyze multiple letters listed in a manifest file",
	Long: `Batch reads document paths from a manifest file (one per line, "#"
comments allowed) and analyzes them concurrently. A failure in one
document never aborts the rest of the batch.

Example:
  rtiscope batch letters.txt --workers 4 --out-dir reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 3, "concurrent analyses")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "reports", "directory for per-document JSON reports")

	// Shared analysis/LLM flags mirror analyze
	batchCmd.Flags().IntVar(&maxAnchors, "max-anchors", 5, "maximum number of fact anchors (>= 1)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "primary LLM provider (openai; empty = local extractive only)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "primary model identifier")
	batchCmd.Flags().StringVar(&fallbackMode, "fallback-mode", "auto", "fallback mode (auto, local_only, primary_only)")
	batchCmd.Flags().BoolVar(&noFailLog, "no-faillog", false, "disable the backend failure log")
	batchCmd.Flags().StringVar(&failLogPath, "faillog", "logs/backend_failures.jsonl", "failure log path")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Batch.Workers = batchWorkers

	analyzer, err := pipeline.NewAnalyzer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = analyzer.Close() }()

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(analyzer, cfg.Batch.Workers)
	results, err := processor.ProcessListFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	failed := 0
	renderer := pipeline.NewRenderer(!noFooter)
	for i, res := range results {
		if res.Error != nil && res.Report == nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", res.Path, res.Error)
			continue
		}

		jsonPath := fmt.Sprintf("%s/report_%03d.json", batchOutDir, i+1)
		if err := renderer.RenderJSON(res.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", jsonPath, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s -> %s (status %s)\n", res.Path, jsonPath, res.Report.Status)
		}
	}

	fmt.Printf("Analyzed %d documents, %d failed\n", len(results), failed)
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("every document in the batch failed")
	}
	return nil
}
