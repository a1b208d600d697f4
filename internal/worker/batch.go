package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rtiscope/rtiscope/internal/model"
)

// Analyzer defines the interface for analyzing one document file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob represents one document analysis job.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis for one document.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult represents the result of an analysis job. A failed
// document carries its error here; it never aborts the batch.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis result.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple documents concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes multiple document files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		out[i] = result.(*AnalyzeResult)
	}

	return out
}

// ProcessListFile reads document paths from a manifest file (one per
// line, "#" comments allowed) and analyzes them concurrently.
func (b *BatchProcessor) ProcessListFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file, one per line,
// skipping blanks, comments and duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
