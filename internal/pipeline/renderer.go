package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rtiscope/rtiscope/internal/model"
)

// Renderer writes analysis reports as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// Render writes the report to the requested outputs and prints a
// console summary.
func (r *Renderer) Render(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := r.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := r.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote Markdown: %s\n", mdPath)
		}
	}

	r.RenderSummary(report)
	return nil
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# RTI Response Analysis\n\n")
	if report.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", report.Source)
	}
	fmt.Fprintf(&b, "- Analyzed: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Status: **%s**\n\n", strings.ToUpper(string(report.Status)))

	stats := report.Response.GetStats()
	b.WriteString("## Classification\n\n")
	fmt.Fprintf(&b, "| Category | Sentences |\n|---|---|\n")
	fmt.Fprintf(&b, "| Informative | %d |\n", stats.Informative)
	fmt.Fprintf(&b, "| Denial | %d |\n", stats.Denial)
	fmt.Fprintf(&b, "| Procedural | %d |\n", stats.Procedural)
	fmt.Fprintf(&b, "| Evasive | %d |\n", stats.Evasive)
	if stats.Skipped > 0 {
		fmt.Fprintf(&b, "| Skipped (malformed) | %d |\n", stats.Skipped)
	}
	b.WriteString("\n")

	if len(report.Response.SectionIndex) > 0 {
		b.WriteString("### Sections cited\n\n")
		for _, cat := range model.Categories {
			for _, s := range report.Response.ByCategory(cat) {
				for _, ref := range s.SectionReferences {
					fmt.Fprintf(&b, "- Section %s (%s)\n", ref, cat)
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Fact anchors\n\n")
	if len(report.Anchors) == 0 {
		b.WriteString("No fact anchors met the qualifying score.\n\n")
	}
	for i, a := range report.Anchors {
		fmt.Fprintf(&b, "%d. (%.1f) %s\n", i+1, a.Score, a.SentenceText)
	}
	if len(report.Anchors) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Summaries\n\n")
	for _, e := range report.Summaries.Entries {
		fmt.Fprintf(&b, "### %s\n\n", variantTitle(e.Variant))
		if e.Failed() {
			fmt.Fprintf(&b, "_Generation failed: %s_\n\n", e.Error)
			continue
		}
		fmt.Fprintf(&b, "%s\n\n_Provenance: %s_\n\n", e.Text, e.Provenance)
	}

	b.WriteString("## Suggested actions\n\n")
	for _, s := range report.Suggestions {
		fmt.Fprintf(&b, "- **%s** (%s): %s", s.Kind, s.Priority, s.Rationale)
		if s.Deadline != nil {
			fmt.Fprintf(&b, " - deadline %s", s.Deadline.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("\n---\n_Generated by rtiscope. Summaries tagged `primary` were produced by a generative model; verify against the original letter._\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints a short console summary.
func (r *Renderer) RenderSummary(report *model.Report) {
	stats := report.Response.GetStats()
	fmt.Printf("Status: %s\n", report.Status)
	fmt.Printf("Sentences: %d (informative %d, denial %d, procedural %d, evasive %d)\n",
		stats.Total, stats.Informative, stats.Denial, stats.Procedural, stats.Evasive)
	fmt.Printf("Fact anchors: %d\n", len(report.Anchors))
	for _, e := range report.Summaries.Entries {
		if e.Failed() {
			fmt.Printf("Summary %s: FAILED (%s)\n", e.Variant, e.Error)
		} else {
			fmt.Printf("Summary %s: ok (%s)\n", e.Variant, e.Provenance)
		}
	}
	for _, s := range report.Suggestions {
		fmt.Printf("Action: %s [%s]\n", s.Kind, s.Priority)
	}
}

func variantTitle(v model.Variant) string {
	switch v {
	case model.VariantUltraShort:
		return "Ultra-short"
	case model.VariantCitizenFriendly:
		return "Citizen-friendly"
	case model.VariantTechnical:
		return "Technical / legal"
	default:
		return string(v)
	}
}
