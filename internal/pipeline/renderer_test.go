package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rtiscope/rtiscope/internal/model"
)

func sampleReport() *model.Report {
	deadline := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	return &model.Report{
		Source:     "letter.txt",
		AnalyzedAt: time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC),
		Response: &model.StructuredResponse{
			Denial: []model.ClassifiedSentence{
				{Text: "Denied under Section 8(1)(j).", Category: model.CategoryDenial, SectionReferences: []string{"8(1)(j)"}},
			},
			Informative: []model.ClassifiedSentence{
				{Text: "The refund was processed.", Category: model.CategoryInformative},
			},
			SectionIndex: map[string][]int{"8(1)(j)": {0}},
		},
		Anchors: []model.FactAnchor{
			{SentenceText: "The refund was processed.", Score: 4.5},
		},
		Summaries: model.SummaryBundle{Entries: []model.SummaryEntry{
			{Variant: model.VariantUltraShort, Text: "Refund processed; notings denied.", Provenance: model.ProvenancePrimary},
			{Variant: model.VariantCitizenFriendly, Text: "Your refund went through.", Provenance: model.ProvenanceFallback},
			{Variant: model.VariantTechnical, Error: "fatal: backend unavailable"},
		}},
		Status: model.StatusUnsatisfactory,
		Suggestions: []model.ActionSuggestion{
			{Kind: model.ActionAppeal, Priority: model.PriorityHigh, Deadline: &deadline, Rationale: "exemption cited"},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := NewRenderer(false).RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var got model.Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Report JSON does not round-trip: %v", err)
	}
	if got.Status != model.StatusUnsatisfactory {
		t.Errorf("Status lost in JSON: %s", got.Status)
	}
	if len(got.Summaries.Entries) != 3 {
		t.Errorf("Expected 3 summary entries, got %d", len(got.Summaries.Entries))
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestRenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(true).RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	md := string(data)

	for _, want := range []string{
		"# RTI Response Analysis",
		"**UNSATISFACTORY**",
		"| Denial | 1 |",
		"Section 8(1)(j)",
		"(4.5) The refund was processed.",
		"_Provenance: primary_",
		"_Generation failed: fatal: backend unavailable_",
		"**appeal** (high)",
		" - deadline 2024-11-01",
		"Generated by rtiscope",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}

	// Boilerplate stays ASCII; only report content may carry wider runes.
	for i, r := range md {
		if r > 127 {
			t.Errorf("Non-ASCII rune %q at offset %d", r, i)
			break
		}
	}
}

func TestRenderMarkdown_FooterOptional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")

	if err := NewRenderer(false).RenderMarkdown(sampleReport(), path); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "Generated by rtiscope") {
		t.Error("Footer rendered despite being disabled")
	}
}
