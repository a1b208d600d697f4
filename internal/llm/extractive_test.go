package llm

import (
	"strings"
	"testing"

	"github.com/rtiscope/rtiscope/internal/model"
)

const sampleLetter = "With reference to your application, the following is stated. " +
	"Your refund of Rs. 45,678/- was processed on 25th October, 2024. " +
	"The amount has been credited to your registered bank account. " +
	"Details of internal file notings are denied under Section 8(1)(j). " +
	"You may file a first appeal within 30 days. " +
	"Thanking you."

func TestExtractive_Deterministic(t *testing.T) {
	e := NewExtractive()

	for _, v := range model.Variants {
		first, err := e.Summarize(sampleLetter, nil, v)
		if err != nil {
			t.Fatalf("Variant %s: %v", v, err)
		}
		for i := 0; i < 5; i++ {
			again, err := e.Summarize(sampleLetter, nil, v)
			if err != nil {
				t.Fatalf("Variant %s run %d: %v", v, i, err)
			}
			if first != again {
				t.Fatalf("Variant %s not deterministic on run %d", v, i)
			}
		}
	}
}

func TestExtractive_UltraShortPicksFactSentences(t *testing.T) {
	e := NewExtractive()

	summary, err := e.Summarize(sampleLetter, nil, model.VariantUltraShort)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if !strings.Contains(summary, "45,678") {
		t.Errorf("Expected the refund sentence in the summary: %q", summary)
	}
	if strings.Contains(summary, "Thanking you") {
		t.Errorf("Boilerplate should rank below fact sentences: %q", summary)
	}
}

func TestExtractive_OutputOnlyFromInput(t *testing.T) {
	e := NewExtractive()

	summary, err := e.Summarize(sampleLetter, nil, model.VariantUltraShort)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	// Extractive output is a subset of input sentences.
	for _, s := range strings.Split(summary, ". ") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "."))
		if s == "" {
			continue
		}
		if !strings.Contains(sampleLetter, s) {
			t.Errorf("Summary sentence not found in input: %q", s)
		}
	}
}

func TestExtractive_AnchorsBoostSelection(t *testing.T) {
	e := NewExtractive()

	text := "The committee met four times during the year as scheduled. " +
		"Minutes were recorded for each meeting in the register. " +
		"A compliance report was prepared afterwards for review purposes."

	anchors := []model.FactAnchor{
		{SentenceText: "A compliance report was prepared afterwards for review purposes."},
	}

	summary, err := e.Summarize(text, anchors, model.VariantUltraShort)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(summary, "compliance report") {
		t.Errorf("Anchor sentence should be boosted into the summary: %q", summary)
	}
}

func TestExtractive_TechnicalSections(t *testing.T) {
	e := NewExtractive()

	summary, err := e.Summarize(sampleLetter, nil, model.VariantTechnical)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if !strings.Contains(summary, "INFORMATION DENIED:") {
		t.Errorf("Expected a denial section: %q", summary)
	}
	if !strings.Contains(summary, "PROCEDURAL NOTES:") {
		t.Errorf("Expected a procedural section: %q", summary)
	}
}

func TestExtractive_CitizenSimplifiesPhrasing(t *testing.T) {
	e := NewExtractive()

	text := "The certificate is enclosed herewith for your reference and record. " +
		"The amount was sanctioned vide order number 42 of the department."

	summary, err := e.Summarize(text, nil, model.VariantCitizenFriendly)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if strings.Contains(summary, "herewith") || strings.Contains(summary, "vide") {
		t.Errorf("Bureaucratic phrasing should be simplified: %q", summary)
	}
}

func TestExtractive_EmptyInput(t *testing.T) {
	e := NewExtractive()

	summary, err := e.Summarize("", nil, model.VariantUltraShort)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "" {
		t.Errorf("Expected empty summary for empty input, got %q", summary)
	}
}
