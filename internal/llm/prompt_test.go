package llm

import (
	"strings"
	"testing"

	"github.com/rtiscope/rtiscope/internal/model"
)

func TestBuildPrompt_EmbedsAnchorsAndFullText(t *testing.T) {
	fullText := "Your refund of Rs. 45,678/- was processed on 25th October, 2024. The file is closed."
	anchors := []model.FactAnchor{
		{SentenceText: "Your refund of Rs. 45,678/- was processed on 25th October, 2024."},
	}

	for _, v := range model.Variants {
		prompt := BuildPrompt(v, fullText, anchors, 0)

		if !strings.Contains(prompt, fullText) {
			t.Errorf("Variant %s: prompt missing full text", v)
		}
		if !strings.Contains(prompt, "1. "+anchors[0].SentenceText) {
			t.Errorf("Variant %s: prompt missing numbered anchor", v)
		}
	}
}

func TestBuildPrompt_VariantShapesDiffer(t *testing.T) {
	fullText := "The records are enclosed."

	ultra := BuildPrompt(model.VariantUltraShort, fullText, nil, 0)
	citizen := BuildPrompt(model.VariantCitizenFriendly, fullText, nil, 0)
	technical := BuildPrompt(model.VariantTechnical, fullText, nil, 0)

	if !strings.Contains(ultra, "ULTRA-SHORT SUMMARY") {
		t.Error("Ultra-short prompt missing its instruction")
	}
	if !strings.Contains(citizen, "CITIZEN-FRIENDLY SUMMARY") {
		t.Error("Citizen-friendly prompt missing its instruction")
	}
	if !strings.Contains(technical, "TECHNICAL/LEGAL SUMMARY") {
		t.Error("Technical prompt missing its instruction")
	}
}

func TestBuildPrompt_TruncatesOnlyFullText(t *testing.T) {
	long := strings.Repeat("a", 5000)
	anchors := []model.FactAnchor{{SentenceText: "An anchor that survives truncation."}}

	prompt := BuildPrompt(model.VariantUltraShort, long, anchors, 100)

	if strings.Contains(prompt, long) {
		t.Error("Full text should have been truncated")
	}
	if !strings.Contains(prompt, anchors[0].SentenceText) {
		t.Error("Anchors must never be truncated")
	}
}

func TestBuildPrompt_NoAnchors(t *testing.T) {
	prompt := BuildPrompt(model.VariantUltraShort, "Some text.", nil, 0)

	if !strings.Contains(prompt, "No specific facts extracted.") {
		t.Error("Prompt should state that no facts were extracted")
	}
}
