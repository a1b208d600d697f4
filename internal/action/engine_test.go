package action

import (
	"strings"
	"testing"
	"time"

	"github.com/rtiscope/rtiscope/internal/model"
)

var testNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(windowDays int) *Engine {
	return NewEngine(model.ActionConfig{AppealWindowDays: windowDays}, func() time.Time { return testNow })
}

func sentence(category model.Category, text string, refs ...string) model.ClassifiedSentence {
	return model.ClassifiedSentence{Text: text, Category: category, SectionReferences: refs}
}

func TestEvaluate_DenialTriggersAppeal(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Denial: []model.ClassifiedSentence{
			sentence(model.CategoryDenial, "Access is denied under Section 8(1)(j).", "8(1)(j)"),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusUnsatisfactory {
		t.Errorf("Expected unsatisfactory, got %s", status)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}

	s := suggestions[0]
	if s.Kind != model.ActionAppeal {
		t.Errorf("Expected appeal, got %s", s.Kind)
	}
	if s.Priority != model.PriorityHigh {
		t.Errorf("Expected high priority, got %s", s.Priority)
	}
	if s.Deadline == nil {
		t.Fatal("Expected a statutory deadline")
	}
	if want := testNow.AddDate(0, 0, 30); !s.Deadline.Equal(want) {
		t.Errorf("Expected deadline %v, got %v", want, *s.Deadline)
	}
	if !strings.Contains(s.Rationale, "8(1)(j)") {
		t.Errorf("Rationale should cite the exemption clause: %q", s.Rationale)
	}
	if !strings.Contains(s.Rationale, "19(1)") {
		t.Errorf("Rationale should name the appeal provision: %q", s.Rationale)
	}
}

func TestEvaluate_UncitedDenialStillAppeals(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Denial: []model.ClassifiedSentence{
			sentence(model.CategoryDenial, "The information cannot be provided."),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusUnsatisfactory {
		t.Errorf("Expected unsatisfactory, got %s", status)
	}
	if len(suggestions) != 1 || suggestions[0].Kind != model.ActionAppeal {
		t.Fatalf("Expected a single appeal suggestion, got %v", suggestions)
	}
	if !strings.Contains(suggestions[0].Rationale, "without citing") {
		t.Errorf("Rationale should note the missing exemption clause: %q", suggestions[0].Rationale)
	}
}

func TestEvaluate_EvasiveTriggersClarification(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Evasive: []model.ClassifiedSentence{
			sentence(model.CategoryEvasive, "No such information is maintained."),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusPartial {
		t.Errorf("Expected partial, got %s", status)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Kind != model.ActionClarification {
		t.Errorf("Expected clarification, got %s", suggestions[0].Kind)
	}
	if suggestions[0].Deadline != nil {
		t.Error("Clarification carries no statutory deadline")
	}
}

func TestEvaluate_DenialOutranksEvasive(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Denial: []model.ClassifiedSentence{
			sentence(model.CategoryDenial, "Denied under Section 8.", "8"),
		},
		Evasive: []model.ClassifiedSentence{
			sentence(model.CategoryEvasive, "Part of the query is vague."),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusUnsatisfactory {
		t.Errorf("Expected unsatisfactory, got %s", status)
	}
	for _, s := range suggestions {
		if s.Kind == model.ActionClarification {
			t.Error("Clarification must not fire when a denial is present")
		}
	}
}

func TestEvaluate_FeeDemand(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Procedural: []model.ClassifiedSentence{
			sentence(model.CategoryProcedural, "Please deposit an additional fee of Rs. 120 under Section 7(3).", "7(3)"),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusPartial {
		t.Errorf("Expected partial, got %s", status)
	}
	if len(suggestions) != 1 || suggestions[0].Kind != model.ActionPayFee {
		t.Fatalf("Expected a single pay-fee suggestion, got %v", suggestions)
	}
	if suggestions[0].Priority != model.PriorityMedium {
		t.Errorf("Expected medium priority, got %s", suggestions[0].Priority)
	}
}

func TestEvaluate_TransferSuggestsWait(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Procedural: []model.ClassifiedSentence{
			sentence(model.CategoryProcedural, "Your application has been transferred to the Ministry of Finance.", "6(3)"),
		},
	}

	_, suggestions := e.Evaluate(resp)

	if len(suggestions) != 1 || suggestions[0].Kind != model.ActionWait {
		t.Fatalf("Expected a single wait suggestion, got %v", suggestions)
	}
}

func TestEvaluate_FeeAndTransferBothFire(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Procedural: []model.ClassifiedSentence{
			sentence(model.CategoryProcedural, "Please deposit the additional fee of Rs. 50."),
			sentence(model.CategoryProcedural, "The remainder has been transferred to the state department."),
		},
	}

	_, suggestions := e.Evaluate(resp)

	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Kind != model.ActionPayFee || suggestions[1].Kind != model.ActionWait {
		t.Errorf("Expected pay_fee then wait, got %s then %s", suggestions[0].Kind, suggestions[1].Kind)
	}
}

func TestEvaluate_InformativeOnly(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Informative: []model.ClassifiedSentence{
			sentence(model.CategoryInformative, "The requested records are enclosed."),
		},
	}

	status, suggestions := e.Evaluate(resp)

	if status != model.StatusSatisfactory {
		t.Errorf("Expected satisfactory, got %s", status)
	}
	if len(suggestions) != 1 || suggestions[0].Kind != model.ActionNoActionNeeded {
		t.Fatalf("Expected a single no-action suggestion, got %v", suggestions)
	}
}

func TestEvaluate_EmptyResponse(t *testing.T) {
	e := newTestEngine(30)

	status, suggestions := e.Evaluate(&model.StructuredResponse{})

	if status != model.StatusSatisfactory {
		t.Errorf("Expected satisfactory for empty response, got %s", status)
	}
	if len(suggestions) != 1 || suggestions[0].Kind != model.ActionNoActionNeeded {
		t.Fatalf("Expected the default no-action suggestion, got %v", suggestions)
	}
}

func TestEvaluate_CustomAppealWindow(t *testing.T) {
	e := newTestEngine(45)

	resp := &model.StructuredResponse{
		Denial: []model.ClassifiedSentence{
			sentence(model.CategoryDenial, "Denied.", "8"),
		},
	}

	_, suggestions := e.Evaluate(resp)

	if len(suggestions) != 1 || suggestions[0].Deadline == nil {
		t.Fatal("Expected an appeal suggestion with deadline")
	}
	if want := testNow.AddDate(0, 0, 45); !suggestions[0].Deadline.Equal(want) {
		t.Errorf("Expected deadline %v, got %v", want, *suggestions[0].Deadline)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := newTestEngine(30)

	resp := &model.StructuredResponse{
		Denial: []model.ClassifiedSentence{
			sentence(model.CategoryDenial, "Denied under Section 8(1)(a).", "8(1)(a)"),
		},
		Procedural: []model.ClassifiedSentence{
			sentence(model.CategoryProcedural, "A fee of Rs. 10 is required."),
		},
	}

	firstStatus, firstSuggestions := e.Evaluate(resp)
	for i := 0; i < 5; i++ {
		status, suggestions := e.Evaluate(resp)
		if status != firstStatus || len(suggestions) != len(firstSuggestions) {
			t.Fatalf("Evaluation not deterministic on run %d", i)
		}
		for j := range suggestions {
			if suggestions[j].Kind != firstSuggestions[j].Kind {
				t.Fatalf("Suggestion order changed on run %d", i)
			}
		}
	}
}
