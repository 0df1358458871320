package compliance

import (
	"errors"
	"testing"
)

func questionnaireRegulation() Regulation {
	return Regulation{
		ID:   "gdpr",
		Name: "GDPR",
		Questions: []WizardQuestion{
			{ID: "q1", Text: "Is a DPO appointed?", Type: QuestionBoolean},
			{ID: "q2", Text: "Is a processing register maintained?", Type: QuestionBoolean},
			{ID: "q3", Text: "Are DPIAs performed?", Type: QuestionBoolean, FailureGuidance: "Establish a DPIA procedure for high-risk processing."},
			{ID: "q4", Text: "Are breach notifications tested?", Type: QuestionBoolean, FailureGuidance: "Run a breach notification drill."},
		},
	}
}

func TestAssessReadinessScenario(t *testing.T) {
	// Answers yes, yes, no, <missing> → 50% with the missing answer labeled
	// distinctly from the explicit "no".
	reg := questionnaireRegulation()
	answers := []ReadinessResponse{
		{QuestionID: "q1", Response: "yes"},
		{QuestionID: "q2", Response: "yes"},
		{QuestionID: "q3", Response: "no"},
	}

	result, err := AssessReadiness(reg, answers)
	if err != nil {
		t.Fatalf("AssessReadiness error: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("Score = %d, want 50", result.Score)
	}
	if len(result.PerQuestion) != 4 {
		t.Fatalf("PerQuestion count = %d, want 4", len(result.PerQuestion))
	}

	// Output follows authored question order.
	for i, wantID := range []string{"q1", "q2", "q3", "q4"} {
		if result.PerQuestion[i].QuestionID != wantID {
			t.Errorf("PerQuestion[%d] = %s, want %s", i, result.PerQuestion[i].QuestionID, wantID)
		}
	}

	q3 := result.PerQuestion[2]
	if q3.Compliant || q3.Answer != "no" {
		t.Errorf("q3 verdict = %+v, want non-compliant explicit no", q3)
	}
	if q3.Guidance == "" {
		t.Errorf("q3 should carry its failure guidance")
	}

	q4 := result.PerQuestion[3]
	if q4.Compliant || q4.Answer != NotAnsweredLabel {
		t.Errorf("q4 verdict = %+v, want non-compliant %q", q4, NotAnsweredLabel)
	}
	if q4.Answer == q3.Answer {
		t.Errorf("missing answer must be distinguishable from an explicit no")
	}
}

func TestAssessReadinessNoQuestions(t *testing.T) {
	tests := []struct {
		name string
		reg  Regulation
	}{
		{"nil questions", Regulation{ID: "nis2", Name: "NIS2"}},
		{"empty questions", Regulation{ID: "nis2", Name: "NIS2", Questions: []WizardQuestion{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssessReadiness(tt.reg, nil)
			var nqErr *NoQuestionsError
			if !errors.As(err, &nqErr) {
				t.Fatalf("error = %v, want *NoQuestionsError", err)
			}
			if nqErr.RegulationID != "nis2" {
				t.Errorf("RegulationID = %s, want nis2", nqErr.RegulationID)
			}
		})
	}
}

func TestAssessReadinessOnlyLiteralYesCounts(t *testing.T) {
	reg := Regulation{
		ID:        "dora",
		Questions: []WizardQuestion{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}, {ID: "q4"}},
	}
	answers := []ReadinessResponse{
		{QuestionID: "q1", Response: "yes"},
		{QuestionID: "q2", Response: "Yes"},
		{QuestionID: "q3", Response: "partially"},
		{QuestionID: "q4", Response: "YES "},
	}
	result, err := AssessReadiness(reg, answers)
	if err != nil {
		t.Fatalf("AssessReadiness error: %v", err)
	}
	if result.Score != 25 {
		t.Errorf("Score = %d, want 25 (only the literal \"yes\" is compliant)", result.Score)
	}
}

func TestAssessReadinessNoGuidancePlaceholder(t *testing.T) {
	reg := Regulation{ID: "reg", Questions: []WizardQuestion{{ID: "q1"}}}
	result, err := AssessReadiness(reg, []ReadinessResponse{{QuestionID: "q1", Response: "no"}})
	if err != nil {
		t.Fatalf("AssessReadiness error: %v", err)
	}
	if result.PerQuestion[0].Guidance != "" {
		t.Errorf("Guidance = %q, want empty when the question defines none", result.PerQuestion[0].Guidance)
	}
}
