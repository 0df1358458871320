package compliance

import (
	"reflect"
	"testing"
)

func TestClassifyGapsRuleOrder(t *testing.T) {
	in := GapInput{
		Coverage: CoverageSnapshot{TotalControls: 10},
		Controls: ControlStatusBreakdown{NotImplemented: 4, Total: 10},
		Risks:    RiskSummary{TotalRisks: 3, HighSeverityUnlinked: 2, CriticalUnmitigated: 1},
	}

	alerts := ClassifyGaps(in)
	wantSeverities := []GapSeverity{SeverityInfo, SeverityCritical, SeverityWarning, SeverityCritical}
	if len(alerts) != len(wantSeverities) {
		t.Fatalf("alert count = %d, want %d", len(alerts), len(wantSeverities))
	}
	for i, want := range wantSeverities {
		if alerts[i].Severity != want {
			t.Errorf("alerts[%d].Severity = %s, want %s", i, alerts[i].Severity, want)
		}
	}
	if alerts[2].Message != "4 of 10 controls not yet implemented" {
		t.Errorf("warning message = %q", alerts[2].Message)
	}
}

func TestClassifyGapsNoGaps(t *testing.T) {
	in := GapInput{
		Coverage: CoverageSnapshot{TotalControls: 5, MappedControls: 5},
		Controls: ControlStatusBreakdown{Implemented: 5, Total: 5},
		Risks:    RiskSummary{TotalRisks: 2, LinkedControls: 2},
	}
	if alerts := ClassifyGaps(in); len(alerts) != 0 {
		t.Errorf("alerts = %v, want none", alerts)
	}
}

func TestClassifyGapsUnlinkedOnly(t *testing.T) {
	in := GapInput{
		Coverage: CoverageSnapshot{TotalControls: 3, UnmappedControls: 3},
		Controls: ControlStatusBreakdown{NotApplicable: 3, Total: 3},
	}
	alerts := ClassifyGaps(in)
	if len(alerts) != 1 || alerts[0].Severity != SeverityInfo || alerts[0].ActionKind != ActionLinkPolicy {
		t.Errorf("alerts = %v, want a single info link-policy alert", alerts)
	}
}

func TestClassifyGapsDeterministic(t *testing.T) {
	in := GapInput{
		Coverage: CoverageSnapshot{TotalControls: 8, MappedControls: 2, UnmappedControls: 6},
		Controls: ControlStatusBreakdown{Implemented: 2, NotImplemented: 6, Total: 8},
		Risks:    RiskSummary{TotalRisks: 1, HighSeverityUnlinked: 1},
	}
	first := ClassifyGaps(in)
	second := ClassifyGaps(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification not deterministic: %v vs %v", first, second)
	}
}

func TestEstimateRegulationReadiness(t *testing.T) {
	reg := questionnaireRegulation()
	answers := []ReadinessResponse{
		{QuestionID: "q1", Response: "yes"},
		{QuestionID: "q2", Response: "yes"},
		{QuestionID: "q3", Response: "yes"},
	}

	// Answered questionnaire uses the assessment score, not the overall.
	gap := EstimateRegulationReadiness(reg, answers, 10)
	if !gap.Assessed || gap.Readiness != 75 {
		t.Errorf("gap = %+v, want assessed readiness 75", gap)
	}
	if gap.Rating != RatingAtRisk {
		t.Errorf("Rating = %q, want %q", gap.Rating, RatingAtRisk)
	}

	// No questionnaire falls back to the overall score.
	bare := Regulation{ID: "nis2", Name: "NIS2"}
	gap = EstimateRegulationReadiness(bare, nil, 62)
	if gap.Assessed || gap.Readiness != 62 {
		t.Errorf("gap = %+v, want unassessed fallback 62", gap)
	}

	// No answers falls back too, even when questions exist.
	gap = EstimateRegulationReadiness(reg, nil, 62)
	if gap.Assessed || gap.Readiness != 62 {
		t.Errorf("gap = %+v, want unassessed fallback 62", gap)
	}

	// Same inputs, same figure. The batch report relies on this.
	again := EstimateRegulationReadiness(reg, answers, 10)
	if again.Readiness != 75 {
		t.Errorf("repeat estimate = %d, want 75", again.Readiness)
	}
}
