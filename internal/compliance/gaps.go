package compliance

import "fmt"

// RiskSummary carries counts from the external risk subsystem, when one is
// present. The zero value means "no risk data", which is valid input.
type RiskSummary struct {
	TotalRisks           int `json:"total_risks"`
	LinkedControls       int `json:"linked_controls"`
	HighSeverityUnlinked int `json:"high_severity_unlinked"`
	CriticalUnmitigated  int `json:"critical_unmitigated"`
}

// GapInput bundles the analyzer outputs the gap reporter classifies.
type GapInput struct {
	Coverage CoverageSnapshot
	Score    ComplianceScoreSnapshot
	Controls ControlStatusBreakdown
	Policies PolicyStatusBreakdown
	Risks    RiskSummary
}

// ClassifyGaps turns analyzer outputs into an ordered list of gap alerts.
// Rules are evaluated in a fixed priority order and every rule that fires
// appends, so identical inputs yield identical lists. An empty result means
// "no gaps detected", which is a meaningful outcome and distinct from any
// failure mode: classification itself cannot fail.
func ClassifyGaps(in GapInput) []GapAlert {
	var alerts []GapAlert

	if in.Coverage.MappedControls == 0 && in.Risks.LinkedControls == 0 {
		alerts = append(alerts, GapAlert{
			Severity:          SeverityInfo,
			Message:           "No controls are linked to policies or risks yet",
			RecommendedAction: "Link controls to the policies and risks that address them to begin tracking coverage",
			ActionKind:        ActionLinkPolicy,
		})
	}

	if in.Risks.HighSeverityUnlinked > 0 {
		alerts = append(alerts, GapAlert{
			Severity:          SeverityCritical,
			Message:           fmt.Sprintf("%d high-severity risk(s) have no linked controls", in.Risks.HighSeverityUnlinked),
			RecommendedAction: "Assign mitigating controls to every high-severity risk",
			ActionKind:        ActionMitigateRisk,
		})
	}

	if in.Controls.NotImplemented > 0 {
		alerts = append(alerts, GapAlert{
			Severity:          SeverityWarning,
			Message:           fmt.Sprintf("%d of %d controls not yet implemented", in.Controls.NotImplemented, in.Controls.Total),
			RecommendedAction: "Prioritize implementation of outstanding controls, starting with those tied to approved policies",
			ActionKind:        ActionImplementControl,
		})
	}

	if in.Risks.CriticalUnmitigated > 0 {
		alerts = append(alerts, GapAlert{
			Severity:          SeverityCritical,
			Message:           fmt.Sprintf("%d critical control(s) have no mitigating control in place", in.Risks.CriticalUnmitigated),
			RecommendedAction: "Implement or map compensating controls for each unmitigated critical item",
			ActionKind:        ActionMitigateRisk,
		})
	}

	return alerts
}

// RegulationGap is the per-regulation entry of a batch gap analysis.
type RegulationGap struct {
	RegulationID   string `json:"regulation_id"`
	RegulationName string `json:"regulation_name"`
	Readiness      int    `json:"readiness"`
	Rating         string `json:"rating"`
	Assessed       bool   `json:"assessed"`
}

// EstimateRegulationReadiness produces the deterministic per-regulation
// readiness figure used in batch gap analysis. When the regulation has a
// questionnaire and the client answered at least one question, the figure
// is the readiness assessment score; otherwise it falls back to the overall
// compliance score. Assessed reports which path was taken.
func EstimateRegulationReadiness(reg Regulation, answers []ReadinessResponse, overall int) RegulationGap {
	gap := RegulationGap{
		RegulationID:   reg.ID,
		RegulationName: reg.Name,
		Readiness:      overall,
	}
	if len(reg.Questions) > 0 && len(answers) > 0 {
		if result, err := AssessReadiness(reg, answers); err == nil {
			gap.Readiness = result.Score
			gap.Assessed = true
		}
	}
	gap.Rating = RatingFor(gap.Readiness)
	return gap
}
