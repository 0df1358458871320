package compliance

import "math"

// Rating labels used for consistent dashboard and report coloring.
const (
	RatingOnTrack  = "on track"
	RatingAtRisk   = "at risk"
	RatingCritical = "critical"
)

// ComputeScore aggregates one client's controls, policies, and evidence into
// a single score snapshot. Three sub-ratios are computed independently —
// implemented/total, approved/total, verified/total — each defaulting to 0
// on an empty denominator, and Overall combines them with equal weight:
//
//	overall = round((implemented + approved + verified) / 3 * 100)
//
// The result depends on nothing but the inputs, so two calls over the same
// snapshot always agree. Audited reports rely on that.
func ComputeScore(controls []ClientControl, policies []ClientPolicy, evidence []Evidence) ComplianceScoreSnapshot {
	snap := ComplianceScoreSnapshot{
		TotalControls: len(controls),
		TotalPolicies: len(policies),
		TotalEvidence: len(evidence),
	}
	for _, cc := range controls {
		if cc.Status == ControlImplemented {
			snap.ControlsImplemented++
		}
	}
	for _, p := range policies {
		if p.Status == PolicyApproved {
			snap.PoliciesApproved++
		}
	}
	for _, e := range evidence {
		if e.Status == EvidenceVerified {
			snap.EvidenceVerified++
		}
	}

	sum := ratio(snap.ControlsImplemented, snap.TotalControls) +
		ratio(snap.PoliciesApproved, snap.TotalPolicies) +
		ratio(snap.EvidenceVerified, snap.TotalEvidence)
	snap.Overall = int(math.Round(sum / 3 * 100))
	return snap
}

// RatingFor maps an overall score to its presentation band.
func RatingFor(overall int) string {
	switch {
	case overall >= 80:
		return RatingOnTrack
	case overall >= 50:
		return RatingAtRisk
	default:
		return RatingCritical
	}
}

// BreakdownControls counts client controls per status. The per-status
// counts always sum to Total; unrecognized statuses are counted as not
// implemented so the invariant holds even over dirty data.
func BreakdownControls(controls []ClientControl) ControlStatusBreakdown {
	b := ControlStatusBreakdown{Total: len(controls)}
	for _, cc := range controls {
		switch cc.Status {
		case ControlImplemented:
			b.Implemented++
		case ControlInProgress:
			b.InProgress++
		case ControlNotApplicable:
			b.NotApplicable++
		default:
			b.NotImplemented++
		}
	}
	return b
}

// BreakdownPolicies counts client policies per status. Unrecognized
// statuses count as draft.
func BreakdownPolicies(policies []ClientPolicy) PolicyStatusBreakdown {
	b := PolicyStatusBreakdown{Total: len(policies)}
	for _, p := range policies {
		switch p.Status {
		case PolicyReview:
			b.Review++
		case PolicyApproved:
			b.Approved++
		case PolicyArchived:
			b.Archived++
		default:
			b.Draft++
		}
	}
	return b
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
