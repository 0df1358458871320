package compliance

import (
	"math"
	"sort"
)

// ComputeCoverage derives the control-to-policy coverage picture from one
// client's snapshot. A control counts as mapped when at least one link
// references it, regardless of the linked policy's status: a draft policy
// still expresses intent to cover the control.
//
// The result is a pure function of its inputs. PolicyCoverage is sorted by
// control count descending with ties broken by policy name ascending, so
// paginated report output is stable across regenerations.
// UnmappedControlsList preserves the input order of controls; truncation
// for display is the caller's concern.
func ComputeCoverage(controls []ClientControl, links []PolicyControlLink, policies []ClientPolicy) CoverageSnapshot {
	linkedControls := make(map[string]bool, len(links))
	perPolicy := make(map[string]map[string]bool)
	for _, l := range links {
		linkedControls[l.ControlID] = true
		if perPolicy[l.PolicyID] == nil {
			perPolicy[l.PolicyID] = make(map[string]bool)
		}
		perPolicy[l.PolicyID][l.ControlID] = true
	}

	snap := CoverageSnapshot{TotalControls: len(controls)}
	for _, cc := range controls {
		if linkedControls[cc.ControlID] {
			snap.MappedControls++
		} else {
			snap.UnmappedControlsList = append(snap.UnmappedControlsList, UnmappedControl{
				ControlID: cc.ControlID,
				Name:      cc.Control.Name,
			})
		}
	}
	snap.UnmappedControls = snap.TotalControls - snap.MappedControls
	snap.CoveragePercentage = Percentage(snap.MappedControls, snap.TotalControls)

	for _, p := range policies {
		controlSet := perPolicy[p.ID]
		if len(controlSet) == 0 {
			continue
		}
		snap.PolicyCoverage = append(snap.PolicyCoverage, PolicyCoverageEntry{
			PolicyName:   p.Name,
			ControlCount: len(controlSet),
		})
	}
	sort.Slice(snap.PolicyCoverage, func(i, j int) bool {
		a, b := snap.PolicyCoverage[i], snap.PolicyCoverage[j]
		if a.ControlCount != b.ControlCount {
			return a.ControlCount > b.ControlCount
		}
		return a.PolicyName < b.PolicyName
	})

	return snap
}

// Percentage returns round(num/denom*100) as an integer in [0, 100], with a
// zero denominator yielding 0 rather than dividing by zero.
func Percentage(num, denom int) int {
	if denom == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(denom) * 100))
}
