// Package report assembles the full posture assessment for one client: it
// fetches the entity snapshot once, fans out the independent analyses, and
// joins them into the gap classification. All collaborators are injected,
// so the package is testable without a database.
package report

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/veracomply/posture/internal/compliance"
	"golang.org/x/sync/errgroup"
)

// SnapshotSource supplies read-only entity snapshots. *store.Store
// implements it; tests use an in-memory fake.
type SnapshotSource interface {
	Snapshot(ctx context.Context, clientID string) (compliance.Snapshot, error)
	ReadinessResponses(ctx context.Context, clientID, regulationID string) ([]compliance.ReadinessResponse, error)
}

// RegulationSource supplies static regulation reference data.
// *regdata.Catalog implements it.
type RegulationSource interface {
	Get(id string) (compliance.Regulation, error)
	All() []compliance.Regulation
}

// Assessment is the complete engine output for one client, consumed by
// report generation and dashboards.
type Assessment struct {
	ClientID       string                             `json:"client_id"`
	Score          compliance.ComplianceScoreSnapshot `json:"score"`
	Rating         string                             `json:"rating"`
	Coverage       compliance.CoverageSnapshot        `json:"coverage"`
	Controls       compliance.ControlStatusBreakdown  `json:"controls"`
	Policies       compliance.PolicyStatusBreakdown   `json:"policies"`
	Readiness      []compliance.ReadinessResult       `json:"readiness"`
	RegulationGaps []compliance.RegulationGap         `json:"regulation_gaps"`
	Frameworks     compliance.FrameworkMapping        `json:"frameworks"`
	Alerts         []compliance.GapAlert              `json:"alerts"`
	Warnings       []string                           `json:"warnings,omitempty"`
}

// Builder runs the assessment pipeline.
type Builder struct {
	source SnapshotSource
	regs   RegulationSource
}

// NewBuilder creates a Builder over injected collaborators.
func NewBuilder(source SnapshotSource, regs RegulationSource) *Builder {
	return &Builder{source: source, regs: regs}
}

// Build assembles the assessment for one client. With no regulation IDs the
// batch covers every regulation in the catalog; regulations without a
// questionnaire still appear in RegulationGaps via the deterministic
// fallback estimate. Unknown regulation IDs fail with
// *compliance.NotFoundError.
func (b *Builder) Build(ctx context.Context, clientID string, regulationIDs []string) (*Assessment, error) {
	snap, err := b.source.Snapshot(ctx, clientID)
	if err != nil {
		return nil, err
	}

	regs, err := b.selectRegulations(regulationIDs)
	if err != nil {
		return nil, err
	}

	a := &Assessment{ClientID: clientID}
	answers := make([][]compliance.ReadinessResponse, len(regs))

	// Score, coverage, and per-regulation answer fetches are mutually
	// independent; only the gap join below depends on their results.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Score = compliance.ComputeScore(snap.Controls, snap.Policies, snap.Evidence)
		a.Rating = compliance.RatingFor(a.Score.Overall)
		return nil
	})
	g.Go(func() error {
		a.Coverage = compliance.ComputeCoverage(snap.Controls, snap.Links, snap.Policies)
		a.Controls = compliance.BreakdownControls(snap.Controls)
		a.Policies = compliance.BreakdownPolicies(snap.Policies)
		return nil
	})
	for i, reg := range regs {
		i, reg := i, reg
		g.Go(func() error {
			resp, err := b.source.ReadinessResponses(gctx, clientID, reg.ID)
			if err != nil {
				return fmt.Errorf("readiness responses for %s: %w", reg.ID, err)
			}
			answers[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.Frameworks = compliance.FrameworkMapping{}
	for i, reg := range regs {
		mapping, warns := compliance.ResolveRegulationMappings(reg)
		a.Frameworks.Merge(mapping)
		a.Warnings = append(a.Warnings, warns...)

		a.RegulationGaps = append(a.RegulationGaps,
			compliance.EstimateRegulationReadiness(reg, answers[i], a.Score.Overall))

		if len(reg.Questions) == 0 {
			continue
		}
		result, err := compliance.AssessReadiness(reg, answers[i])
		if err != nil {
			return nil, err
		}
		a.Readiness = append(a.Readiness, result)
	}
	for _, w := range a.Warnings {
		log.Printf("reference data warning: %s", w)
	}

	a.Alerts = compliance.ClassifyGaps(compliance.GapInput{
		Coverage: a.Coverage,
		Score:    a.Score,
		Controls: a.Controls,
		Policies: a.Policies,
	})
	return a, nil
}

// Readiness runs the strict single-regulation assessment. A regulation
// without a questionnaire fails with *compliance.NoQuestionsError, which the
// caller surfaces to the user rather than reporting a zero score.
func (b *Builder) Readiness(ctx context.Context, clientID, regulationID string) (compliance.ReadinessResult, error) {
	reg, err := b.regs.Get(regulationID)
	if err != nil {
		return compliance.ReadinessResult{}, err
	}
	answers, err := b.source.ReadinessResponses(ctx, clientID, regulationID)
	if err != nil {
		return compliance.ReadinessResult{}, err
	}
	return compliance.AssessReadiness(reg, answers)
}

func (b *Builder) selectRegulations(ids []string) ([]compliance.Regulation, error) {
	if len(ids) == 0 {
		return b.regs.All(), nil
	}
	regs := make([]compliance.Regulation, 0, len(ids))
	for _, id := range ids {
		reg, err := b.regs.Get(id)
		if err != nil {
			var nfErr *compliance.NotFoundError
			if errors.As(err, &nfErr) {
				return nil, err
			}
			return nil, fmt.Errorf("load regulation %s: %w", id, err)
		}
		regs = append(regs, reg)
	}
	return regs, nil
}
