package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/cache"
	"github.com/veracomply/posture/internal/compliance"
	"github.com/veracomply/posture/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score [client-id]",
	Short: "Compute the composite compliance score for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]
		refresh, _ := cmd.Flags().GetBool("refresh")

		ctx := context.Background()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rdb, err := connectRedis()
		if err != nil {
			return err
		}
		defer rdb.Close()

		scores := cache.New(rdb, 0)
		if !refresh {
			if snap, ok, err := scores.Get(ctx, clientID); err == nil && ok {
				printScore(clientID, snap, true)
				return nil
			} else if err != nil {
				log.Printf("score cache unavailable: %v", err)
			}
		}

		s := store.New(pool)
		snapshot, err := s.Snapshot(ctx, clientID)
		if err != nil {
			return err
		}
		snap := compliance.ComputeScore(snapshot.Controls, snapshot.Policies, snapshot.Evidence)
		if err := scores.Set(ctx, clientID, snap); err != nil {
			log.Printf("score cache write failed: %v", err)
		}
		printScore(clientID, snap, false)
		return nil
	},
}

func printScore(clientID string, snap compliance.ComplianceScoreSnapshot, cached bool) {
	source := "computed"
	if cached {
		source = "cached"
	}
	fmt.Printf("Client %s — overall %d%% (%s, %s)\n", clientID, snap.Overall, compliance.RatingFor(snap.Overall), source)
	fmt.Printf("  Controls implemented: %d/%d\n", snap.ControlsImplemented, snap.TotalControls)
	fmt.Printf("  Policies approved:    %d/%d\n", snap.PoliciesApproved, snap.TotalPolicies)
	fmt.Printf("  Evidence verified:    %d/%d\n", snap.EvidenceVerified, snap.TotalEvidence)
}

func init() {
	scoreCmd.Flags().Bool("refresh", false, "Recompute even when a cached score exists")
}
