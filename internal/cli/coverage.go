package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/compliance"
	"github.com/veracomply/posture/internal/store"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage [client-id]",
	Short: "Show control-to-policy coverage for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := context.Background()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		snapshot, err := store.New(pool).Snapshot(ctx, clientID)
		if err != nil {
			return err
		}

		cov := compliance.ComputeCoverage(snapshot.Controls, snapshot.Links, snapshot.Policies)
		fmt.Printf("Coverage for %s: %d%% (%d of %d controls linked to a policy)\n",
			clientID, cov.CoveragePercentage, cov.MappedControls, cov.TotalControls)

		if len(cov.PolicyCoverage) > 0 {
			fmt.Println("\nControls per policy:")
			for _, entry := range cov.PolicyCoverage {
				fmt.Printf("  %-40s %d\n", entry.PolicyName, entry.ControlCount)
			}
		}

		if len(cov.UnmappedControlsList) > 0 {
			fmt.Printf("\nUnmapped controls (%d):\n", cov.UnmappedControls)
			// The engine returns the full list; truncation is display-only.
			shown := cov.UnmappedControlsList
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, uc := range shown {
				fmt.Printf("  %s  %s\n", uc.ControlID, uc.Name)
			}
			if len(shown) < len(cov.UnmappedControlsList) {
				fmt.Printf("  ... and %d more\n", len(cov.UnmappedControlsList)-len(shown))
			}
		}
		return nil
	},
}

func init() {
	coverageCmd.Flags().Int("limit", 10, "Maximum unmapped controls to list (0 for all)")
}
