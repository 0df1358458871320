package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [client-id]",
	Short: "Build the full posture assessment for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]
		regulationIDs, _ := cmd.Flags().GetStringSlice("regulation")
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx := context.Background()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		builder, err := newBuilder(pool)
		if err != nil {
			return err
		}

		a, err := builder.Build(ctx, clientID, regulationIDs)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(a)
		}

		fmt.Printf("Posture assessment for %s\n", clientID)
		fmt.Printf("  Overall score: %d%% (%s)\n", a.Score.Overall, a.Rating)
		fmt.Printf("  Coverage:      %d%% (%d of %d controls)\n",
			a.Coverage.CoveragePercentage, a.Coverage.MappedControls, a.Coverage.TotalControls)
		fmt.Printf("  Controls:      %d implemented, %d in progress, %d not implemented, %d n/a\n",
			a.Controls.Implemented, a.Controls.InProgress, a.Controls.NotImplemented, a.Controls.NotApplicable)
		fmt.Printf("  Policies:      %d approved of %d\n", a.Policies.Approved, a.Policies.Total)

		if len(a.Readiness) > 0 {
			fmt.Println("\nReadiness:")
			for _, r := range a.Readiness {
				fmt.Printf("  %-20s %d%%\n", r.RegulationID, r.Score)
			}
		}
		if len(a.Alerts) > 0 {
			fmt.Println("\nGaps:")
			for _, alert := range a.Alerts {
				fmt.Printf("  [%s] %s\n", alert.Severity, alert.Message)
			}
		} else {
			fmt.Println("\nNo gaps detected.")
		}
		if len(a.Warnings) > 0 {
			fmt.Printf("\n%d reference data warning(s); see log output.\n", len(a.Warnings))
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringSlice("regulation", nil, "Limit the assessment to these regulation IDs")
	reportCmd.Flags().Bool("json", false, "Emit the assessment as JSON")
}
