package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps [client-id]",
	Short: "Classify and rank compliance gaps for a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID := args[0]

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

		a, err := builder.Build(ctx, clientID, nil)
		if err != nil {
			return err
		}

		if len(a.Alerts) == 0 {
			fmt.Printf("No gaps detected for %s.\n", clientID)
		} else {
			fmt.Printf("Gaps for %s:\n", clientID)
			for _, alert := range a.Alerts {
				fmt.Printf("  [%s] %s\n", alert.Severity, alert.Message)
				fmt.Printf("      → %s\n", alert.RecommendedAction)
			}
		}

		if len(a.RegulationGaps) > 0 {
			fmt.Println("\nPer-regulation readiness:")
			for _, gap := range a.RegulationGaps {
				source := "estimated from overall score"
				if gap.Assessed {
					source = "questionnaire"
				}
				fmt.Printf("  %-30s %3d%%  %s (%s)\n", gap.RegulationName, gap.Readiness, gap.Rating, source)
			}
		}
		return nil
	},
}
