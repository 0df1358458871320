package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/compliance"
)

var readinessCmd = &cobra.Command{
	Use:   "readiness [client-id] [regulation-id]",
	Short: "Assess a client's questionnaire answers against a regulation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, regulationID := args[0], args[1]

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

		result, err := builder.Readiness(ctx, clientID, regulationID)
		var nqErr *compliance.NoQuestionsError
		if errors.As(err, &nqErr) {
			return fmt.Errorf("regulation %s has no readiness questionnaire; readiness cannot be assessed", regulationID)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Readiness for %s against %s: %d%% (%s)\n",
			clientID, regulationID, result.Score, compliance.RatingFor(result.Score))
		for _, v := range result.PerQuestion {
			mark := "✗"
			if v.Compliant {
				mark = "✓"
			}
			fmt.Printf("  %s %-8s %s\n", mark, v.QuestionID, v.Answer)
			if v.Guidance != "" {
				fmt.Printf("      → %s\n", v.Guidance)
			}
		}
		return nil
	},
}
