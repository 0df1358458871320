package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			return err
		}
		fmt.Println("Migrations applied.")
		return nil
	},
}
