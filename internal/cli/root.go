package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/veracomply/posture/internal/cache"
	"github.com/veracomply/posture/internal/config"
	"github.com/veracomply/posture/internal/regdata"
	"github.com/veracomply/posture/internal/report"
	"github.com/veracomply/posture/internal/store"
)

var (
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "posture",
		Short: "Posture: compliance scoring, coverage, and gap analysis",
		Long: `Posture computes auditable compliance metrics for a tenant: an overall
compliance score, control-to-policy coverage, per-regulation readiness, and a
prioritized gap list.

Every number is a pure function of the stored snapshot — running the same
command twice against unchanged data prints identical results.`,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(readinessCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(regulationsCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w\nSet POSTURE_DATABASE_URL environment variable", err)
	}
	return pool, nil
}

func connectRedis() (*redis.Client, error) {
	rdb, err := cache.ConnectRedis(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet POSTURE_REDIS_URL environment variable", err)
	}
	return rdb, nil
}

func loadCatalog() (*regdata.Catalog, error) {
	catalog, err := regdata.Load(cfg.RegulationsDir)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet POSTURE_REGULATIONS_DIR environment variable", err)
	}
	return catalog, nil
}

func newBuilder(pool *pgxpool.Pool) (*report.Builder, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return report.NewBuilder(store.New(pool), catalog), nil
}
