package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration for the posture CLI.
type Config struct {
	DatabaseURL    string
	RedisURL       string
	RegulationsDir string
	MigrationsDir  string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg := &Config{
		DatabaseURL:    getEnv("POSTURE_DATABASE_URL", "postgres://localhost:5432/posture?sslmode=disable"),
		RedisURL:       getEnv("POSTURE_REDIS_URL", "redis://localhost:6379/0"),
		RegulationsDir: getEnv("POSTURE_REGULATIONS_DIR", filepath.Join(wd, "regulations")),
		MigrationsDir:  getEnv("POSTURE_MIGRATIONS_DIR", filepath.Join(wd, "migrations")),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
