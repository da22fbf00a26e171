package main

import (
	"context"
	"fmt"
	"os"

	"scholartrack/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL")
		}

		logger := newLogger(cfg, os.Stderr)
		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		return db.Migrate(ctx, pool, cfg.DatabaseSchema, logger)
	},
}
