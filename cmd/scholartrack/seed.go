package main

import (
	"context"
	"fmt"
	"os"

	"scholartrack/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Insert the sample scholarships into the configured backend",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if !cfg.HasBackend() {
			return fmt.Errorf("no backend configured, set DATABASE_URL or SUPABASE_URL and SUPABASE_API_KEY")
		}

		ctx := context.Background()

		backend, closeBackend, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeBackend()

		logrus.Info("Seeding scholarships...")
		if _, err := seed.SeedScholarships(ctx, backend, os.Stdout); err != nil {
			return fmt.Errorf("failed to seed scholarships: %w", err)
		}

		logrus.Info("Scholarships seeded successfully")

		return nil
	},
}
