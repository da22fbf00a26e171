package main

import (
	"context"
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Print summaries of every collection",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg, os.Stderr)

		dash, closeBackend, err := openDashboard(context.Background(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeBackend()

		printer := pp.New()
		printer.SetColoringEnabled(!c.Bool("no-color"))
		printer.Println(dash.Overview())

		return nil
	},
}
