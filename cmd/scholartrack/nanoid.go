package main

import (
	"fmt"

	"scholartrack/internal/utils"

	"github.com/urfave/cli/v2"
)

var nanoidCommand = &cli.Command{
	Name:  "nanoid",
	Usage: "Print fresh ids for seed fixtures",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "How many ids to print",
			Value:   1,
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Usage:   "Id length",
			Value:   utils.SeedIDSize,
		},
	},
	Action: func(c *cli.Context) error {
		if c.Int("count") < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		for range c.Int("count") {
			fmt.Fprintln(c.App.Writer, utils.NanoIDSize(c.Int("size")))
		}
		return nil
	},
}
