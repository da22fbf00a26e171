package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "scholartrack",
		Usage: "Scholarship application tracking dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-prefix",
				Aliases: []string{"p"},
				Usage:   "Environment variable prefix",
				Value:   "SCHOLARTRACK",
			},
		},
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			migrateCommand,
			exportCommand,
			statsCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
