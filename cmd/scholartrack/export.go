package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"scholartrack/internal/dashboard"
	"scholartrack/internal/query"
	"scholartrack/pkg/types"

	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Write a workbook or PDF report of a collection to disk",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "kind",
			Usage: "scholarships, applications or activity",
			Value: string(types.KindScholarships),
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "xlsx or pdf",
			Value: string(dashboard.FormatWorkbook),
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Output directory or file path",
			Value: ".",
		},
		&cli.StringFlag{
			Name:  "search",
			Usage: "Free text filter",
		},
		&cli.StringFlag{
			Name:  "status",
			Usage: "Status filter (scholarships and applications)",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort key",
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Sort direction, asc or desc",
			Value: string(query.Ascending),
		},
		&cli.BoolFlag{
			Name:  "archive",
			Usage: "Also upload the file to S3_BUCKET_NAME",
		},
	},
	Action: runExport,
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg, os.Stderr)
	ctx := context.Background()

	dash, closeBackend, err := openDashboard(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	format := dashboard.Format(c.String("format"))
	sort := query.Sort{Key: c.String("sort"), Direction: query.ParseDirection(c.String("dir"))}
	search, status := c.String("search"), c.String("status")

	kind := types.Kind(c.String("kind"))

	var file dashboard.File
	switch kind {
	case types.KindScholarships:
		file, err = dash.ExportScholarships(format, dashboard.ScholarshipFilter{Search: search, Status: status}, sort)
	case types.KindApplications:
		file, err = dash.ExportApplications(format, dashboard.ApplicationFilter{Search: search, Status: status}, sort)
	case types.KindActivity:
		file, err = dash.ExportActivity(format, dashboard.ActivityFilter{Search: search}, sort)
	default:
		return fmt.Errorf("unknown kind %q, expected scholarships, applications or activity", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", kind, err)
	}

	out := c.String("out")
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, file.Name)
	}

	if err := os.WriteFile(out, file.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.WithField("rows", file.Rows).WithField("path", out).Info("export written")

	if !c.Bool("archive") {
		return nil
	}

	archive, err := openArchive(ctx, cfg)
	if err != nil {
		return err
	}
	if archive == nil {
		return fmt.Errorf("--archive needs S3_BUCKET_NAME")
	}

	key, err := archive.Store(ctx, file.Name, file.ContentType, file.Body)
	if err != nil {
		return err
	}
	logger.WithField("key", key).Info("export archived")

	return nil
}
