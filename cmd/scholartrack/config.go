package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"scholartrack/internal/dashboard"
	"scholartrack/internal/db"
	"scholartrack/internal/seed"
	"scholartrack/internal/storage"
	"scholartrack/internal/store"
	"scholartrack/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.DeadlineWindowDays <= 0 {
		c.DeadlineWindowDays = 30
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

func newLogger(cfg *types.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// openBackend picks where scholarships are persisted: Postgres when
// DATABASE_URL is set, the Supabase table when its URL and key are set,
// otherwise nothing. The returned func releases the backend.
func openBackend(ctx context.Context, cfg *types.Config) (dashboard.ScholarshipBackend, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store.NewScholarshipRepository(pool), pool.Close, nil
	case cfg.SupabaseURL != "" && cfg.SupabaseAPIKey != "":
		return storage.NewSupabaseTable(cfg.SupabaseURL, cfg.SupabaseAPIKey, cfg.SupabaseTable), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// openArchive returns nil when no bucket is configured.
func openArchive(ctx context.Context, cfg *types.Config) (*storage.ExportArchive, error) {
	if cfg.S3BucketName == "" {
		return nil, nil
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return storage.NewExportArchive(s3.NewFromConfig(awsConfig), cfg.S3BucketName), nil
}

// openDashboard builds a loaded dashboard from config. Sample applications
// and activity are loaded when SEED_SAMPLE_DATA is on; sample scholarships
// only when there is no backend to read them from.
func openDashboard(ctx context.Context, cfg *types.Config, logger logrus.FieldLogger) (*dashboard.Dashboard, func(), error) {
	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []dashboard.Option{
		dashboard.WithWindowDays(cfg.DeadlineWindowDays),
		dashboard.WithRemoteTimeout(10 * time.Second),
	}
	if backend != nil {
		opts = append(opts, dashboard.WithBackend(backend))
	}

	dash := dashboard.New(logger, opts...)

	var sample dashboard.Sample
	if cfg.SeedSampleData {
		sample = seed.Sample()
	}
	dash.Load(ctx, sample)

	return dash, closeBackend, nil
}
