package db

import (
	"io/fs"
	"strings"
	"testing"

	"scholartrack/internal/db/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations.Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrations.Migrations, name)
		require.NoError(t, err)

		sql := string(body)
		assert.True(t, strings.Contains(sql, "-- +goose Up"), name)
		assert.True(t, strings.Contains(sql, "-- +goose Down"), name)
	}
}
