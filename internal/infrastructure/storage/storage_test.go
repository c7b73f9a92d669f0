package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/infrastructure/storage"
	"github.com/jhoicas/lager-api/pkg/config"
)

func TestOpen_SQLiteRequiresMigrations(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "storage.db")}

	s, err := storage.Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.EnsureMigrated(ctx, false)
	assert.ErrorContains(t, err, "migraciones pendientes")

	applied, err := s.EnsureMigrated(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)

	applied, err = s.EnsureMigrated(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "mysql"})
	assert.Error(t, err)
}
