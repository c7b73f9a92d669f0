package artifact_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/domain"
	"github.com/jhoicas/lager-api/internal/infrastructure/artifact"
)

func TestFileStore_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "qrcodes")
	store, err := artifact.NewFileStore(dir)
	require.NoError(t, err)

	location, err := store.Save(ctx, "ab12cd34", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ab12cd34.png"), location)

	rc, err := store.Open(ctx, "ab12cd34")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Remove(ctx, "ab12cd34"))
	_, err = store.Open(ctx, "ab12cd34")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// borrar dos veces no falla
	assert.NoError(t, store.Remove(ctx, "ab12cd34"))
}

func TestFileStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(ctx, "00000000", []byte("v1"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "00000000", []byte("v2"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "00000000")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestFileStore_RejectsUnsafeCodes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := artifact.NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.Save(ctx, "../escape", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.Remove(ctx, "a/b"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
