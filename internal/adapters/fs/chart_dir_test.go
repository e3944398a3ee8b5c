package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/mortplot/internal/domain"
)

func TestChartDirectory_PrepareCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "charts")
	d := NewChartDirectory(dir)

	require.NoError(t, d.Prepare(context.Background()))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// already existing is fine
	require.NoError(t, d.Prepare(context.Background()))
}

func TestChartDirectory_PrepareOverFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "charts")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := NewChartDirectory(file).Prepare(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryCreationFailure)
	assert.True(t, domain.KindOf(err).Fatal())
}

func TestChartDirectory_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	d := NewChartDirectory(dir)
	ctx := context.Background()

	path, err := d.Save(ctx, "trend.png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "trend.png"), path)

	_, err = d.Save(ctx, "trend.png", []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "trend.png", entries[0].Name())
}

func TestChartDirectory_SaveRejectsPaths(t *testing.T) {
	d := NewChartDirectory(t.TempDir())

	for _, name := range []string{"", "../escape.png", "sub/dir.png"} {
		_, err := d.Save(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestChartDirectory_SaveMissingDir(t *testing.T) {
	d := NewChartDirectory(filepath.Join(t.TempDir(), "absent"))

	_, err := d.Save(context.Background(), "a.png", []byte("x"))
	assert.Error(t, err)
}
