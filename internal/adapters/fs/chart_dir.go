package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bft-labs/mortplot/internal/domain"
)

// ChartDirectory implements ports.ChartStore on a local directory.
type ChartDirectory struct {
	dir string
}

// NewChartDirectory creates a ChartDirectory rooted at dir.
func NewChartDirectory(dir string) *ChartDirectory {
	return &ChartDirectory{dir: dir}
}

// Prepare creates the directory and any missing parents.
func (d *ChartDirectory) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return domain.DirectoryCreationFailure(err, d.dir)
	}
	return nil
}

// Save writes data under name, replacing any previous file of that name.
// Uses atomic write (write to temp file, then rename) so a reader never sees
// a half-written chart.
func (d *ChartDirectory) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", errors.Errorf("invalid chart name %q", name)
	}

	path := filepath.Join(d.dir, name)

	tmp, err := os.CreateTemp(d.dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "create temp file for %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "write %s", name)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "chmod %s", name)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", name)
	}

	// Atomic rename
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrapf(err, "rename into %s", path)
	}
	return path, nil
}
