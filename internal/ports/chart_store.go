package ports

import "context"

// ChartStore persists rendered chart images.
type ChartStore interface {
	// Prepare makes the store ready for writes. It is idempotent. Failures
	// are domain DirectoryCreationFailure errors.
	Prepare(ctx context.Context) error

	// Save writes data under name, replacing any previous image, and returns
	// the location written.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
