package ports

import (
	"context"

	"github.com/bft-labs/mortplot/internal/domain"
)

// DatasetSource loads the raw table before cleaning.
type DatasetSource interface {
	// Load returns the source rows projected onto the configured columns.
	// Failures are domain LoadFailure errors.
	Load(ctx context.Context) (domain.Dataset, error)

	// Describe names the source for diagnostics and captions.
	Describe() string
}
