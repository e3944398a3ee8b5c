package domain

import (
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := LoadFailure(io.ErrUnexpectedEOF, "read %s", "data.csv")

	assert.True(t, errors.Is(err, ErrLoadFailure))
	assert.False(t, errors.Is(err, ErrChartSkip))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, KindLoadFailure, KindOf(err))
	assert.Equal(t, "read data.csv", CauseOf(err))
	assert.Contains(t, err.Error(), "load failure: read data.csv")
}

func TestError_WrappedKeepsKind(t *testing.T) {
	err := errors.Wrap(ChartSkip("no %s column", ColumnRace), "race comparison")

	assert.Equal(t, KindChartSkip, KindOf(err))
	assert.True(t, errors.Is(err, ErrChartSkip))
	assert.False(t, KindOf(err).Fatal())
}

func TestKind_Fatal(t *testing.T) {
	tests := []struct {
		kind  Kind
		fatal bool
	}{
		{KindUnknown, false},
		{KindLoadFailure, true},
		{KindChartSkip, false},
		{KindDirectoryCreationFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.fatal, tt.kind.Fatal())
		})
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(io.EOF))
	assert.Equal(t, "EOF", CauseOf(io.EOF))
	assert.Equal(t, "", CauseOf(nil))
}
