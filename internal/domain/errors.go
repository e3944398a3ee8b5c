package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a pipeline failure.
type Kind uint8

const (
	// KindUnknown is reported for errors that did not originate in the pipeline.
	KindUnknown Kind = iota

	// KindLoadFailure covers a missing, unreadable, malformed or empty source.
	// It aborts the run before any chart is produced.
	KindLoadFailure

	// KindChartSkip marks a single chart that cannot be drawn from the data
	// it was given. The remaining charts still run.
	KindChartSkip

	// KindDirectoryCreationFailure is returned when the output directory
	// cannot be created. No chart can be saved, so the run aborts.
	KindDirectoryCreationFailure
)

func (k Kind) String() string {
	switch k {
	case KindLoadFailure:
		return "load failure"
	case KindChartSkip:
		return "chart skipped"
	case KindDirectoryCreationFailure:
		return "directory creation failure"
	default:
		return "unknown"
	}
}

// Fatal reports whether an error of this kind must stop the run.
func (k Kind) Fatal() bool {
	return k == KindLoadFailure || k == KindDirectoryCreationFailure
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrLoadFailure              = &Error{Kind: KindLoadFailure}
	ErrChartSkip                = &Error{Kind: KindChartSkip}
	ErrDirectoryCreationFailure = &Error{Kind: KindDirectoryCreationFailure}
)

// Error is a pipeline failure carrying a human readable cause.
type Error struct {
	Kind  Kind
	Cause string
	Err   error
}

// Error implements error.
func (e *Error) Error() string {
	msg := "mortplot: " + e.Kind.String()
	if e.Cause != "" {
		msg += ": " + e.Cause
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// LoadFailure builds a KindLoadFailure error.
func LoadFailure(err error, format string, args ...interface{}) error {
	return newError(KindLoadFailure, err, format, args...)
}

// ChartSkip builds a KindChartSkip error.
func ChartSkip(format string, args ...interface{}) error {
	return newError(KindChartSkip, nil, format, args...)
}

// DirectoryCreationFailure builds a KindDirectoryCreationFailure error.
func DirectoryCreationFailure(err error, dir string) error {
	return newError(KindDirectoryCreationFailure, err, "cannot create %s", dir)
}

func newError(kind Kind, err error, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind:  kind,
		Cause: fmt.Sprintf(format, args...),
		Err:   err,
	})
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CauseOf returns the cause string of the first *Error in err's chain, or
// err.Error() when there is none.
func CauseOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
