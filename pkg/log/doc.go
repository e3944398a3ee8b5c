// Package log provides the logging abstraction used across mortplot.
//
// This package defines a Logger interface that can be implemented by any
// logging library. A zerolog implementation is provided for the CLI, plus a
// no-op logger and an in-memory Recorder for tests.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, false)
//	logger.Info("chart written", log.String("path", path))
//
// Tests that need to assert on diagnostics use a Recorder:
//
//	rec := log.NewRecorder()
//	// ... run code under test with rec ...
//	rec.Has(log.LevelWarn, "chart skipped")
package log
