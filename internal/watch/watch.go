// Package watch re-runs the pipeline when the input file changes.
//
// Events on the input file are debounced, and a run is started only when the
// file content differs from what the previous run saw. Runs happen on the
// goroutine that called Watch, one at a time.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/bft-labs/mortplot/pkg/log"
)

// DefaultDebounce is the quiet period after the last file event before a run.
const DefaultDebounce = 250 * time.Millisecond

// RunFunc performs one pipeline pass.
type RunFunc func(ctx context.Context) error

// Watcher monitors a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	run      RunFunc
	logger   log.Logger

	sum    uint64
	primed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a Watcher calling run whenever path changes.
func New(path string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		run:      run,
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Prime records the current content as already processed.
// Call it after the initial run.
func (w *Watcher) Prime() error {
	sum, err := w.checksum()
	if err != nil {
		return err
	}
	w.sum, w.primed = sum, true
	return nil
}

// Watch blocks until ctx is cancelled. Run failures are logged and watching
// continues.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	w.logger.Info("watching input for changes",
		log.String("path", w.path),
		log.String("debounce", w.debounce.String()),
	)

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	stopTimer(timer)
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug("input event", log.String("op", event.Op.String()))
			stopTimer(timer)
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.trigger(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", log.Err(err))
		}
	}
}

// trigger runs the pipeline if the content changed since the last run.
func (w *Watcher) trigger(ctx context.Context) bool {
	sum, err := w.checksum()
	if err != nil {
		w.logger.Warn("cannot read input, waiting for next change", log.Err(err))
		return false
	}
	if w.primed && sum == w.sum {
		w.logger.Debug("input content unchanged, skipping run")
		return false
	}
	w.sum, w.primed = sum, true

	w.logger.Info("input changed, re-running", log.String("path", w.path))
	if err := w.run(ctx); err != nil {
		w.logger.Error("re-run failed", log.Err(err))
	}
	return true
}

func (w *Watcher) checksum() (uint64, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", w.path)
	}
	return xxhash.Sum64(data), nil
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
