package log

import (
	"strings"
	"sync"
)

// Level names a log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one recorded log line.
type Entry struct {
	Level   Level
	Message string
	Fields  []Field
}

// Field returns the value of the named field, if present.
func (e Entry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Recorder implements Logger by keeping every entry in memory.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Debug(msg string, fields ...Field) { r.add(LevelDebug, msg, fields) }
func (r *Recorder) Info(msg string, fields ...Field)  { r.add(LevelInfo, msg, fields) }
func (r *Recorder) Warn(msg string, fields ...Field)  { r.add(LevelWarn, msg, fields) }
func (r *Recorder) Error(msg string, fields ...Field) { r.add(LevelError, msg, fields) }

func (r *Recorder) add(level Level, msg string, fields []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg, Fields: fields})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Has reports whether an entry at level contains substr in its message.
func (r *Recorder) Has(level Level, substr string) bool {
	for _, e := range r.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
