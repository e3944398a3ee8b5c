package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/mortplot/internal/app"
	"github.com/bft-labs/mortplot/internal/render"
	"github.com/bft-labs/mortplot/internal/watch"
)

// Defaults for a run with no flags, file or environment.
const (
	DefaultInputPath  = app.DefaultInputPath
	DefaultOutputDir  = app.DefaultOutputDir
	DefaultMinSamples = app.DefaultMinSamples
	DefaultWidth      = render.DefaultWidth
	DefaultHeight     = render.DefaultHeight
	DefaultDebounce   = watch.DefaultDebounce
)

// Config holds CLI configuration for mortplot.
type Config struct {
	InputPath string
	OutputDir string

	MaxRows    int
	MinSamples int

	Width   int
	Height  int
	Caption bool

	Watch    bool
	Debounce time.Duration

	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputPath:  DefaultInputPath,
		OutputDir:  DefaultOutputDir,
		MaxRows:    0, // unlimited
		MinSamples: DefaultMinSamples,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Caption:    true,
		Debounce:   DefaultDebounce,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output-dir is required")
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("max-rows must not be negative")
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("min-samples must be at least 1")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setCount sets a non-negative int from a pointer if not nil and flag not
// changed. Zero is a valid value.
func (s *configSetter) setCount(flag string, value *int, dst *int) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if *value < 0 {
		return fmt.Errorf("%s must not be negative", flag)
	}
	*dst = *value
	return nil
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setCountFromString parses a non-negative int, zero included.
// Used for environment variables that come as strings.
func (s *configSetter) setCountFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i < 0 {
		return fmt.Errorf("%s must not be negative", flag)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
