package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (MORTPLOT_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", os.Getenv("MORTPLOT_INPUT"), &cfg.InputPath)
	s.setString("output-dir", os.Getenv("MORTPLOT_OUTPUT_DIR"), &cfg.OutputDir)

	if err := s.setCountFromString("max-rows", os.Getenv("MORTPLOT_MAX_ROWS"), &cfg.MaxRows); err != nil {
		return err
	}
	if err := s.setIntFromString("min-samples", os.Getenv("MORTPLOT_MIN_SAMPLES"), &cfg.MinSamples); err != nil {
		return err
	}
	if err := s.setIntFromString("width", os.Getenv("MORTPLOT_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("MORTPLOT_HEIGHT"), &cfg.Height); err != nil {
		return err
	}

	if err := s.setDuration("debounce", os.Getenv("MORTPLOT_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("caption", os.Getenv("MORTPLOT_CAPTION"), &cfg.Caption)
	s.setBoolFromString("watch", os.Getenv("MORTPLOT_WATCH"), &cfg.Watch)
	s.setBoolFromString("verbose", os.Getenv("MORTPLOT_VERBOSE"), &cfg.Verbose)

	return nil
}
