package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	InputPath  string `toml:"input"`
	OutputDir  string `toml:"output_dir"`
	MaxRows    *int   `toml:"max_rows"`
	MinSamples int    `toml:"min_samples"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Caption    *bool  `toml:"caption"`
	Watch      *bool  `toml:"watch"`
	Debounce   string `toml:"debounce"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.mortplot/config.toml, or "" when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".mortplot", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input", fc.InputPath, &cfg.InputPath)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)

	if err := s.setCount("max-rows", fc.MaxRows, &cfg.MaxRows); err != nil {
		return err
	}
	s.setInt("min-samples", fc.MinSamples, &cfg.MinSamples)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("caption", fc.Caption, &cfg.Caption)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
