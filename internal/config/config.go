// Package config loads the optional YAML settings file for the puzzlepath CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every setting the CLI reads from file.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Valves ValvesConfig `yaml:"valves"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // text | json
}

// ValvesConfig holds defaults for the valve planner.
type ValvesConfig struct {
	Start       string `yaml:"start"`
	Minutes     int    `yaml:"minutes"`
	PairMinutes int    `yaml:"pair_minutes"` // budget for each of two walkers
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Output: OutputConfig{Format: "text"},
		Valves: ValvesConfig{Start: "AA", Minutes: 30, PairMinutes: 26},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if !isFormat(c.Log.Format) {
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalid)
	}
	if !isFormat(c.Output.Format) {
		return fmt.Errorf("output.format %q: %w", c.Output.Format, ErrInvalid)
	}
	if c.Valves.Start == "" {
		return fmt.Errorf("valves.start is empty: %w", ErrInvalid)
	}
	if c.Valves.Minutes < 0 {
		return fmt.Errorf("valves.minutes %d: %w", c.Valves.Minutes, ErrInvalid)
	}
	if c.Valves.PairMinutes < 0 {
		return fmt.Errorf("valves.pair_minutes %d: %w", c.Valves.PairMinutes, ErrInvalid)
	}
	return nil
}

// ParseLevel maps a level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level %q: %w", name, ErrInvalid)
}

func isFormat(format string) bool { return format == "text" || format == "json" }
