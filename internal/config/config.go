// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Backends.
const (
	BackendPeriph = "periph" // pins by periph name, through the kernel
	BackendRPIO   = "rpio"   // BCM pin numbers, memory-mapped registers
	BackendScreen = "screen" // terminal emulator, no hardware
)

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Backend string `yaml:"backend"`
	// Refresh is the tick rate, e.g. "500Hz" for a 2ms tick.
	Refresh  string `yaml:"refresh"`
	Interval int    `yaml:"interval"` // ticks per count

	SegmentPins []string `yaml:"segment_pins"` // line 0 first
	CommonPins  []string `yaml:"common_pins"`  // common 0 first

	// Snapshot, if set, is a PNG written with the last picture of the
	// screen backend on exit.
	Snapshot string `yaml:"snapshot"`
}

// Period returns the refresh tick period.
func (d DisplayConfig) Period() (time.Duration, error) {
	var f physic.Frequency
	if err := f.Set(d.Refresh); err != nil {
		return 0, fmt.Errorf("refresh %q: %w", d.Refresh, err)
	}
	if f <= 0 {
		return 0, fmt.Errorf("refresh %q: must be positive", d.Refresh)
	}
	return f.Period(), nil
}

// ---- LOG ----

type LogConfig struct {
	File       string `yaml:"file"` // stderr only if empty
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads a YAML config file and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML config and fills in defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	Defaults(cfg)
	return cfg, nil
}
