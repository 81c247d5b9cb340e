// internal/config/validate.go
package config

import (
	"fmt"
	"strconv"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	d := cfg.Display

	if _, err := d.Period(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if d.Interval < 0 {
		return fmt.Errorf("display: interval %d must not be negative", d.Interval)
	}

	switch d.Backend {
	case BackendScreen:
		// No pins.
	case BackendPeriph, BackendRPIO:
		if len(d.SegmentPins) != 8 {
			return fmt.Errorf("display: %d segment_pins, need 8", len(d.SegmentPins))
		}
		if len(d.CommonPins) != 4 {
			return fmt.Errorf("display: %d common_pins, need 4", len(d.CommonPins))
		}
		seen := make(map[string]bool)
		for _, p := range append(append([]string{}, d.SegmentPins...), d.CommonPins...) {
			if seen[p] {
				return fmt.Errorf("display: pin %q used twice", p)
			}
			seen[p] = true
			if d.Backend != BackendRPIO {
				continue
			}
			if _, err := strconv.Atoi(p); err != nil {
				return fmt.Errorf("display: rpio pin %q is not a BCM number", p)
			}
		}
	default:
		return fmt.Errorf("display: unknown backend %q", d.Backend)
	}

	if d.Snapshot != "" && d.Backend != BackendScreen {
		return fmt.Errorf("display: snapshot needs the %s backend", BackendScreen)
	}

	l := cfg.Log
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return fmt.Errorf("log: sizes and ages must not be negative")
	}
	return nil
}
