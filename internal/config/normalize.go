// internal/config/normalize.go
package config

// Defaults fills in every field left empty.
func Defaults(cfg *Config) {
	if cfg == nil {
		return
	}
	d := &cfg.Display
	if d.Backend == "" {
		d.Backend = BackendPeriph
	}
	if d.Refresh == "" {
		d.Refresh = "500Hz"
	}
	if d.Interval == 0 {
		d.Interval = 100
	}

	l := &cfg.Log
	if l.File == "" {
		return
	}
	if l.MaxSizeMB == 0 {
		l.MaxSizeMB = 1
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = 3
	}
}
