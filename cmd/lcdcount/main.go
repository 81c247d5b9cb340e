// cmd/lcdcount/main.go
//
// lcdcount counts up from 0000 on a 4-digit multiplexed segment LCD, one
// count every interval refresh ticks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/DrJosh9000/segmentlcd"
	"github.com/DrJosh9000/segmentlcd/internal/config"
	"github.com/DrJosh9000/segmentlcd/rpioport"
	"github.com/DrJosh9000/segmentlcd/screen"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	backend := flag.String("backend", "", "override the display backend: periph, rpio or screen")
	snapshot := flag.String("snapshot", "", "write the last screen picture to this PNG on exit")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg := &config.Config{}
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	} else {
		cfg.Display.Backend = config.BackendScreen
		config.Defaults(cfg)
	}
	if *backend != "" {
		cfg.Display.Backend = *backend
	}
	if *snapshot != "" {
		cfg.Display.Snapshot = *snapshot
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	if cfg.Log.File != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}))
	}

	// --------------------
	// Ports
	// --------------------

	seg, com, done, err := openPorts(cfg.Display)
	if err != nil {
		log.Fatalf("opening %s ports failed: %v", cfg.Display.Backend, err)
	}

	period, _ := cfg.Display.Period()
	dev, err := segmentlcd.New(seg, com, &segmentlcd.Opts{
		Period:   period,
		Interval: cfg.Display.Interval,
		OnCount: func(d segmentlcd.Digits) {
			if d.Value()%100 == 0 {
				log.Printf("count %s", d)
			}
		},
	})
	if err != nil {
		log.Fatalf("display setup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("refreshing %s every %s on %s", dev, period, cfg.Display.Backend)
	err = dev.Run(ctx)
	if n := dev.Overruns(); n > 0 {
		log.Printf("%d refresh ticks overran", n)
	}
	if derr := done(); derr != nil {
		log.Printf("closing ports: %v", derr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("refresh stopped: %v", err)
	}
	log.Printf("stopped at %s", dev.Digits())
}

// openPorts returns the segment and common ports of the configured backend,
// and a func releasing them.
func openPorts(d config.DisplayConfig) (seg, com segmentlcd.Port, done func() error, err error) {
	switch d.Backend {
	case config.BackendScreen:
		s := screen.New(&screen.Opts{
			InPlace: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		})
		done = func() error {
			if err := s.Halt(); err != nil {
				return err
			}
			if d.Snapshot == "" {
				return nil
			}
			log.Printf("writing %s", d.Snapshot)
			return s.SavePNG(d.Snapshot)
		}
		return s.Segments(), s.Commons(), done, nil

	case config.BackendPeriph:
		if _, err := host.Init(); err != nil {
			return nil, nil, nil, err
		}
		segPins, err := lookupPins(d.SegmentPins)
		if err != nil {
			return nil, nil, nil, err
		}
		comPins, err := lookupPins(d.CommonPins)
		if err != nil {
			return nil, nil, nil, err
		}
		sp, err := segmentlcd.NewPinPort(segPins...)
		if err != nil {
			return nil, nil, nil, err
		}
		cp, err := segmentlcd.NewPinPort(comPins...)
		if err != nil {
			return nil, nil, nil, err
		}
		done = func() error { return errors.Join(sp.Halt(), cp.Halt()) }
		return sp, cp, done, nil

	case config.BackendRPIO:
		segNums, err := bcmPins(d.SegmentPins)
		if err != nil {
			return nil, nil, nil, err
		}
		comNums, err := bcmPins(d.CommonPins)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := rpioport.Open(); err != nil {
			return nil, nil, nil, err
		}
		sp, err := rpioport.New(segNums...)
		if err != nil {
			rpioport.Close()
			return nil, nil, nil, err
		}
		cp, err := rpioport.New(comNums...)
		if err != nil {
			rpioport.Close()
			return nil, nil, nil, err
		}
		done = func() error { return errors.Join(sp.Halt(), cp.Halt(), rpioport.Close()) }
		return sp, cp, done, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown backend %q", d.Backend)
}

func lookupPins(names []string) ([]gpio.PinIO, error) {
	pins := make([]gpio.PinIO, len(names))
	for i, n := range names {
		if pins[i] = gpioreg.ByName(n); pins[i] == nil {
			return nil, fmt.Errorf("no GPIO pin named %q", n)
		}
	}
	return pins, nil
}

func bcmPins(names []string) ([]int, error) {
	nums := make([]int, len(names))
	for i, n := range names {
		v, err := strconv.Atoi(n)
		if err != nil {
			return nil, fmt.Errorf("pin %q: %w", n, err)
		}
		nums[i] = v
	}
	return nums, nil
}
