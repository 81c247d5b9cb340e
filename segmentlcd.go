package segmentlcd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sleeper idles the caller between events.
type Sleeper interface {
	// Sleep blocks until an event arrives on wake or ctx is done. An event
	// sent before Sleep is called must still wake it.
	Sleep(ctx context.Context, wake <-chan Event) (Event, error)
}

// Idle is the default Sleeper. It parks the goroutine until the next event,
// which is as close as a hosted program gets to halting until an interrupt.
type Idle struct{}

// Sleep implements Sleeper.
func (Idle) Sleep(ctx context.Context, wake <-chan Event) (Event, error) {
	select {
	case ev := <-wake:
		return ev, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Opts represents the options of a Dev. The zero value is usable.
type Opts struct {
	Period   time.Duration   // refresh tick period, DefaultPeriod if zero
	Interval int             // ticks per count, DefaultInterval if zero
	Clock    clockwork.Clock // real clock if nil
	Sleeper  Sleeper         // Idle if nil
	// OnCount is called from the refresh loop after each count.
	OnCount func(Digits)
}

// Dev is a counting LCD: a refresh driver, a BCD counter and the tick source
// clocking both.
type Dev struct {
	drv     *Driver
	counter *Counter
	ticks   *TickSource
	sleeper Sleeper
	onCount func(Digits)
}

// New returns a Dev that drives the glass through the segment and common
// ports.
func New(segments, commons Port, opts *Opts) (*Dev, error) {
	if segments == nil || commons == nil {
		return nil, errors.New("segmentlcd: segment and common ports are required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if opts.Period < 0 {
		return nil, fmt.Errorf("segmentlcd: invalid period %s", opts.Period)
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("segmentlcd: invalid interval %d", opts.Interval)
	}
	period := opts.Period
	if period == 0 {
		period = DefaultPeriod
	}
	s := opts.Sleeper
	if s == nil {
		s = Idle{}
	}
	return &Dev{
		drv:     NewDriver(segments, commons),
		counter: NewCounter(opts.Interval),
		ticks:   NewTickSource(opts.Clock, period),
		sleeper: s,
		onCount: opts.OnCount,
	}, nil
}

// Run refreshes the glass on every tick until ctx is done or a port write
// fails, sleeping in between. The glass is blanked before Run returns.
func (d *Dev) Run(ctx context.Context) error {
	if err := d.drv.Init(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go d.ticks.Run(ctx)

	err := d.loop(ctx)
	if herr := d.drv.Halt(); herr != nil && err == nil {
		err = herr
	}
	return err
}

func (d *Dev) loop(ctx context.Context) error {
	for {
		ev, err := d.sleeper.Sleep(ctx, d.ticks.Ready())
		if err != nil {
			return err
		}
		if err := d.Step(ev); err != nil {
			return err
		}
	}
}

// Step handles one event. A tick refreshes the next half-phase and then
// clocks the counter.
func (d *Dev) Step(ev Event) error {
	switch ev {
	case EventTick:
		if err := d.drv.Refresh(d.counter.Digits()); err != nil {
			return err
		}
		if d.counter.Tick() && d.onCount != nil {
			d.onCount(d.counter.Digits())
		}
	}
	return nil
}

// Digits returns the displayed value. It must not be called concurrently
// with Run; use Opts.OnCount to follow the count.
func (d *Dev) Digits() Digits { return d.counter.Digits() }

// Phase returns the last phase driven.
func (d *Dev) Phase() Phase { return d.drv.Phase() }

// Ticks returns the tick source clocking the Dev.
func (d *Dev) Ticks() *TickSource { return d.ticks }

// Overruns returns the number of coalesced ticks.
func (d *Dev) Overruns() uint64 { return d.ticks.Overruns() }

// Halt blanks the glass.
func (d *Dev) Halt() error { return d.drv.Halt() }

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s}", d.drv, d.counter)
}
