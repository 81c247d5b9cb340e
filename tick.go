package segmentlcd

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is the refresh tick period.
const DefaultPeriod = 2 * time.Millisecond

// Event wakes the main loop.
type Event uint8

// Events.
const (
	// EventTick is one firing of the periodic tick source.
	EventTick Event = iota + 1
)

func (e Event) String() string {
	switch e {
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// TickSource fires EventTick at a fixed period. It holds at most one
// unconsumed tick: a tick that fires before the previous one was consumed is
// coalesced with it and counted as an overrun. Processing a tick takes far
// less than a period, so overruns should never happen; they are counted, not
// recovered from.
type TickSource struct {
	clock    clockwork.Clock
	period   time.Duration
	ready    chan Event
	overruns atomic.Uint64
}

// NewTickSource returns a tick source with the given period. A nil clock uses
// the real clock.
func NewTickSource(clock clockwork.Clock, period time.Duration) *TickSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TickSource{
		clock:  clock,
		period: period,
		ready:  make(chan Event, 1),
	}
}

// Run fires a tick every period until ctx is done. It does nothing else per
// tick, so it never delays the next one.
func (t *TickSource) Run(ctx context.Context) {
	tk := t.clock.NewTicker(t.period)
	defer tk.Stop()
	for {
		select {
		case <-tk.Chan():
			t.Fire()
		case <-ctx.Done():
			return
		}
	}
}

// Fire sets the ready slot without blocking.
func (t *TickSource) Fire() {
	select {
	case t.ready <- EventTick:
	default:
		t.overruns.Add(1)
	}
}

// Ready returns the slot that Fire sets. Receiving from it consumes the tick.
func (t *TickSource) Ready() <-chan Event { return t.ready }

// Period returns the tick period.
func (t *TickSource) Period() time.Duration { return t.period }

// Overruns returns the number of ticks coalesced because the previous tick
// had not been consumed yet.
func (t *TickSource) Overruns() uint64 { return t.overruns.Load() }
