package segmentlcd_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DrJosh9000/segmentlcd"
	"github.com/DrJosh9000/segmentlcd/lcdtest"
	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func TestNew(t *testing.T) {
	b := lcdtest.NewBus()
	if _, err := segmentlcd.New(nil, &b.Commons, nil); err == nil {
		t.Error("New() accepted a nil segment port")
	}
	if _, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{Period: -time.Millisecond}); err == nil {
		t.Error("New() accepted a negative period")
	}
	if _, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{Interval: -1}); err == nil {
		t.Error("New() accepted a negative interval")
	}
	d, err := segmentlcd.New(&b.Segments, &b.Commons, nil)
	assert.NilError(t, err)
	assert.Equal(t, d.Ticks().Period(), segmentlcd.DefaultPeriod)
	assert.Equal(t, d.Phase(), segmentlcd.Phase(7))
	assert.Equal(t, d.String(), "SegmentLCD{0000}")
}

func TestStepColdStart(t *testing.T) {
	b := lcdtest.NewBus()
	var counts []string
	d, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{
		OnCount: func(digits segmentlcd.Digits) { counts = append(counts, digits.String()) },
	})
	assert.NilError(t, err)

	g := &segmentlcd.Glass{}
	cycles := 0
	for n := 0; n < 100*segmentlcd.NumPhases; n++ {
		assert.NilError(t, d.Step(segmentlcd.EventTick))
		assert.Equal(t, int(d.Phase()), n%segmentlcd.NumPhases)
		g.Latch(b.Sample())
		if d.Phase() == segmentlcd.NumPhases-1 {
			cycles++
			assert.Assert(t, g.Balanced(), "cycle %d", cycles)
		}
		if n == 99 {
			assert.Equal(t, d.Digits().String(), "0001")
		}
	}
	assert.Equal(t, cycles, 100)
	assert.Equal(t, d.Digits().String(), "0008")
	assert.DeepEqual(t, counts, []string{"0001", "0002", "0003", "0004", "0005", "0006", "0007", "0008"})

	// The last cycle was refreshed before its final tick counted up.
	shown, ok := g.Digits()
	assert.Assert(t, ok)
	assert.Equal(t, shown.String(), "0007")
}

func TestStepOneCountPerInterval(t *testing.T) {
	b := lcdtest.NewBus()
	d, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{Interval: 800})
	assert.NilError(t, err)
	for n := 0; n < 799; n++ {
		assert.NilError(t, d.Step(segmentlcd.EventTick))
	}
	assert.Equal(t, d.Digits().String(), "0000")
	assert.NilError(t, d.Step(segmentlcd.EventTick))
	assert.Equal(t, d.Digits().String(), "0001")
	assert.Equal(t, d.Phase(), segmentlcd.Phase(7))
}

func TestStepIgnoresUnknownEvents(t *testing.T) {
	b := lcdtest.NewBus()
	d, err := segmentlcd.New(&b.Segments, &b.Commons, nil)
	assert.NilError(t, err)
	assert.NilError(t, d.Step(segmentlcd.Event(0)))
	assert.Equal(t, d.Phase(), segmentlcd.Phase(7))
	assert.Equal(t, len(b.Segments.Ops), 0)
}

func TestRun(t *testing.T) {
	b := lcdtest.NewBus()
	clock := clockwork.NewFakeClock()
	s := &lcdtest.Sleeper{Woken: make(chan segmentlcd.Event)}
	d, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{
		Clock:    clock,
		Sleeper:  s,
		Interval: 4,
	})
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	res := make(chan error)
	go func() { res <- d.Run(ctx) }()
	clock.BlockUntil(1)

	for i := 0; i < 8; i++ {
		clock.Advance(segmentlcd.DefaultPeriod)
		select {
		case ev := <-s.Woken:
			assert.Equal(t, ev, segmentlcd.EventTick)
		case <-time.After(time.Second):
			t.Fatalf("loop not woken by tick %d", i)
		}
	}
	cancel()
	assert.Assert(t, errors.Is(<-res, context.Canceled))

	assert.Equal(t, d.Digits().String(), "0002")
	assert.Equal(t, d.Overruns(), uint64(0))
	s.Lock()
	assert.Equal(t, s.Wakes, 8)
	assert.Assert(t, s.Sleeps >= 9)
	s.Unlock()

	// Run blanks the glass on the way out.
	smp := b.Sample()
	assert.Equal(t, smp.SegDir, uint8(0))
	assert.Equal(t, smp.ComDir, uint8(0))
}

func TestRunPortError(t *testing.T) {
	b := lcdtest.NewBus()
	d, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{Clock: clockwork.NewFakeClock()})
	assert.NilError(t, err)
	fail := errors.New("bus gone")
	b.Segments.Err = fail
	err = d.Run(context.Background())
	assert.Assert(t, errors.Is(err, fail))
}

func TestRunStepError(t *testing.T) {
	b := lcdtest.NewBus()
	clock := clockwork.NewFakeClock()
	d, err := segmentlcd.New(&b.Segments, &b.Commons, &segmentlcd.Opts{Clock: clock})
	assert.NilError(t, err)

	fail := errors.New("pin stuck")
	res := make(chan error)
	go func() { res <- d.Run(context.Background()) }()
	clock.BlockUntil(1)
	b.Commons.Lock()
	b.Commons.Err = fail
	b.Commons.Unlock()
	clock.Advance(segmentlcd.DefaultPeriod)

	select {
	case err := <-res:
		assert.Assert(t, errors.Is(err, fail))
	case <-time.After(time.Second):
		t.Fatal("Run kept going after a failed write")
	}
}
