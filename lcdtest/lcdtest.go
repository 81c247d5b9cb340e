// Package lcdtest is meant to be used to test drivers over fake ports.
package lcdtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/DrJosh9000/segmentlcd"
)

// OpKind is the kind of a port write.
type OpKind uint8

// Port writes.
const (
	Dir OpKind = iota
	Out
)

func (k OpKind) String() string {
	if k == Dir {
		return "dir"
	}
	return "out"
}

// Op is one recorded port write.
type Op struct {
	Kind  OpKind
	Value uint8
}

func (o Op) String() string {
	return fmt.Sprintf("%s=%#02x", o.Kind, o.Value)
}

// Port implements segmentlcd.Port and records every write.
type Port struct {
	sync.Mutex
	N   string
	Ops []Op

	// Dir and Out are the current state of the port.
	Dir, Out uint8

	// Err, when set, is returned by every write instead of recording it.
	Err error
}

func (p *Port) String() string {
	return p.N
}

// SetDir implements segmentlcd.Port.
func (p *Port) SetDir(mask uint8) error {
	p.Lock()
	defer p.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Ops = append(p.Ops, Op{Dir, mask})
	p.Dir = mask
	return nil
}

// SetOut implements segmentlcd.Port.
func (p *Port) SetOut(value uint8) error {
	p.Lock()
	defer p.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Ops = append(p.Ops, Op{Out, value})
	p.Out = value
	return nil
}

// Driven returns the levels currently driven, with floating lines reading 0.
func (p *Port) Driven() uint8 {
	p.Lock()
	defer p.Unlock()
	return p.Dir & p.Out
}

// Reset forgets the recorded writes.
func (p *Port) Reset() {
	p.Lock()
	defer p.Unlock()
	p.Ops = nil
}

// Bus is a pair of recording ports wired to a glass.
type Bus struct {
	Segments Port
	Commons  Port
}

// NewBus returns a Bus with named ports.
func NewBus() *Bus {
	return &Bus{
		Segments: Port{N: "SEG"},
		Commons:  Port{N: "COM"},
	}
}

// Sample returns the current state of both ports.
func (b *Bus) Sample() segmentlcd.Sample {
	b.Segments.Lock()
	defer b.Segments.Unlock()
	b.Commons.Lock()
	defer b.Commons.Unlock()
	return segmentlcd.Sample{
		SegDir: b.Segments.Dir,
		SegOut: b.Segments.Out,
		ComDir: b.Commons.Dir,
		ComOut: b.Commons.Out,
	}
}

// Sleeper implements segmentlcd.Sleeper. It counts sleeps and wakes and
// records every event it hands out.
type Sleeper struct {
	sync.Mutex
	Sleeps int
	Wakes  int
	Events []segmentlcd.Event

	// Woken, if set, receives every event handed out.
	Woken chan segmentlcd.Event
}

// Sleep implements segmentlcd.Sleeper.
func (s *Sleeper) Sleep(ctx context.Context, wake <-chan segmentlcd.Event) (segmentlcd.Event, error) {
	s.Lock()
	s.Sleeps++
	s.Unlock()
	ev, err := segmentlcd.Idle{}.Sleep(ctx, wake)
	if err != nil {
		return ev, err
	}
	s.Lock()
	s.Wakes++
	s.Events = append(s.Events, ev)
	s.Unlock()
	if s.Woken != nil {
		select {
		case s.Woken <- ev:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return ev, nil
}

var _ segmentlcd.Port = &Port{}
var _ segmentlcd.Sleeper = &Sleeper{}
