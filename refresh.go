package segmentlcd

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
)

// Phase is a step of the refresh cycle, 0 - 7. Phase/2 is the common line
// being driven; even phases drive it low and odd phases drive it high.
type Phase uint8

// NumPhases is the number of phases in a full refresh cycle: two polarities
// for each of the four common lines.
const NumPhases = 8

// Common returns the common line driven during the phase.
func (p Phase) Common() int { return int(p / 2) }

// High reports whether the common line is driven high during the phase.
func (p Phase) High() bool { return p%2 == 1 }

// Driver implements the refresh state machine of a 1/4 duty, 1/3 bias glass.
// Each call to Refresh emits one half-phase: one common line driven at one
// polarity, with the segment lines set against it. Over a full cycle every
// segment sees equal and opposite voltages, so the glass carries no DC.
type Driver struct {
	Segments Port // the 8 segment lines
	Commons  Port // the 4 common lines on bits 0 - 3

	phase Phase
	segs  uint8 // segment byte of the common line being driven
}

// NewDriver returns a Driver whose first Refresh drives phase 0.
func NewDriver(segments, commons Port) *Driver {
	return &Driver{
		Segments: segments,
		Commons:  commons,
		phase:    NumPhases - 1,
	}
}

// Phase returns the phase driven by the last Refresh.
func (d *Driver) Phase() Phase { return d.phase }

// Init puts the ports in their power-on state: segments driven low and
// commons floating.
func (d *Driver) Init() error {
	if err := d.Segments.SetDir(0xff); err != nil {
		return err
	}
	if err := d.Segments.SetOut(0); err != nil {
		return err
	}
	return d.Commons.SetDir(0)
}

// Refresh advances to the next phase and drives it, showing digits.
func (d *Driver) Refresh(digits Digits) error {
	d.phase++
	if d.phase >= NumPhases {
		d.phase = 0
	}
	return d.drive(digits)
}

// drive writes the port state of the current phase. The segment byte is only
// computed on the low half; the high half reuses it inverted so both halves
// are built from the same data.
func (d *Driver) drive(digits Digits) error {
	if d.phase >= NumPhases {
		return d.Halt()
	}
	com := uint8(1) << d.phase.Common()
	w := writer{}
	if !d.phase.High() {
		d.segs = GroupBits(d.phase.Common(), digits)
		w.do(d.Commons.SetDir, 0)
		w.do(d.Commons.SetOut, 0)
		w.do(d.Segments.SetOut, d.segs)
	} else {
		w.do(d.Commons.SetOut, com)
		w.do(d.Segments.SetOut, ^d.segs)
	}
	w.do(d.Segments.SetDir, 0xff)
	w.do(d.Commons.SetDir, com)
	if w.err != nil {
		return fmt.Errorf("segmentlcd: phase %d: %w", d.phase, w.err)
	}
	return nil
}

// Halt floats all segment and common lines, blanking the glass.
func (d *Driver) Halt() error {
	return errors.Join(d.Segments.SetDir(0), d.Commons.SetDir(0))
}

func (d *Driver) String() string {
	return "SegmentLCD"
}

// writer stops at the first failed port write.
type writer struct {
	err error
}

func (w *writer) do(f func(uint8) error, v uint8) {
	if w.err != nil {
		return
	}
	w.err = f(v)
}

var _ conn.Resource = &Driver{}
