// Package rpioport implements segmentlcd.Port on the BCM283x GPIO registers
// of a Raspberry Pi, through /dev/gpiomem.
//
// It writes the registers directly instead of going through the kernel, which
// keeps each half-phase well inside the 2ms refresh tick.
package rpioport

import (
	"fmt"

	"github.com/DrJosh9000/segmentlcd"
	"github.com/stianeikeland/go-rpio"
)

// line is the part of rpio.Pin that Port uses.
type line interface {
	Input()
	Output()
	PullOff()
	Write(rpio.State)
}

// Open maps the GPIO registers. It must be called before any Port is used.
func Open() error {
	return rpio.Open()
}

// Close unmaps the GPIO registers.
func Close() error {
	return rpio.Close()
}

// Port is an 8-bit port over up to 8 BCM GPIO lines.
type Port struct {
	lines    []line
	names    []int
	dir, out uint8
}

// New returns a Port over the given BCM GPIO numbers, bit 0 first. All lines
// are set floating.
func New(bcm ...int) (*Port, error) {
	if len(bcm) > 8 {
		return nil, fmt.Errorf("rpioport: a port has at most 8 pins, got %d", len(bcm))
	}
	lines := make([]line, len(bcm))
	for i, n := range bcm {
		if n < 0 || n > 53 {
			return nil, fmt.Errorf("rpioport: invalid BCM pin %d", n)
		}
		lines[i] = rpio.Pin(n)
	}
	return newPort(lines, bcm), nil
}

func newPort(lines []line, names []int) *Port {
	p := &Port{lines: lines, names: names}
	for _, l := range lines {
		l.PullOff()
		l.Input()
	}
	return p
}

// SetDir implements segmentlcd.Port.
func (p *Port) SetDir(mask uint8) error {
	for i, l := range p.lines {
		bit := uint8(1) << i
		if (p.dir^mask)&bit == 0 {
			continue
		}
		if mask&bit == 0 {
			l.Input()
			continue
		}
		// Latch the level first so the line never glitches.
		l.Write(state(p.out & bit))
		l.Output()
	}
	p.dir = mask
	return nil
}

// SetOut implements segmentlcd.Port.
func (p *Port) SetOut(value uint8) error {
	for i, l := range p.lines {
		bit := uint8(1) << i
		if p.dir&bit == 0 || (p.out^value)&bit == 0 {
			continue
		}
		l.Write(state(value & bit))
	}
	p.out = value
	return nil
}

// Halt floats every line.
func (p *Port) Halt() error {
	return p.SetDir(0)
}

func (p *Port) String() string {
	return fmt.Sprintf("rpio%v", p.names)
}

func state(b uint8) rpio.State {
	if b != 0 {
		return rpio.High
	}
	return rpio.Low
}

var _ segmentlcd.Port = &Port{}
