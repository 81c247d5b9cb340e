package segmentlcd

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Port is an 8-bit bidirectional I/O port. Bit n of each value belongs to
// line n of the port.
type Port interface {
	// SetDir drives the lines whose bit is set in mask and floats the rest.
	SetDir(mask uint8) error
	// SetOut sets the levels driven on output lines. Levels of floating lines
	// are remembered and apply once they are driven.
	SetOut(value uint8) error
}

// PinPort implements Port on top of up to 8 GPIO pins. Pins[n] is line n;
// bits beyond len(Pins) are ignored.
type PinPort struct {
	Pins []gpio.PinIO

	dir, out uint8
	started  bool
}

// NewPinPort returns a PinPort driving the given pins. All lines start
// floating.
func NewPinPort(pins ...gpio.PinIO) (*PinPort, error) {
	if len(pins) > 8 {
		return nil, fmt.Errorf("segmentlcd: a port has at most 8 pins, got %d", len(pins))
	}
	for i, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("segmentlcd: pin %d is nil", i)
		}
	}
	return &PinPort{Pins: pins}, nil
}

// SetDir implements Port.
func (p *PinPort) SetDir(mask uint8) error {
	for i, pin := range p.Pins {
		bit := uint8(1) << i
		// Skip lines that are already in the right direction.
		if p.started && (p.dir^mask)&bit == 0 {
			continue
		}
		if mask&bit == 0 {
			if err := pin.In(gpio.Float, gpio.NoEdge); err != nil {
				return fmt.Errorf("segmentlcd: floating %s: %w", pin, err)
			}
			continue
		}
		if err := pin.Out(p.out&bit != 0); err != nil {
			return fmt.Errorf("segmentlcd: driving %s: %w", pin, err)
		}
	}
	p.dir = mask
	p.started = true
	return nil
}

// SetOut implements Port.
func (p *PinPort) SetOut(value uint8) error {
	for i, pin := range p.Pins {
		bit := uint8(1) << i
		if p.dir&bit == 0 || (p.out^value)&bit == 0 {
			continue
		}
		if err := pin.Out(value&bit != 0); err != nil {
			return fmt.Errorf("segmentlcd: driving %s: %w", pin, err)
		}
	}
	p.out = value
	return nil
}

// Halt floats every pin.
func (p *PinPort) Halt() error {
	var errs []error
	for _, pin := range p.Pins {
		errs = append(errs, pin.In(gpio.Float, gpio.NoEdge))
	}
	p.dir = 0
	p.started = true
	return errors.Join(errs...)
}

func (p *PinPort) String() string {
	return fmt.Sprintf("PinPort%v", p.Pins)
}

var _ Port = &PinPort{}
