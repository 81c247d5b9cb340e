// Package screen emulates the segment LCD glass on a terminal using ANSI
// color codes.
//
// It implements the segment and common ports of a segmentlcd.Driver and works
// out from the waveforms which segments the liquid crystal would show, so a
// refresh loop can be watched without the glass attached.
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/DrJosh9000/segmentlcd"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the emulator.
type Opts struct {
	W       io.Writer // colorable stdout if nil
	Palette *ansi256.Palette
	// InPlace redraws each frame over the previous one instead of below it.
	InPlace bool

	_ struct{}
}

// Colors of the glass.
var (
	Background = color.NRGBA{0xb4, 0xc4, 0xa8, 0xff}
	Lit        = color.NRGBA{0x1c, 0x24, 0x1c, 0xff}
	Unlit      = color.NRGBA{0xa4, 0xb4, 0x98, 0xff}
)

// Dev is a 4-digit segment LCD emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette *ansi256.Palette
	inPlace bool

	mu       sync.Mutex
	seg, com port
	glass    segmentlcd.Glass
	shown    [4]segmentlcd.Pattern
	frames   int
	buf      bytes.Buffer
	err      error
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		w:       opts.W,
		palette: opts.Palette,
		inPlace: opts.InPlace,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.palette == nil {
		d.palette = ansi256.Default
	}
	d.seg = port{dev: d}
	d.com = port{dev: d, latch: true}
	return d
}

// Segments returns the port wired to the segment lines.
func (d *Dev) Segments() segmentlcd.Port { return &d.seg }

// Commons returns the port wired to the common lines. Its direction write
// ends each half-phase and latches the state of both ports into the glass.
func (d *Dev) Commons() segmentlcd.Port { return &d.com }

// Patterns returns the segments shown by the last complete refresh cycle.
func (d *Dev) Patterns() [4]segmentlcd.Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Digits decodes the value shown by the last complete refresh cycle.
func (d *Dev) Digits() (segmentlcd.Digits, bool) {
	var digits segmentlcd.Digits
	for i, p := range d.Patterns() {
		v, ok := segmentlcd.DigitOf(p)
		if !ok {
			return digits, false
		}
		digits[i] = v
	}
	return digits, true
}

// Frames returns the number of frames drawn.
func (d *Dev) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Err returns the first error writing to the console.
func (d *Dev) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Dev) String() string {
	return "Screen"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// latch files the current port state. Once the last half-phase of a cycle
// is in, a changed picture is drawn.
func (d *Dev) latch() {
	s := segmentlcd.Sample{
		SegDir: d.seg.dir, SegOut: d.seg.out,
		ComDir: d.com.dir, ComOut: d.com.out,
	}
	if s.ComDir == 0 {
		return
	}
	if !d.glass.Latch(s) || !d.glass.Complete() || s.ComDir != 1<<3 || s.ComOut&s.ComDir == 0 {
		return
	}
	p := d.glass.Patterns()
	if p == d.shown && d.frames > 0 {
		return
	}
	d.shown = p
	if err := d.draw(); err != nil && d.err == nil {
		d.err = err
	}
}

func (d *Dev) draw() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.inPlace && d.frames > 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", gridRows)
	}
	bg := d.palette.Block(Background)
	for y := 0; y < gridRows; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for i := 3; i >= 0; i-- {
			for x := 0; x < gridCols; x++ {
				c := bg
				if seg, ok := cellAt(x, y); ok {
					if d.shown[i]&seg != 0 {
						c = d.palette.Block(Lit)
					} else {
						c = d.palette.Block(Unlit)
					}
				}
				_, _ = d.buf.WriteString(c)
				_, _ = d.buf.WriteString(c)
			}
			_, _ = d.buf.WriteString(bg)
			_, _ = d.buf.WriteString(bg)
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.frames++
	_, err := d.buf.WriteTo(d.w)
	return err
}

// port is one side of the emulated glass.
type port struct {
	dev      *Dev
	latch    bool
	dir, out uint8
}

func (p *port) SetDir(mask uint8) error {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	p.dir = mask
	if p.latch {
		p.dev.latch()
	}
	return nil
}

func (p *port) SetOut(value uint8) error {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	p.out = value
	return nil
}

// Cell grid of one digit, DP in the bottom right corner:
//
//	 AA
//	F  B
//	 GG
//	E  C
//	 DD.
const (
	gridCols = 5
	gridRows = 5
)

var layout = map[segmentlcd.Pattern][]image.Point{
	segmentlcd.SegA:  {{1, 0}, {2, 0}},
	segmentlcd.SegB:  {{3, 1}},
	segmentlcd.SegC:  {{3, 3}},
	segmentlcd.SegD:  {{1, 4}, {2, 4}},
	segmentlcd.SegE:  {{0, 3}},
	segmentlcd.SegF:  {{0, 1}},
	segmentlcd.SegG:  {{1, 2}, {2, 2}},
	segmentlcd.SegDP: {{4, 4}},
}

// cellAt returns the segment covering a cell of the digit grid.
func cellAt(x, y int) (segmentlcd.Pattern, bool) {
	for seg, pts := range layout {
		for _, pt := range pts {
			if pt.X == x && pt.Y == y {
				return seg, true
			}
		}
	}
	return 0, false
}

var _ segmentlcd.Port = &port{}
var _ fmt.Stringer = &Dev{}
