package segmentlcd

import "math/bits"

// Sample is the state of both ports at the end of a half-phase.
type Sample struct {
	SegDir, SegOut uint8
	ComDir, ComOut uint8
}

// Glass works out which segments a sequence of half-phases turns on, the way
// the liquid crystal would. A segment is on when its line is driven against
// the selected common at full voltage in both halves: high against the low
// common and low against the high common.
type Glass struct {
	samples [NumPhases]Sample
	seen    uint8 // bit per phase
}

// Latch records a sample and reports whether it was kept. Samples that do not
// drive exactly one of the four common lines are dropped.
func (g *Glass) Latch(s Sample) bool {
	if bits.OnesCount8(s.ComDir) != 1 {
		return false
	}
	common := bits.TrailingZeros8(s.ComDir)
	if common >= NumPhases/2 {
		return false
	}
	p := 2 * common
	if s.ComOut&s.ComDir != 0 {
		p++
	}
	g.samples[p] = s
	g.seen |= 1 << p
	return true
}

// Complete reports whether every half-phase has been latched.
func (g *Glass) Complete() bool { return g.seen == 0xff }

// Reset forgets all latched samples.
func (g *Glass) Reset() { *g = Glass{} }

// Balanced reports whether, for every common line with both halves latched,
// the high half drives the inverse of the low half on every segment line.
func (g *Glass) Balanced() bool {
	for c := 0; c < NumPhases/2; c++ {
		lo, hi, ok := g.pair(c)
		if !ok {
			continue
		}
		if lo.SegDir != 0xff || hi.SegDir != 0xff || lo.SegOut != ^hi.SegOut {
			return false
		}
	}
	return true
}

// Patterns returns the lit segments of each digit, units first.
func (g *Glass) Patterns() [4]Pattern {
	var p [4]Pattern
	for c := 0; c < NumPhases/2; c++ {
		lo, hi, ok := g.pair(c)
		if !ok {
			continue
		}
		on := lo.SegDir & hi.SegDir & lo.SegOut &^ hi.SegOut
		for i := range p {
			p[i] |= Pattern((on>>(2*i))&0b11) << (2 * c)
		}
	}
	return p
}

// Digits decodes the displayed value. It fails if the cycle is incomplete or
// a digit shows a pattern that is not a decimal digit.
func (g *Glass) Digits() (Digits, bool) {
	var d Digits
	if !g.Complete() {
		return d, false
	}
	for i, p := range g.Patterns() {
		v, ok := DigitOf(p)
		if !ok {
			return d, false
		}
		d[i] = v
	}
	return d, true
}

func (g *Glass) pair(common int) (lo, hi Sample, ok bool) {
	p := 2 * common
	if g.seen&(0b11<<p) != 0b11<<p {
		return lo, hi, false
	}
	return g.samples[p], g.samples[p+1], true
}
