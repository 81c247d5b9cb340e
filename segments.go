// Package segmentlcd drives a 4-digit, 8-segment-per-digit multiplexed LCD
// glass (1/4 duty, 1/3 bias) directly from GPIO pins (using periph.io), and
// counts a decimal value up on it.
package segmentlcd // import "github.com/DrJosh9000/segmentlcd"

import "fmt"

// Digit is a decimal digit value, 0 - 9.
type Digit uint8

// Digits holds the displayed value, units first.
type Digits [4]Digit

// String returns the digits most significant first, e.g. "0001".
func (d Digits) String() string {
	return fmt.Sprintf("%d%d%d%d", d[3], d[2], d[1], d[0])
}

// Value returns the digits as an integer.
func (d Digits) Value() int {
	return int(d[3])*1000 + int(d[2])*100 + int(d[1])*10 + int(d[0])
}

// Pattern is the segment pattern of a single digit. Each pair of bits belongs
// to one common line: bits 0-1 to common 0, bits 2-3 to common 1 and so on.
type Pattern uint8

// Segment bits of a Pattern.
const (
	SegB  Pattern = 1 << iota // common 0
	SegA                      // common 0
	SegG                      // common 1
	SegF                      // common 1
	SegE                      // common 2
	SegC                      // common 2
	SegDP                     // common 3
	SegD                      // common 3
)

// Translates decimal digits into segments.
var digitPatterns = [10]Pattern{
	//  D.CEFGAB
	0: 0b11101101,
	1: 0b01000100,
	2: 0b11011001,
	3: 0b11010101,
	4: 0b01110100,
	5: 0b10110101,
	6: 0b10111101,
	7: 0b11000100,
	8: 0b11111101,
	9: 0b11110101,
}

// Segments returns the segment pattern for a digit. d must be 0 - 9.
func Segments(d Digit) Pattern {
	return digitPatterns[d]
}

// DigitOf finds the digit displayed by a segment pattern.
func DigitOf(p Pattern) (Digit, bool) {
	for d, q := range digitPatterns {
		if p == q {
			return Digit(d), true
		}
	}
	return 0, false
}

// GroupBits packs the two segment bits that belong to a common line from each
// of the four digits into one byte for the segment port. The units digit lands
// on bits 0-1, tens on 2-3, hundreds on 4-5 and thousands on 6-7.
func GroupBits(common int, d Digits) uint8 {
	shift := 2 * uint(common)
	var b uint8
	for i, v := range d {
		b |= uint8((Segments(v)>>shift)&0b11) << (2 * uint(i))
	}
	return b
}
