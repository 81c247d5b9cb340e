package segmentlcd

import "testing"

func TestSegments(t *testing.T) {
	want := []Pattern{0xED, 0x44, 0xD9, 0xD5, 0x74, 0xB5, 0xBD, 0xC4, 0xFD, 0xF5}
	for d, w := range want {
		if got := Segments(Digit(d)); got != w {
			t.Errorf("Segments(%d) = %#02x, want %#02x", d, got, w)
		}
	}
}

func TestDigitOf(t *testing.T) {
	for d := Digit(0); d < 10; d++ {
		got, ok := DigitOf(Segments(d))
		if !ok || got != d {
			t.Errorf("DigitOf(Segments(%d)) = %d, %t", d, got, ok)
		}
	}
	if _, ok := DigitOf(0); ok {
		t.Error("DigitOf(0) found a digit for a blank pattern")
	}
	if _, ok := DigitOf(SegDP); ok {
		t.Error("DigitOf(SegDP) found a digit")
	}
}

func TestGroupBits(t *testing.T) {
	data := []struct {
		common int
		digits Digits
		want   uint8
	}{
		// 0 = 0b11_10_11_01 split per common line.
		{0, Digits{0, 0, 0, 0}, 0b01_01_01_01},
		{1, Digits{0, 0, 0, 0}, 0b11_11_11_11},
		{2, Digits{0, 0, 0, 0}, 0b10_10_10_10},
		{3, Digits{0, 0, 0, 0}, 0b11_11_11_11},
		// 1 = 0b01_00_01_00 in the units, zeros elsewhere.
		{0, Digits{1, 0, 0, 0}, 0b01_01_01_00},
		{1, Digits{1, 0, 0, 0}, 0b11_11_11_01},
		{2, Digits{1, 0, 0, 0}, 0b10_10_10_00},
		{3, Digits{1, 0, 0, 0}, 0b11_11_11_01},
		// 8 = 0b11_11_11_01 in the thousands.
		{2, Digits{0, 0, 0, 8}, 0b11_10_10_10},
	}
	for _, line := range data {
		if got := GroupBits(line.common, line.digits); got != line.want {
			t.Errorf("GroupBits(%d, %s) = %#08b, want %#08b", line.common, line.digits, got, line.want)
		}
	}
}

func TestDigitsString(t *testing.T) {
	d := Digits{4, 3, 2, 1}
	if s := d.String(); s != "1234" {
		t.Errorf("String() = %q", s)
	}
	if v := d.Value(); v != 1234 {
		t.Errorf("Value() = %d", v)
	}
}
