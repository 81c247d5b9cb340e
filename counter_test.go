package segmentlcd

import (
	"testing"

	"gotest.tools/assert"
)

func TestCounterInterval(t *testing.T) {
	c := NewCounter(0)
	assert.Equal(t, c.Interval, DefaultInterval)

	for i := 0; i < DefaultInterval-1; i++ {
		assert.Assert(t, !c.Tick(), "counted after %d ticks", i+1)
	}
	assert.Equal(t, c.Elapsed(), DefaultInterval-1)
	assert.Equal(t, c.Value(), 0)

	assert.Assert(t, c.Tick())
	assert.Equal(t, c.Elapsed(), 0)
	assert.Equal(t, c.String(), "0001")
}

func TestCounterCustomInterval(t *testing.T) {
	c := NewCounter(3)
	n := 0
	for i := 0; i < 30; i++ {
		if c.Tick() {
			n++
		}
	}
	assert.Equal(t, n, 10)
	assert.Equal(t, c.Value(), 10)
}

func TestCounterCarry(t *testing.T) {
	data := []struct {
		from Digits
		want string
	}{
		{Digits{8, 0, 0, 0}, "0009"},
		{Digits{9, 0, 0, 0}, "0010"},
		{Digits{9, 9, 0, 0}, "0100"},
		{Digits{9, 9, 9, 0}, "1000"},
		{Digits{9, 0, 9, 0}, "0910"},
		{Digits{9, 9, 9, 9}, "0000"},
	}
	for _, line := range data {
		c := &Counter{Interval: 1, digits: line.from}
		assert.Assert(t, c.Tick())
		assert.Equal(t, c.String(), line.want, "from %s", line.from)
	}
}

func TestCounterWrapsEveryDigit(t *testing.T) {
	c := NewCounter(1)
	for i := 1; i <= 10000; i++ {
		c.Increment()
		assert.Equal(t, c.Value(), i%10000)
		for _, d := range c.Digits() {
			assert.Assert(t, d <= 9)
		}
	}
}
