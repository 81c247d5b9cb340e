package segmentlcd

// DefaultInterval is the number of refresh ticks between counts: 100 ticks of
// 2ms each is one count every 200ms.
const DefaultInterval = 100

// Counter is a 4-digit BCD up-counter clocked by refresh ticks.
type Counter struct {
	Interval int // ticks per count

	digits  Digits
	elapsed int
}

// NewCounter returns a counter at 0000 that counts once every interval ticks.
// A non-positive interval uses DefaultInterval.
func NewCounter(interval int) *Counter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Counter{Interval: interval}
}

// Tick records one refresh tick and counts up once Interval ticks have
// elapsed. It reports whether the digits changed.
func (c *Counter) Tick() bool {
	c.elapsed++
	if c.elapsed < c.Interval {
		return false
	}
	c.elapsed = 0
	c.Increment()
	return true
}

// Increment adds one to the digits, carrying into the next digit whenever one
// passes 9. 9999 wraps to 0000.
func (c *Counter) Increment() {
	for i := range c.digits {
		c.digits[i]++
		if c.digits[i] < 10 {
			return
		}
		c.digits[i] = 0
	}
}

// Elapsed returns the ticks recorded since the last count.
func (c *Counter) Elapsed() int { return c.elapsed }

// Digits returns the current value.
func (c *Counter) Digits() Digits { return c.digits }

// Value returns the current value as an integer.
func (c *Counter) Value() int { return c.digits.Value() }

func (c *Counter) String() string { return c.digits.String() }
