package segmentlcd

// SetPhase forces the phase the next drive writes.
func (d *Driver) SetPhase(p Phase) { d.phase = p }

// Drive writes the current phase again without advancing.
func (d *Driver) Drive(digits Digits) error { return d.drive(digits) }
