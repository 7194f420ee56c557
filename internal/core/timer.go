package core

import "time"

// maxCatchUp bounds how many steps FixedStep reports after a long stall.
const maxCatchUp = 4

// FixedStep paces simulation generations at a steady rate independently of
// the caller's frame or poll rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting the given steps per second.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(sps)
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 10/s.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 10
	}
	f.step = time.Second / time.Duration(sps)
}

// Interval returns the duration of one step.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Due returns how many steps should run since the previous call, capped so a
// long pause does not trigger a burst.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == maxCatchUp {
		f.accumulator = 0
	}
	return n
}

// Reset forgets accumulated time, e.g. after the simulation was paused.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}
