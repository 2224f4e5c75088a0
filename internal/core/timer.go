package core

import "time"

// Timer is a countdown driven by simulated elapsed time rather than the wall
// clock, so game logic stays deterministic under test.
//
// SetReset only changes the interval used by the next Reset; it never
// restarts the countdown on its own.
type Timer struct {
	reset     time.Duration
	remaining time.Duration
}

// NewTimer creates a timer with the given interval, already started.
func NewTimer(reset time.Duration) *Timer {
	return &Timer{reset: reset, remaining: reset}
}

// SetReset changes the interval applied by the next Reset.
func (t *Timer) SetReset(d time.Duration) {
	t.reset = d
}

// ResetInterval returns the configured interval.
func (t *Timer) ResetInterval() time.Duration {
	return t.reset
}

// Reset restarts the countdown from the configured interval.
func (t *Timer) Reset() {
	t.remaining = t.reset
}

// Rollover restarts the countdown after it ran out, carrying the overshoot
// into the next interval. An overshoot longer than a whole interval is
// dropped.
func (t *Timer) Rollover() {
	t.remaining += t.reset
	if t.remaining <= 0 {
		t.remaining = t.reset
	}
}

// Update counts the timer down by elapsed.
func (t *Timer) Update(elapsed time.Duration) {
	t.remaining -= elapsed
}

// HasTimePassed reports whether the countdown has run out.
func (t *Timer) HasTimePassed() bool {
	return t.remaining <= 0
}

// Remaining returns the time left, never negative.
func (t *Timer) Remaining() time.Duration {
	return max(t.remaining, 0)
}
