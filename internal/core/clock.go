package core

import "time"

// Clock is a monotonic millisecond time source.
type Clock interface {
	Millis() int64
}

// SystemClock reports milliseconds elapsed since it was created.
// time.Since uses the monotonic reading, so wall clock jumps do not leak in.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Millis returns the elapsed milliseconds.
func (c *SystemClock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is advanced explicitly. Used by tests and replays.
type ManualClock struct {
	now int64
}

// NewManualClock creates a manual clock at the given millisecond.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// Millis returns the current reading.
func (c *ManualClock) Millis() int64 {
	return c.now
}

// Set jumps the clock to an absolute reading.
func (c *ManualClock) Set(ms int64) {
	c.now = ms
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now += d.Milliseconds()
}

// Timer is an elapsed-time gate: Done reports whether Interval milliseconds
// have passed since the last Restart. There is no cancellation.
type Timer struct {
	clock    Clock
	start    int64
	Interval int64
}

// NewTimer creates a timer started now.
func NewTimer(clock Clock, interval int64) Timer {
	return Timer{
		clock:    clock,
		start:    clock.Millis(),
		Interval: interval,
	}
}

// Restart resets the start time to now.
func (t *Timer) Restart() {
	t.start = t.clock.Millis()
}

// Elapsed returns milliseconds since the last restart.
func (t *Timer) Elapsed() int64 {
	return t.clock.Millis() - t.start
}

// Done reports whether the interval has elapsed.
func (t *Timer) Done() bool {
	return t.Elapsed() >= t.Interval
}
