package utils

import "time"

// Timer measures the wall-clock time of one operation. It starts when
// created.
type Timer struct {
	start   time.Time
	elapsed time.Duration
}

// NewTimer returns a running timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Stop records and returns the time since the timer was created.
func (t *Timer) Stop() time.Duration {
	t.elapsed = time.Since(t.start)
	return t.elapsed
}

// Elapsed returns the duration recorded by the last Stop, or zero.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
