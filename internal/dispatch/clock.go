package dispatch

import "time"

// Timer is a cancellable pending delay.
type Timer interface {
	// Stop cancels the timer; reports whether it was still pending.
	Stop() bool
}

// Clock schedules delayed work. The production clock wraps
// time.AfterFunc; tests substitute a manual clock to drive the
// dispatcher's refresh delays deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the production Clock backed by the runtime timers.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
