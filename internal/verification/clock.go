package verification

import "time"

// Clock abstracts timer creation so tests can trigger expiry
// deterministically instead of sleeping through real TTLs.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable one-shot timer. Stop reports whether the call
// prevented the timer from firing.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
