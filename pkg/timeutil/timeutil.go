package timeutil

import "time"

// Sleeper abstracts the short idle sleep in the worker retry loops so
// termination behavior is testable without wall-clock delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

type RealSleeper struct{}

func NewRealSleeper() RealSleeper {
	return RealSleeper{}
}

func (RealSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}
