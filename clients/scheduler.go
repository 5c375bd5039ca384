package clients

import "time"

// Timer is a cancellable delayed task
type Timer interface {
	// Stop prevents the task from running. It reports false if the task already ran or was stopped.
	Stop() bool
}

// Scheduler runs a function once after a delay
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

type realScheduler struct{}

// NewRealScheduler returns a Scheduler backed by time.AfterFunc
func NewRealScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}
