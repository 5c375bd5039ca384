package testutils

import (
	"sync"
	"time"

	"github.com/mythicavalon/EchoLang/clients"
)

// FakeScheduler records scheduled tasks and only runs them when a test fires them
type FakeScheduler struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

func (s *FakeScheduler) AfterFunc(delay time.Duration, fn func()) clients.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := &FakeTimer{Delay: delay, fn: fn}
	s.timers = append(s.timers, timer)
	return timer
}

// Timers returns every timer scheduled so far, in scheduling order
func (s *FakeScheduler) Timers() []*FakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*FakeTimer(nil), s.timers...)
}

// Live returns the timers that were neither stopped nor fired
func (s *FakeScheduler) Live() []*FakeTimer {
	var live []*FakeTimer
	for _, timer := range s.Timers() {
		if timer.IsLive() {
			live = append(live, timer)
		}
	}
	return live
}

// FireLive fires every live timer and returns how many ran
func (s *FakeScheduler) FireLive() int {
	fired := 0
	for _, timer := range s.Live() {
		if timer.Fire() {
			fired++
		}
	}
	return fired
}

type FakeTimer struct {
	Delay time.Duration

	mu      sync.Mutex
	fn      func()
	stopped bool
	fired   bool
}

func (t *FakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the task synchronously unless the timer was stopped
func (t *FakeTimer) Fire() bool {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	t.mu.Unlock()

	t.fn()
	return true
}

// ForceFire runs the task even if it was stopped, like a timer whose Stop lost the race with expiry
func (t *FakeTimer) ForceFire() {
	t.mu.Lock()
	t.fired = true
	t.mu.Unlock()

	t.fn()
}

func (t *FakeTimer) IsLive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.fired
}

func (t *FakeTimer) IsStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
