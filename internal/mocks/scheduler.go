package mocks

import (
	"sync"
	"time"

	"gomoku_arena/internal/clock"
)

// ManualTimer is a task registered with a ManualScheduler.
type ManualTimer struct {
	Interval  time.Duration
	Repeating bool

	fn      func()
	mu      sync.Mutex
	stopped bool
}

func (t *ManualTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *ManualTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// ManualScheduler never fires on its own; tests drive it with Tick and Fire.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

var _ clock.Scheduler = (*ManualScheduler)(nil)

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) clock.Timer {
	return s.add(&ManualTimer{Interval: interval, Repeating: true, fn: fn})
}

func (s *ManualScheduler) After(delay time.Duration, fn func()) clock.Timer {
	return s.add(&ManualTimer{Interval: delay, fn: fn})
}

func (s *ManualScheduler) add(t *ManualTimer) *ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers = append(s.timers, t)
	return t
}

// Active returns the timers that have not been stopped or consumed.
func (s *ManualScheduler) Active() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*ManualTimer
	for _, t := range s.timers {
		if !t.Stopped() {
			out = append(out, t)
		}
	}
	return out
}

// ActiveTicks returns the live periodic tasks in registration order.
func (s *ManualScheduler) ActiveTicks() []*ManualTimer {
	var out []*ManualTimer
	for _, t := range s.Active() {
		if t.Repeating {
			out = append(out, t)
		}
	}
	return out
}

func (s *ManualScheduler) ActiveRepeating() int {
	return len(s.ActiveTicks())
}

// Tick runs every live periodic task once and returns how many ran.
func (s *ManualScheduler) Tick() int {
	n := 0
	for _, t := range s.Active() {
		if t.Repeating {
			t.fn()
			n++
		}
	}
	return n
}

// Fire runs every pending one-shot task scheduled with the given delay.
func (s *ManualScheduler) Fire(delay time.Duration) int {
	n := 0
	for _, t := range s.Active() {
		if t.Repeating || t.Interval != delay {
			continue
		}
		t.Stop()
		t.fn()
		n++
	}
	return n
}

// RunStale invokes a task's callback even if it was stopped, the way a real
// ticker goroutine can race with Stop.
func (t *ManualTimer) RunStale() {
	t.fn()
}
