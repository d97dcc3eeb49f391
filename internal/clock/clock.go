package clock

import (
	"sync"
	"time"
)

// Clock is the source of wall-clock time for room clocks.
type Clock interface {
	Now() time.Time
}

// Timer is a handle to scheduled work. Stop is safe to call more than once.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks later on its own goroutines. Callers are responsible
// for synchronising whatever state the callback touches.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Timer
	After(delay time.Duration, fn func()) Timer
}

type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// RealScheduler is backed by time.Ticker and time.AfterFunc.
type RealScheduler struct{}

func NewScheduler() *RealScheduler {
	return &RealScheduler{}
}

type tickerTimer struct {
	stop chan struct{}
	once sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() { close(t.stop) })
}

func (s *RealScheduler) Every(interval time.Duration, fn func()) Timer {
	t := &tickerTimer{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return t
}

type afterTimer struct {
	timer *time.Timer
}

func (t *afterTimer) Stop() {
	t.timer.Stop()
}

func (s *RealScheduler) After(delay time.Duration, fn func()) Timer {
	return &afterTimer{timer: time.AfterFunc(delay, fn)}
}
