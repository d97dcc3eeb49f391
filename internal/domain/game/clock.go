package game

import "time"

// PlayerClock is one side's countdown. Stamp marks when it last started
// running or was last calibrated.
type PlayerClock struct {
	Remaining time.Duration
	Stamp     time.Time
}

// Calibrate returns the remaining time at now. It never goes below zero and
// ignores a stamp that lies in the future.
func Calibrate(c PlayerClock, now time.Time) time.Duration {
	elapsed := now.Sub(c.Stamp)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := c.Remaining - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Settle folds the elapsed time into Remaining and restarts the stamp, so
// repeated calls do not double count.
func (c *PlayerClock) Settle(now time.Time) {
	c.Remaining = Calibrate(*c, now)
	c.Stamp = now
}

func (c *PlayerClock) Start(now time.Time) {
	c.Stamp = now
}

// Expired reports a clock that has run out. Nothing forfeits on it.
func (c PlayerClock) Expired() bool {
	return c.Remaining <= 0
}

type ClockView struct {
	TimeLeft  float64 `json:"time_left"`
	TimeStamp int64   `json:"time_stamp"`
}

func (c PlayerClock) View() ClockView {
	return ClockView{
		TimeLeft:  c.Remaining.Seconds(),
		TimeStamp: c.Stamp.UnixMilli(),
	}
}
