package engine

import (
	"sync"
	"time"
)

const (
	// How often a running countdown recomputes remaining time for display.
	// Coarse on purpose: authoritative timeout decisions always come from
	// the server's SMASH_TIMEOUT event, never from this ticker.
	tickInterval = 100 * time.Millisecond
)

// Countdown is a cancellable display countdown. Remaining time is always
// derived from the start instant and the duration, never stored, so the
// value cannot drift across ticks.
type Countdown struct {
	start    time.Time
	duration time.Duration
	done     chan struct{}
	stop     sync.Once
}

// newCountdown starts a countdown for the given duration. onTick, if not
// nil, is invoked on every recomputation tick with the remaining time and
// a final time with zero when the countdown elapses.
func newCountdown(duration time.Duration, onTick func(remaining time.Duration)) *Countdown {
	c := &Countdown{
		start:    time.Now(),
		duration: duration,
		done:     make(chan struct{}),
	}
	go c.run(onTick)
	return c
}

// Remaining returns the time left, clamped at zero.
func (c *Countdown) Remaining() time.Duration {
	elapsed := time.Since(c.start)
	if elapsed >= c.duration {
		return 0
	}
	return c.duration - elapsed
}

// Duration returns the full duration the countdown was armed with.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Cancel stops the tick loop. Safe to call multiple times.
func (c *Countdown) Cancel() {
	c.stop.Do(func() { close(c.done) })
}

// run drives the periodic recomputation until cancelled or elapsed
func (c *Countdown) run(onTick func(time.Duration)) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			remaining := c.Remaining()
			if onTick != nil {
				onTick(remaining)
			}
			if remaining <= 0 {
				c.Cancel()
				return
			}
		}
	}
}
