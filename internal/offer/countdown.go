package offer

import (
	"sync"
	"time"
)

// Countdown ticks once a second toward an end timestamp and then stops for
// good: a one-shot interval with a terminal state, not an infinite loop
// behind a stop flag. The tick handler receives the remaining duration; the
// final tick delivers zero exactly once.
type Countdown struct {
	mu      sync.Mutex
	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
}

// NewCountdown starts ticking immediately. Stop must be called when the
// owning view goes away, otherwise the countdown stops itself after the
// zero tick.
func NewCountdown(endMs int64, onTick func(remaining time.Duration)) *Countdown {
	c := &Countdown{
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-c.done:
				return
			case <-c.ticker.C:
				remaining := Remaining(endMs, time.Now().UnixMilli())
				onTick(remaining)
				if remaining == 0 {
					c.Stop()
					return
				}
			}
		}
	}()
	return c
}

// Stop halts the countdown. Safe to call more than once and from the tick
// goroutine itself.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.ticker.Stop()
	close(c.done)
}

// Stopped reports whether the countdown reached its terminal state.
func (c *Countdown) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
