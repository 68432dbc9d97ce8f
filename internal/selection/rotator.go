package selection

import (
	"sync"
	"time"
)

// RotationInterval is how long each gallery image stays up while the
// slideshow runs.
const RotationInterval = 2 * time.Second

// Rotator drives the gallery slideshow: a one-shot interval that stops for
// good when the tick callback reports the rotation is over. It must be
// stopped when the owning session closes or switches product, so a stale
// selection context is never mutated.
type Rotator struct {
	mu      sync.Mutex
	ticker  *time.Ticker
	done    chan struct{}
	stopped bool
}

// NewRotator starts ticking at the given interval. tick returns false when
// rotation reached its terminal state, which stops the rotator permanently.
func NewRotator(interval time.Duration, tick func() bool) *Rotator {
	r := &Rotator{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-r.done:
				return
			case <-r.ticker.C:
				if !tick() {
					r.Stop()
					return
				}
			}
		}
	}()
	return r
}

// Stop cancels the rotation. Safe to call more than once and from the tick
// goroutine itself.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	r.ticker.Stop()
	close(r.done)
}
