package timer

import (
	"sync"
	"time"
)

const tickInterval = time.Second

// DurationClock derives a live elapsed-seconds value for the running entry.
// While running it emits one reading per second on Ticks; while idle the
// elapsed value is always 0. At most one ticker goroutine exists at a time,
// and it is torn down on every transition out of the running state.
type DurationClock struct {
	mu       sync.Mutex
	now      func() time.Time
	interval time.Duration
	start    time.Time
	running  bool
	cancel   chan struct{}
	ticks    chan int
}

func NewDurationClock() *DurationClock {
	return &DurationClock{
		now:      time.Now,
		interval: tickInterval,
		ticks:    make(chan int, 1),
	}
}

// Start binds the clock to a running entry's start time and begins ticking.
// A previous ticker, if any, is cancelled first.
func (c *DurationClock) Start(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.start = start
	c.running = true

	cancel := make(chan struct{})
	c.cancel = cancel
	go c.run(cancel)
}

// Stop cancels the ticker and resets the elapsed value to 0. The zero
// reading is emitted here, not from the ticker goroutine, so a Stop
// immediately followed by Start can never deliver a late 0 on top of the
// new ticker's readings.
func (c *DurationClock) Stop() {
	c.mu.Lock()
	c.cancelLocked()
	c.running = false
	c.mu.Unlock()
	c.emit(0)
}

func (c *DurationClock) cancelLocked() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

// Elapsed returns whole seconds since the bound start time, 0 when idle.
func (c *DurationClock) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return 0
	}
	return int(c.now().Sub(c.start) / time.Second)
}

// Running reports whether the clock is currently bound to an entry.
func (c *DurationClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Ticks delivers the per-second elapsed readings. A final 0 is emitted when
// the clock stops so displays reset immediately.
func (c *DurationClock) Ticks() <-chan int {
	return c.ticks
}

func (c *DurationClock) run(cancel chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			select {
			case <-cancel:
				return
			default:
			}
			// Elapsed re-checks under the lock, so a tick racing a Stop
			// emits 0, never a stale live reading.
			c.emit(c.Elapsed())
		}
	}
}

// emit never blocks; a slow consumer just observes the latest reading.
func (c *DurationClock) emit(elapsed int) {
	select {
	case c.ticks <- elapsed:
	default:
		select {
		case <-c.ticks:
		default:
		}
		select {
		case c.ticks <- elapsed:
		default:
		}
	}
}
