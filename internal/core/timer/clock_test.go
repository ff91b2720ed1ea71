package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedWhileRunning(t *testing.T) {
	clock := NewDurationClock()
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	clock.now = func() time.Time { return now }
	// Very long interval keeps the ticker goroutine quiet during the test.
	clock.interval = time.Hour

	clock.Start(now.Add(-125 * time.Second))
	defer clock.Stop()

	assert.Equal(t, 125, clock.Elapsed())
	assert.True(t, clock.Running())
}

func TestElapsedZeroWhileIdle(t *testing.T) {
	clock := NewDurationClock()
	assert.Equal(t, 0, clock.Elapsed())
	assert.False(t, clock.Running())

	clock.Start(time.Now().Add(-10 * time.Second))
	clock.Stop()
	assert.Equal(t, 0, clock.Elapsed())
}

func TestTicksDeliverElapsedReadings(t *testing.T) {
	clock := NewDurationClock()
	clock.interval = 5 * time.Millisecond

	clock.Start(time.Now())
	defer clock.Stop()

	select {
	case elapsed := <-clock.Ticks():
		assert.GreaterOrEqual(t, elapsed, 0)
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}
}

func TestStopEmitsZeroAndSilencesTicker(t *testing.T) {
	clock := NewDurationClock()
	clock.interval = 5 * time.Millisecond

	clock.Start(time.Now().Add(-time.Minute))

	// Wait for at least one live tick.
	select {
	case <-clock.Ticks():
	case <-time.After(time.Second):
		t.Fatal("no tick delivered")
	}

	clock.Stop()

	// The final reading after a stop is the reset-to-zero value.
	deadline := time.After(time.Second)
	var last int
	for {
		select {
		case last = <-clock.Ticks():
			if last == 0 {
				goto silenced
			}
		case <-deadline:
			t.Fatalf("never observed the zero reset, last reading %d", last)
		}
	}

silenced:
	// After the reset, no live reading may arrive; anything still in
	// flight from the torn-down ticker reads as 0.
	select {
	case extra := <-clock.Ticks():
		assert.Zero(t, extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRestartAfterStopNeverResetsDisplay(t *testing.T) {
	clock := NewDurationClock()
	// A quiet ticker isolates the stop reading: the only emission from the
	// first generation is Stop's synchronous zero.
	clock.interval = time.Hour
	clock.Start(time.Now())
	clock.Stop()
	require.Equal(t, 0, <-clock.Ticks())

	clock.interval = 5 * time.Millisecond
	clock.Start(time.Now().Add(-30 * time.Second))
	defer clock.Stop()

	// Every reading after the restart reflects the new session; the old
	// generation's reset must never surface here.
	for i := 0; i < 3; i++ {
		select {
		case elapsed := <-clock.Ticks():
			assert.GreaterOrEqual(t, elapsed, 29)
		case <-time.After(time.Second):
			t.Fatal("no tick delivered after restart")
		}
	}
}

func TestRestartReplacesTicker(t *testing.T) {
	clock := NewDurationClock()
	clock.interval = 5 * time.Millisecond

	// Repeated start/stop cycles must not leak tickers or panic.
	for i := 0; i < 5; i++ {
		clock.Start(time.Now())
		clock.Stop()
	}

	clock.Start(time.Now().Add(-30 * time.Second))
	defer clock.Stop()

	select {
	case elapsed := <-clock.Ticks():
		require.GreaterOrEqual(t, elapsed, 0)
	case <-time.After(time.Second):
		t.Fatal("clock did not tick after restart cycles")
	}
}
