package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownRemainingNeverNegative(t *testing.T) {
	c := newCountdown(50*time.Millisecond, nil)
	defer c.Cancel()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, time.Duration(0), c.Remaining())
}

func TestCountdownTicksAreMonotonic(t *testing.T) {
	var mu sync.Mutex
	var seen []time.Duration

	c := newCountdown(350*time.Millisecond, func(remaining time.Duration) {
		mu.Lock()
		seen = append(seen, remaining)
		mu.Unlock()
	})
	defer c.Cancel()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == 0
	}, 2*time.Second, 10*time.Millisecond, "countdown never reached zero")

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(seen); i++ {
		assert.LessOrEqual(t, seen[i], seen[i-1], "remaining time increased between ticks")
	}
	for _, r := range seen {
		assert.GreaterOrEqual(t, r, time.Duration(0))
	}
}

func TestCountdownCancelStopsTicks(t *testing.T) {
	var mu sync.Mutex
	count := 0

	c := newCountdown(time.Hour, func(time.Duration) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	c.Cancel()
	c.Cancel() // idempotent

	time.Sleep(3 * tickInterval)
	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(3 * tickInterval)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, count, "ticks continued after cancel")
}

func TestCountdownDuration(t *testing.T) {
	c := newCountdown(42*time.Second, nil)
	defer c.Cancel()
	assert.Equal(t, 42*time.Second, c.Duration())
	assert.LessOrEqual(t, c.Remaining(), 42*time.Second)
	assert.Greater(t, c.Remaining(), 40*time.Second)
}
