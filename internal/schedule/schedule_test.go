package schedule

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() (*Scheduler, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return New(clock), clock
}

func TestAfterFiresAtDeadline(t *testing.T) {
	s, clock := newTestScheduler()

	var firedAt time.Duration
	fired := 0
	s.After("miss:1", 2*time.Second, func() {
		fired++
		firedAt = s.Now()
	})

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, s.Advance())
	assert.True(t, s.Pending("miss:1"))

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Advance())
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2*time.Second, firedAt)
	assert.False(t, s.Pending("miss:1"))

	clock.Advance(10 * time.Second)
	s.Advance()
	assert.Equal(t, 1, fired, "one-shot timers fire once")
}

func TestCallbacksRunInDeadlineOrder(t *testing.T) {
	s, clock := newTestScheduler()

	var order []string
	s.After("c", 3*time.Second, func() { order = append(order, "c") })
	s.After("a", time.Second, func() { order = append(order, "a") })
	s.After("b", 2*time.Second, func() { order = append(order, "b") })
	s.After("a2", time.Second, func() { order = append(order, "a2") })

	clock.Advance(5 * time.Second)
	assert.Equal(t, 4, s.Advance())
	assert.Equal(t, []string{"a", "a2", "b", "c"}, order)
}

func TestNowInsideCallbackIsDeadline(t *testing.T) {
	s, clock := newTestScheduler()

	var chained time.Duration
	s.After("first", time.Second, func() {
		s.After("second", 500*time.Millisecond, func() {
			chained = s.Now()
		})
	})

	clock.Advance(10 * time.Second)
	s.Advance()
	assert.Equal(t, 1500*time.Millisecond, chained)
	assert.Equal(t, 10*time.Second, s.Now())
}

func TestRearmingKeyReplacesTimer(t *testing.T) {
	s, clock := newTestScheduler()

	var got []int
	s.After("k", time.Second, func() { got = append(got, 1) })
	s.After("k", 3*time.Second, func() { got = append(got, 2) })
	assert.Equal(t, 1, s.Len())

	clock.Advance(5 * time.Second)
	s.Advance()
	assert.Equal(t, []int{2}, got)
}

func TestCancel(t *testing.T) {
	s, clock := newTestScheduler()

	fired := false
	s.After("k", time.Second, func() { fired = true })
	assert.True(t, s.Cancel("k"))
	assert.False(t, s.Cancel("k"))

	clock.Advance(2 * time.Second)
	s.Advance()
	assert.False(t, fired)
	assert.Equal(t, 0, s.Len())
}

func TestEveryRepeatsUntilCancelled(t *testing.T) {
	s, clock := newTestScheduler()

	var ticks []time.Duration
	require.NoError(t, s.Every("tick", time.Second, func() {
		ticks = append(ticks, s.Now())
		if len(ticks) == 3 {
			s.Cancel("tick")
		}
	}))

	clock.Advance(10 * time.Second)
	s.Advance()
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, ticks)
	assert.False(t, s.Pending("tick"))
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	s, _ := newTestScheduler()
	assert.ErrorIs(t, s.Every("tick", 0, func() {}), ErrInvalidInterval)
	assert.ErrorIs(t, s.Every("tick", -time.Second, func() {}), ErrInvalidInterval)
}

func TestPauseFreezesGameTime(t *testing.T) {
	s, clock := newTestScheduler()

	fired := false
	s.After("miss:1", 2*time.Second, func() { fired = true })

	clock.Advance(time.Second)
	s.Advance()
	s.Pause()
	assert.True(t, s.Paused())

	clock.Advance(time.Minute)
	s.Advance()
	assert.False(t, fired, "paused timers must not fire")
	assert.Equal(t, time.Second, s.Now())

	s.Resume()
	clock.Advance(999 * time.Millisecond)
	s.Advance()
	assert.False(t, fired)

	clock.Advance(time.Millisecond)
	s.Advance()
	assert.True(t, fired)
	assert.Equal(t, 2*time.Second, s.Now())
}

func TestResetCancelsEverything(t *testing.T) {
	s, clock := newTestScheduler()

	fired := 0
	s.After("a", time.Second, func() { fired++ })
	s.After("", time.Second, func() { fired++ })
	require.NoError(t, s.Every("b", time.Second, func() { fired++ }))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Pending("a"))

	clock.Advance(5 * time.Second)
	s.Advance()
	assert.Equal(t, 0, fired)

	// Keys are reusable after a reset
	s.After("a", time.Second, func() { fired++ })
	clock.Advance(time.Second)
	s.Advance()
	assert.Equal(t, 1, fired)
}

func TestCallbackMayCancelLaterTimer(t *testing.T) {
	s, clock := newTestScheduler()

	fired := false
	s.After("deactivate", time.Second, func() { s.Cancel("loop") })
	require.NoError(t, s.Every("loop", time.Second, func() { fired = true }))

	clock.Advance(3 * time.Second)
	s.Advance()
	assert.False(t, fired, "earlier-armed timer wins a deadline tie")
}
