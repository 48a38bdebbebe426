// Package schedule provides a pause-aware virtual-time timer service.
//
// All callbacks run on the goroutine that calls Advance, one at a time and
// in deadline order, so game code driven by a Scheduler never needs locks.
package schedule

import (
	"container/heap"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrInvalidInterval is returned when a repeating timer is armed with a
// non-positive interval.
var ErrInvalidInterval = errors.New("schedule: interval must be positive")

// Key identifies a timer. Arming a key that is already pending replaces it.
// The empty key is anonymous and never replaces anything.
type Key string

// Scheduler owns every timer of a game session.
// It is not safe for concurrent use.
type Scheduler struct {
	clock clockwork.Clock

	// Game time bookkeeping
	now      time.Duration // Game time reported to callers
	target   time.Duration // Game time sampled from the clock
	lastReal time.Time     // Last sampled real time
	paused   bool

	seq     uint64
	queue   timerQueue
	pending map[Key]*timer
}

type timer struct {
	key      Key
	deadline time.Duration
	interval time.Duration // 0 for one-shot timers
	seq      uint64
	fn       func()
	index    int
}

// New creates a scheduler that measures game time with the given clock.
func New(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:    clock,
		lastReal: clock.Now(),
		pending:  make(map[Key]*timer),
	}
}

// Now returns the game time as of the last Advance. Inside a callback it is
// the callback's own deadline.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After arms a one-shot timer firing d after the current game time.
func (s *Scheduler) After(key Key, d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.arm(key, s.now+d, 0, fn)
}

// Every arms a repeating timer. The first firing happens one interval from now.
func (s *Scheduler) Every(key Key, interval time.Duration, fn func()) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	s.arm(key, s.now+interval, interval, fn)
	return nil
}

func (s *Scheduler) arm(key Key, deadline, interval time.Duration, fn func()) {
	if key != "" {
		s.Cancel(key)
	}
	s.seq++
	t := &timer{
		key:      key,
		deadline: deadline,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	if key != "" {
		s.pending[key] = t
	}
}

// Cancel stops the timer armed under key. Reports whether one was pending.
func (s *Scheduler) Cancel(key Key) bool {
	t, ok := s.pending[key]
	if !ok {
		return false
	}
	delete(s.pending, key)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// Pending reports whether a timer is armed under key.
func (s *Scheduler) Pending(key Key) bool {
	_, ok := s.pending[key]
	return ok
}

// Len returns the number of armed timers, anonymous ones included.
func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// Reset cancels every timer. Game time keeps its value.
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = s.queue[:0]
	clear(s.pending)
}

// Pause freezes game time. Timers do not fire until Resume.
func (s *Scheduler) Pause() {
	if s.paused {
		return
	}
	s.sync()
	s.paused = true
}

// Resume continues game time from where Pause left it.
func (s *Scheduler) Resume() {
	if !s.paused {
		return
	}
	s.lastReal = s.clock.Now()
	s.paused = false
}

// Paused reports whether game time is frozen.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// sync folds elapsed real time into game time and returns the target.
func (s *Scheduler) sync() time.Duration {
	wall := s.clock.Now()
	if !s.paused {
		if elapsed := wall.Sub(s.lastReal); elapsed > 0 {
			s.target += elapsed
		}
	}
	s.lastReal = wall
	return s.target
}

// Advance samples the clock and runs every callback that is due, in
// deadline order. Returns the number of callbacks run.
func (s *Scheduler) Advance() int {
	target := s.sync()
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.deadline > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = next.deadline

		if next.interval > 0 {
			// Re-arm before running so the callback may cancel it
			s.seq++
			next.deadline += next.interval
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else if next.key != "" {
			delete(s.pending, next.key)
		}

		next.fn()
		fired++
	}
	s.now = target
	return fired
}

// timerQueue orders timers by deadline, then by arm order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline != q[j].deadline {
		return q[i].deadline < q[j].deadline
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
