// Package audio plays the game's named sounds: synthesized effects on the
// local sound device, a rate-limited terminal bell for remote sessions, and
// a gate that honours the player's sound setting.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tomz197/assemblyline/internal/game"
)

// Silent drops every sound. It stands in when no sound device is available.
type Silent struct{}

func (Silent) Play(game.Sound) {}

// Gate forwards sounds to another player while sound is enabled.
type Gate struct {
	next    game.AudioPlayer
	enabled atomic.Bool
}

// NewGate wraps next. Sound starts enabled or not as given.
func NewGate(next game.AudioPlayer, enabled bool) *Gate {
	g := &Gate{next: next}
	g.enabled.Store(enabled)
	return g
}

// Play forwards sound when enabled.
func (g *Gate) Play(sound game.Sound) {
	if g.enabled.Load() {
		g.next.Play(sound)
	}
}

// SetEnabled turns sound on or off.
func (g *Gate) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

// Enabled reports whether sounds are forwarded.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}

// DefaultBellSounds are the sounds worth interrupting a remote player for.
var DefaultBellSounds = []game.Sound{game.SoundIncorrectSort, game.SoundMissedItem, game.SoundGameOver}

// Bell rings the terminal bell for selected sounds, at most once per interval.
type Bell struct {
	mu       sync.Mutex
	w        io.Writer
	clock    clockwork.Clock
	interval time.Duration
	sounds   map[game.Sound]bool
	last     time.Time
}

// NewBell creates a bell writing BEL to w. With no sounds given it rings
// for DefaultBellSounds.
func NewBell(w io.Writer, clock clockwork.Clock, interval time.Duration, sounds ...game.Sound) *Bell {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if len(sounds) == 0 {
		sounds = DefaultBellSounds
	}
	set := make(map[game.Sound]bool, len(sounds))
	for _, s := range sounds {
		set[s] = true
	}
	return &Bell{w: w, clock: clock, interval: interval, sounds: set}
}

// Play rings the bell. Write errors are ignored: a bell is never worth
// failing a frame for.
func (b *Bell) Play(sound game.Sound) {
	if !b.sounds[sound] {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock.Now()
	if !b.last.IsZero() && now.Sub(b.last) < b.interval {
		return
	}
	b.last = now
	_, _ = io.WriteString(b.w, "\a")
}

var (
	_ game.AudioPlayer = Silent{}
	_ game.AudioPlayer = (*Gate)(nil)
	_ game.AudioPlayer = (*Bell)(nil)
)
