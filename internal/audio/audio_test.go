package audio

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/tomz197/assemblyline/internal/game"
)

type recordingPlayer struct {
	played []game.Sound
}

func (p *recordingPlayer) Play(s game.Sound) { p.played = append(p.played, s) }

func TestGate(t *testing.T) {
	rec := &recordingPlayer{}
	g := NewGate(rec, true)

	g.Play(game.SoundCorrectSort)
	g.SetEnabled(false)
	assert.False(t, g.Enabled())
	g.Play(game.SoundGameOver)
	g.SetEnabled(true)
	g.Play(game.SoundPowerUp)

	assert.Equal(t, []game.Sound{game.SoundCorrectSort, game.SoundPowerUp}, rec.played)
}

func TestBellRingsForSelectedSounds(t *testing.T) {
	var buf bytes.Buffer
	clock := clockwork.NewFakeClock()
	b := NewBell(&buf, clock, 200*time.Millisecond)

	b.Play(game.SoundCorrectSort)
	assert.Zero(t, buf.Len())

	b.Play(game.SoundMissedItem)
	assert.Equal(t, "\a", buf.String())
}

func TestBellIsRateLimited(t *testing.T) {
	var buf bytes.Buffer
	clock := clockwork.NewFakeClock()
	b := NewBell(&buf, clock, 200*time.Millisecond, game.SoundCorrectSort)

	b.Play(game.SoundCorrectSort)
	clock.Advance(100 * time.Millisecond)
	b.Play(game.SoundCorrectSort)
	assert.Equal(t, "\a", buf.String())

	clock.Advance(100 * time.Millisecond)
	b.Play(game.SoundCorrectSort)
	assert.Equal(t, "\a\a", buf.String())

	b.Play(game.SoundMissedItem)
	assert.Equal(t, "\a\a", buf.String(), "only the given sounds ring")
}

func TestSilent(t *testing.T) {
	assert.NotPanics(t, func() { Silent{}.Play(game.SoundGameOver) })
}
