package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/assemblyline/internal/game"
)

func drain(t *testing.T, sound game.Sound) [][2]float64 {
	t.Helper()
	s, ok := Effect(sound)
	require.True(t, ok)

	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return out
}

func TestEveryGameSoundHasAnEffect(t *testing.T) {
	for _, sound := range game.Sounds {
		t.Run(string(sound), func(t *testing.T) {
			samples := drain(t, sound)
			assert.Len(t, samples, Length(sound))

			peak := 0.0
			for _, s := range samples {
				assert.False(t, math.IsNaN(s[0]))
				assert.Equal(t, s[0], s[1], "effects are mono")
				peak = math.Max(peak, math.Abs(s[0]))
			}
			assert.LessOrEqual(t, peak, volume+1e-9)
			assert.Greater(t, peak, 0.1, "effect must be audible")
		})
	}
}

func TestEffectsStartAndEndSilent(t *testing.T) {
	samples := drain(t, game.SoundIncorrectSort)
	require.NotEmpty(t, samples)
	assert.InDelta(t, 0, samples[0][0], 1e-9)
	assert.Less(t, math.Abs(samples[len(samples)-1][0]), 0.01)
}

func TestUnknownEffect(t *testing.T) {
	_, ok := Effect("fanfare")
	assert.False(t, ok)
	assert.Zero(t, Length("fanfare"))
}

func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager()
	assert.NotPanics(t, func() {
		for _, s := range game.Sounds {
			sm.Play(s)
		}
		sm.Cleanup()
	})
}
