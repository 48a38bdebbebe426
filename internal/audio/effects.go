package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/assemblyline/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.5
)

type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveTriangle
)

// note is one step of a sound recipe.
type note struct {
	freq     float64
	duration time.Duration
	wave     waveform
}

// recipes describes every sound as a short sequence of notes.
var recipes = map[game.Sound][]note{
	game.SoundCorrectSort: {
		{660, 70 * time.Millisecond, waveSine},
		{880, 110 * time.Millisecond, waveSine},
	},
	game.SoundIncorrectSort: {
		{180, 220 * time.Millisecond, waveSquare},
	},
	game.SoundMissedItem: {
		{440, 120 * time.Millisecond, waveTriangle},
		{330, 180 * time.Millisecond, waveTriangle},
	},
	game.SoundPowerUp: {
		{523.25, 60 * time.Millisecond, waveSine},
		{659.25, 60 * time.Millisecond, waveSine},
		{783.99, 60 * time.Millisecond, waveSine},
		{1046.5, 140 * time.Millisecond, waveSine},
	},
	game.SoundGameOver: {
		{392, 220 * time.Millisecond, waveTriangle},
		{329.63, 220 * time.Millisecond, waveTriangle},
		{261.63, 450 * time.Millisecond, waveTriangle},
	},
}

// Effect returns a fresh streamer for sound, or false for unknown sounds.
func Effect(sound game.Sound) (beep.Streamer, bool) {
	notes, ok := recipes[sound]
	if !ok {
		return nil, false
	}
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, newTone(sampleRate, n))
	}
	return beep.Seq(streamers...), true
}

// Length returns the number of samples of sound.
func Length(sound game.Sound) int {
	total := 0
	for _, n := range recipes[sound] {
		total += sampleRate.N(n.duration)
	}
	return total
}

// tone generates a single note with a linear attack and release.
type tone struct {
	sr      beep.SampleRate
	freq    float64
	wave    waveform
	total   int
	attack  int
	release int
	pos     int
}

func newTone(sr beep.SampleRate, n note) *tone {
	total := sr.N(n.duration)
	return &tone{
		sr:      sr,
		freq:    n.freq,
		wave:    n.wave,
		total:   total,
		attack:  min(sr.N(5*time.Millisecond), total/4),
		release: min(sr.N(30*time.Millisecond), total/2),
	}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			break
		}
		t := float64(g.pos) / float64(g.sr)
		sample := volume * g.envelope() * g.oscillate(t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
		n++
	}
	return n, true
}

func (g *tone) Err() error {
	return nil
}

func (g *tone) oscillate(t float64) float64 {
	phase := math.Mod(g.freq*t, 1)
	switch g.wave {
	case waveSquare:
		if phase < 0.5 {
			return 0.4
		}
		return -0.4
	case waveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func (g *tone) envelope() float64 {
	switch {
	case g.attack > 0 && g.pos < g.attack:
		return float64(g.pos) / float64(g.attack)
	case g.release > 0 && g.pos >= g.total-g.release:
		return float64(g.total-g.pos) / float64(g.release)
	default:
		return 1
	}
}
