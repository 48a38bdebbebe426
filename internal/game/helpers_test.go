package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/assemblyline/internal/schedule"
)

// recorder captures every renderer and audio call.
type recorder struct {
	shown     []string
	removed   []string
	feedback  []Feedback
	scores    []int
	lives     []int
	powerUps  [][]PowerUpStatus
	gameOvers []int
	sounds    []Sound
}

func (r *recorder) ShowItem(it ConveyorItem)              { r.shown = append(r.shown, it.ID) }
func (r *recorder) RemoveItem(id string)                  { r.removed = append(r.removed, id) }
func (r *recorder) ShowFeedback(fb Feedback)              { r.feedback = append(r.feedback, fb) }
func (r *recorder) UpdateScore(score int)                 { r.scores = append(r.scores, score) }
func (r *recorder) UpdateLives(lives int)                 { r.lives = append(r.lives, lives) }
func (r *recorder) UpdatePowerUps(states []PowerUpStatus) { r.powerUps = append(r.powerUps, states) }
func (r *recorder) ShowGameOver(finalScore int)           { r.gameOvers = append(r.gameOvers, finalScore) }
func (r *recorder) Play(sound Sound)                      { r.sounds = append(r.sounds, sound) }

func (r *recorder) count(sound Sound) int {
	n := 0
	for _, s := range r.sounds {
		if s == sound {
			n++
		}
	}
	return n
}

func (r *recorder) lastSound() Sound {
	if len(r.sounds) == 0 {
		return ""
	}
	return r.sounds[len(r.sounds)-1]
}

type harness struct {
	session *Session
	sched   *schedule.Scheduler
	clock   *clockwork.FakeClock
	rec     *recorder
	ids     int
}

// quiet stretches every spawn interval so tests place items by hand.
func quiet(cfg *Config) {
	for d, p := range cfg.Profiles {
		p.SpawnInterval = time.Hour
		cfg.Profiles[d] = p
	}
}

func newHarness(t *testing.T, mutate ...func(*Config)) *harness {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	h := &harness{
		clock: clockwork.NewFakeClock(),
		rec:   &recorder{},
	}
	h.sched = schedule.New(h.clock)
	s, err := NewSession(Options{
		Config:    &cfg,
		Scheduler: h.sched,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Renderer:  h.rec,
		Audio:     h.rec,
	})
	require.NoError(t, err)
	h.session = s
	return h
}

// advance moves real and game time forward and runs due timers.
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.sched.Advance()
}

// place puts an item of the given category on the conveyor at the current
// game time, with the travel time of the selected difficulty.
func (h *harness) place(t *testing.T, name string, c Category) ConveyorItem {
	t.Helper()
	p, err := h.session.cfg.Profile(h.session.difficulty)
	require.NoError(t, err)
	h.ids++
	it := ConveyorItem{
		ID:             name,
		Category:       c,
		Name:           name,
		LaneOffset:     0.5,
		TravelDuration: p.ItemSpeed,
		SpawnedAt:      h.sched.Now(),
		Seq:            uint64(h.ids),
	}
	require.NoError(t, h.session.spawner.place(it))
	return it
}
