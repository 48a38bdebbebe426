package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/assemblyline/internal/schedule"
)

// Options configures a Session. Zero values pick defaults.
type Options struct {
	Config     *Config             // Defaults to DefaultConfig()
	Scheduler  *schedule.Scheduler // Required
	Rand       *rand.Rand          // Defaults to a time-seeded source
	Renderer   Renderer
	Audio      AudioPlayer
	Logger     *log.Logger
	Difficulty Difficulty // Defaults to medium
	NewID      func() string
}

// Session holds score, lives and the running/paused flags of one player,
// and owns the registry, spawner, resolver and power-up controller.
// All methods must be called from the goroutine that advances the scheduler.
type Session struct {
	cfg      Config
	sched    *schedule.Scheduler
	renderer Renderer
	audio    AudioPlayer
	logger   *log.Logger

	registry *Registry
	spawner  *Spawner
	resolver *Resolver
	powerUps *PowerUpController

	score      int
	lives      int
	running    bool
	paused     bool
	over       bool
	difficulty Difficulty
}

// NewSession wires a session around the given scheduler.
func NewSession(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("new session: scheduler is required")
	}
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	if _, err := cfg.Profile(difficulty); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NopRenderer{}
	}
	var audio AudioPlayer = nopAudio{}
	if opts.Audio != nil {
		audio = opts.Audio
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	newID := opts.NewID
	if newID == nil {
		newID = NewItemID
	}

	s := &Session{
		cfg:        cfg,
		sched:      opts.Scheduler,
		renderer:   renderer,
		audio:      audio,
		logger:     logger,
		registry:   NewRegistry(),
		lives:      cfg.InitialLives,
		difficulty: difficulty,
	}
	s.powerUps = newPowerUpController(cfg, s.sched, rng, audio, renderer)
	s.powerUps.live = s.live
	s.powerUps.sortOldest = s.autoSortOldest
	s.spawner = &Spawner{
		rng:        rng,
		newID:      newID,
		sched:      s.sched,
		registry:   s.registry,
		powerUps:   s.powerUps,
		renderer:   renderer,
		logger:     logger,
		slowFactor: cfg.SlowFactor,
		laneMargin: cfg.LaneMargin,
		live:       s.live,
		onMiss:     func(id string) { s.Miss(id) },
	}
	s.resolver = &Resolver{
		registry: s.registry,
		sched:    s.sched,
		powerUps: s.powerUps,
		scoring:  cfg.Scoring,
		renderer: renderer,
		audio:    audio,
		logger:   logger,
		addScore: s.addScore,
	}
	return s, nil
}

func (s *Session) live() bool {
	return s.running && !s.paused
}

// Start resets score, lives, items and power-ups and begins spawning.
// Restarting a running session starts a fresh game.
func (s *Session) Start() {
	for _, it := range s.registry.Items() {
		s.renderer.RemoveItem(it.ID)
	}
	s.sched.Reset()
	s.sched.Resume()
	s.registry.Clear()
	s.powerUps.Reset()

	s.score = 0
	s.lives = s.cfg.InitialLives
	s.running = true
	s.paused = false
	s.over = false

	profile, _ := s.cfg.Profile(s.difficulty)
	s.spawner.Start(profile)

	s.renderer.UpdateScore(s.score)
	s.renderer.UpdateLives(s.lives)
	s.renderer.UpdatePowerUps(s.powerUps.Statuses())
	s.logger.Info("game started", "difficulty", s.difficulty, "lives", s.lives)
}

// Pause freezes the game: no spawns, no timeouts, no power-up progress.
func (s *Session) Pause() bool {
	if !s.running || s.paused {
		return false
	}
	s.paused = true
	s.sched.Pause()
	s.logger.Debug("game paused", "score", s.score)
	return true
}

// Resume continues a paused game.
func (s *Session) Resume() bool {
	if !s.running || !s.paused {
		return false
	}
	s.paused = false
	s.sched.Resume()
	s.logger.Debug("game resumed", "score", s.score)
	return true
}

// TogglePause pauses a live game or resumes a paused one.
func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
		return
	}
	s.Pause()
}

// Sort handles a player's sort attempt. Attempts for items that are already
// gone return ErrUnknownItem and change nothing.
func (s *Session) Sort(a SortAttempt) (Outcome, error) {
	if !s.running {
		return Outcome{}, ErrNotRunning
	}
	if s.paused {
		return Outcome{}, ErrPaused
	}
	return s.resolver.Resolve(a.ItemID, a.Bin)
}

// ActivatePowerUp triggers a power-up for the player.
func (s *Session) ActivatePowerUp(k PowerUpKind) error {
	if !s.running {
		return ErrNotRunning
	}
	if s.paused {
		return ErrPaused
	}
	if err := s.powerUps.Activate(k); err != nil {
		return err
	}
	s.logger.Debug("power-up activated", "kind", k)
	return nil
}

// autoSortOldest forcibly sorts the oldest item into its own bin.
func (s *Session) autoSortOldest() {
	it, ok := s.registry.Oldest()
	if !ok {
		return
	}
	if _, err := s.resolver.Resolve(it.ID, it.Category); err != nil {
		s.logger.Debug("auto-sort skipped", "id", it.ID, "err", err)
	}
}

// Miss handles an item reaching the end of the conveyor. It is a no-op when
// the item was already resolved. Reports whether a miss was applied.
func (s *Session) Miss(id string) bool {
	if !s.running {
		return false
	}
	item, err := s.registry.Remove(id)
	if err != nil {
		return false
	}
	s.sched.Cancel(missKey(id))
	s.renderer.RemoveItem(id)

	points := s.cfg.Scoring.MissedItem
	s.addScore(points)
	s.renderer.ShowFeedback(Feedback{Kind: FeedbackMissed, Points: points, Position: item.PositionAt(s.sched.Now())})

	if s.lives > 0 {
		s.lives--
	}
	s.renderer.UpdateLives(s.lives)
	s.audio.Play(SoundMissedItem)
	s.logger.Debug("item missed", "id", id, "name", item.Name, "lives", s.lives)

	if s.lives == 0 {
		s.End()
	}
	return true
}

// End stops the game and surfaces the final score. Only the first call on a
// running session has an effect.
func (s *Session) End() {
	if !s.running {
		return
	}
	s.running = false
	s.paused = false
	s.over = true
	s.spawner.Stop()
	s.sched.Reset()
	s.sched.Resume()

	s.audio.Play(SoundGameOver)
	s.renderer.ShowGameOver(s.score)
	s.logger.Info("game over", "score", s.score, "difficulty", s.difficulty)
}

// Abandon returns to the menu: the game stops and its items are discarded
// without a final score.
func (s *Session) Abandon() {
	wasRunning := s.running
	s.running = false
	s.paused = false
	s.over = false
	s.spawner.Stop()
	s.sched.Reset()
	s.sched.Resume()
	for _, it := range s.registry.Items() {
		s.renderer.RemoveItem(it.ID)
	}
	s.registry.Clear()
	if wasRunning {
		s.logger.Info("game abandoned", "score", s.score)
	}
}

// SetDifficulty selects the profile used by the next Start.
func (s *Session) SetDifficulty(d Difficulty) error {
	if _, err := s.cfg.Profile(d); err != nil {
		return err
	}
	s.difficulty = d
	return nil
}

func (s *Session) addScore(delta int) int {
	s.score += delta
	if s.score < 0 {
		s.score = 0
	}
	s.renderer.UpdateScore(s.score)
	return s.score
}

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Running reports whether a game is in progress (paused or not).
func (s *Session) Running() bool { return s.running }

// Paused reports whether the game is paused.
func (s *Session) Paused() bool { return s.paused }

// Over reports whether the last game ended by losing every life.
func (s *Session) Over() bool { return s.over }

// Difficulty returns the selected difficulty.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Config returns the session's tuning.
func (s *Session) Config() Config { return s.cfg }

// Item looks up an in-flight item.
func (s *Session) Item(id string) (ConveyorItem, bool) { return s.registry.Get(id) }

// Items returns the in-flight items in spawn order.
func (s *Session) Items() []ConveyorItem { return s.registry.Items() }

// PowerUp returns the flags of a power-up.
func (s *Session) PowerUp(k PowerUpKind) PowerUpState { return s.powerUps.State(k) }

// PowerUps returns the renderer view of every power-up.
func (s *Session) PowerUps() []PowerUpStatus { return s.powerUps.Statuses() }

// Spawn runs one spawn tick immediately, outside the spawn interval.
func (s *Session) Spawn() (ConveyorItem, error) {
	if !s.live() {
		return ConveyorItem{}, ErrNotRunning
	}
	return s.spawner.Tick(), nil
}

// Snapshot is a read-only view of the session for renderers.
type Snapshot struct {
	Score      int
	Lives      int
	Running    bool
	Paused     bool
	Over       bool
	Difficulty Difficulty
	Now        time.Duration // Game time
	Items      []ConveyorItem
	PowerUps   []PowerUpStatus
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Score:      s.score,
		Lives:      s.lives,
		Running:    s.running,
		Paused:     s.paused,
		Over:       s.over,
		Difficulty: s.difficulty,
		Now:        s.sched.Now(),
		Items:      s.registry.Items(),
		PowerUps:   s.powerUps.Statuses(),
	}
}
