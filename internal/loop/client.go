package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/tomz197/assemblyline/internal/audio"
	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
	"github.com/tomz197/assemblyline/internal/input"
	"github.com/tomz197/assemblyline/internal/metrics"
	"github.com/tomz197/assemblyline/internal/object"
	"github.com/tomz197/assemblyline/internal/schedule"
	"github.com/tomz197/assemblyline/internal/settings"
)

// Options configures a client. Zero values pick defaults.
type Options struct {
	Player       string              // Settings key and display name
	TermSizeFunc draw.TermSizeFunc   // Defaults to the size of os.Stdout
	Settings     settings.Repository // Defaults to an in-memory repository
	Audio        game.AudioPlayer    // Defaults to silence
	Config       *game.Config        // Defaults to game.DefaultConfig()
	Clock        clockwork.Clock     // Defaults to the real clock
	Seed         uint64              // RNG seed, 0 picks a random one
	Logger       *log.Logger
	Metrics      *metrics.Metrics // Optional
	Hub          *Hub             // Optional, set by servers
}

// Client runs one player's game over a terminal byte stream: it reads
// keys, advances the session's scheduler and draws the screen each frame.
type Client struct {
	player       string
	writer       io.Writer
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	clock        clockwork.Clock
	logger       *log.Logger
	metrics      *metrics.Metrics
	hub          *Hub
	handle       *Handle
	repo         settings.Repository
	sound        *audio.Gate

	sched    *schedule.Scheduler
	session  *game.Session
	view     *Renderer
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	tooSmall bool

	screen      Screen
	settings    settings.Settings
	settingsRow settingsRow
	best        int
	selected    string // Item ID under the cursor

	status     string
	statusLeft time.Duration

	lastInput    time.Time
	inactive     bool
	autoPaused   bool
	shutdownLeft time.Duration
	running      bool
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	repo := opts.Settings
	if repo == nil {
		repo = settings.NewMemory()
	}
	var player game.AudioPlayer = audio.Silent{}
	if opts.Audio != nil {
		player = opts.Audio
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1))
	}

	view := NewRenderer()
	sound := audio.NewGate(player, true)
	sched := schedule.New(clock)
	session, err := game.NewSession(game.Options{
		Config:    opts.Config,
		Scheduler: sched,
		Rand:      rng,
		Renderer:  metrics.NewRenderer(view, opts.Metrics),
		Audio:     sound,
		Logger:    logger.With("player", opts.Player),
	})
	if err != nil {
		return nil, fmt.Errorf("new client: %w", err)
	}

	return &Client{
		player:       opts.Player,
		writer:       w,
		stream:       input.StartStream(r),
		termSizeFunc: termSizeFunc,
		clock:        clock,
		logger:       logger,
		metrics:      opts.Metrics,
		hub:          opts.Hub,
		repo:         repo,
		sound:        sound,
		sched:        sched,
		session:      session,
		view:         view,
		canvas:       draw.NewCanvas(0, 0),
		cw:           draw.NewChunkWriter(w, 0, 0),
		screen:       ScreenStart,
		settings:     settings.Defaults(),
		lastInput:    clock.Now(),
		running:      true,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the input
// stream closes, the player idles out, the server shutdown notice runs out
// or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	c.loadSettings(ctx)
	if c.hub != nil {
		c.handle = c.hub.Register(c.player)
		defer c.hub.Unregister(c.handle.ID)
	}

	draw.EnterAltScreen(c.writer)
	draw.HideCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.ShowCursor(c.writer)
		draw.ExitAltScreen(c.writer)
	}()

	ticker := c.clock.NewTicker(TargetFrameTime)
	defer ticker.Stop()
	last := c.clock.Now()

	for c.running {
		select {
		case <-ctx.Done():
			c.leaveGame()
			return nil
		case <-ticker.Chan():
		}

		now := c.clock.Now()
		delta := now.Sub(last)
		last = now

		c.Frame(ctx, input.ReadInput(c.stream), delta)
		if err := c.cw.Flush(); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}

	c.leaveGame()
	return nil
}

// Frame runs one Input -> Update -> Draw cycle with the given input.
func (c *Client) Frame(ctx context.Context, in input.Input, delta time.Duration) {
	c.processInput(in)
	c.processServerEvents()
	c.updateScreen()

	switch c.screen {
	case ScreenStart:
		c.updateStartState(ctx, in)
	case ScreenSettings:
		c.updateSettingsState(ctx, in)
	case ScreenPlaying:
		c.updatePlayingState(ctx, in)
	case ScreenGameOver:
		c.updateGameOverState(ctx, in)
	case ScreenShutdown:
		c.updateShutdownState(delta)
	}

	c.sched.Advance()
	if c.screen == ScreenPlaying && c.session.Over() {
		c.finishGame(ctx)
	}

	if c.statusLeft > 0 {
		c.statusLeft -= delta
	}
	if err := c.view.Update(object.UpdateContext{Delta: delta, Now: c.sched.Now()}); err != nil {
		c.logger.Warn("update objects", "err", err)
	}

	c.drawFrame()
}

// processInput tracks activity and handles the keys that work on every screen.
func (c *Client) processInput(in input.Input) {
	now := c.clock.Now()
	if in.Active {
		c.lastInput = now
		c.inactive = false
		if c.autoPaused {
			c.autoPaused = false
			c.setStatus("Welcome back! Press P to resume")
		}
	} else if idle := now.Sub(c.lastInput); idle > InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player", "player", c.player, "idle", idle.Round(time.Second))
		c.running = false
	} else if idle > InactivityWarnUser && !c.inactive {
		c.inactive = true
		if c.session.Pause() {
			c.autoPaused = true
		}
	}

	if in.Closed || in.Has(input.CmdQuit) {
		c.running = false
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event := <-c.handle.Events:
			if event.Type == EventServerShutdown && c.screen != ScreenShutdown {
				c.leaveGame()
				c.screen = ScreenShutdown
				c.shutdownLeft = ShutdownDisplayTime
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to the max render size.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	width, height, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight, MaxTermWidth, MaxTermHeight)
	if width != c.canvas.Width() || height != c.canvas.Height() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		// Clear residue outside the new render area.
		draw.ClearScreen(c.cw)
	}
	c.canvas.Resize(width, height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.tooSmall = width < MinTermWidth || height < MinTermHeight
}

// loadSettings applies the stored settings. Failures keep the defaults.
func (c *Client) loadSettings(ctx context.Context) {
	s, err := c.repo.Load(ctx, c.player)
	if err != nil {
		c.logger.Warn("load settings, using defaults", "player", c.player, "err", err)
	}
	c.applySettings(s)
}

func (c *Client) applySettings(s settings.Settings) {
	if err := c.session.SetDifficulty(s.Difficulty); err != nil {
		c.logger.Warn("stored difficulty rejected", "difficulty", s.Difficulty, "err", err)
		s.Difficulty = c.session.Difficulty()
	}
	c.settings = s
	c.sound.SetEnabled(s.SoundEnabled)
}

// saveSettings stores the current settings. Failures are logged only.
func (c *Client) saveSettings(ctx context.Context) {
	if err := c.repo.Save(ctx, c.player, c.settings); err != nil {
		c.logger.Warn("save settings", "player", c.player, "err", err)
	}
}

func (c *Client) toggleSound(ctx context.Context) {
	c.settings.SoundEnabled = !c.settings.SoundEnabled
	c.sound.SetEnabled(c.settings.SoundEnabled)
	c.saveSettings(ctx)
	if c.settings.SoundEnabled {
		c.setStatus("Sound on")
	} else {
		c.setStatus("Sound off")
	}
}

// startGame starts a fresh game with the selected difficulty.
func (c *Client) startGame() {
	c.view.Reset()
	c.selected = ""
	c.inactive = false
	c.autoPaused = false
	c.status = ""
	c.session.Start()
	c.screen = ScreenPlaying
}

// finishGame moves to the game over screen and records the score.
func (c *Client) finishGame(ctx context.Context) {
	c.screen = ScreenGameOver
	score := c.session.Score()
	best, err := c.repo.RecordScore(ctx, c.player, score)
	if err != nil {
		c.logger.Warn("record score", "player", c.player, "score", score, "err", err)
		best = max(c.best, score)
	}
	c.best = best
}

// leaveGame abandons a game in progress.
func (c *Client) leaveGame() {
	if !c.session.Running() {
		return
	}
	c.session.Abandon()
	if c.metrics != nil {
		c.metrics.Abandoned()
	}
}

func (c *Client) setStatus(s string) {
	c.status = s
	c.statusLeft = statusDisplayTime
}

// selectedItem returns the item under the cursor, falling back to the
// oldest item on the conveyor.
func (c *Client) selectedItem() (game.ConveyorItem, bool) {
	if it, ok := c.session.Item(c.selected); ok {
		return it, true
	}
	items := c.session.Items()
	if len(items) == 0 {
		c.selected = ""
		return game.ConveyorItem{}, false
	}
	c.selected = items[0].ID
	return items[0], true
}

// moveSelection moves the cursor by step items in spawn order.
func (c *Client) moveSelection(step int) {
	items := c.session.Items()
	if len(items) == 0 {
		return
	}
	cur, _ := c.selectedItem()
	idx := 0
	for i, it := range items {
		if it.ID == cur.ID {
			idx = i
			break
		}
	}
	idx = min(max(idx+step, 0), len(items)-1)
	c.selected = items[idx].ID
}

// sort sends the selected item to the bin of category.
func (c *Client) sort(category game.Category) {
	it, ok := c.selectedItem()
	if !ok {
		return
	}
	out, err := c.session.Sort(game.SortAttempt{ItemID: it.ID, Bin: category})
	switch {
	case err == nil:
		if b := c.view.Bin(category); b != nil {
			b.Flash(out.Correct)
		}
		c.selected = ""
	case errors.Is(err, game.ErrUnknownItem):
		// Resolved by the auto-sort loop or a miss in the same frame.
	default:
		c.logger.Debug("sort rejected", "err", err)
	}
}

// activate triggers a power-up and explains a refusal on the status line.
func (c *Client) activate(k game.PowerUpKind) {
	err := c.session.ActivatePowerUp(k)
	switch {
	case err == nil:
		c.setStatus(powerUpName(k) + " activated!")
	case errors.Is(err, game.ErrOnCooldown):
		c.setStatus(powerUpName(k) + " is cooling down")
	case errors.Is(err, game.ErrUnavailable):
		c.setStatus(powerUpName(k) + " is not available yet")
	default:
		c.logger.Debug("power-up rejected", "kind", k, "err", err)
	}
}

// Screen returns the client's current screen.
func (c *Client) Screen() Screen { return c.screen }

// Session returns the client's game session.
func (c *Client) Session() *game.Session { return c.session }

// Running reports whether the client loop is still going.
func (c *Client) Running() bool { return c.running }

// Canvas returns the canvas drawn by the last frame.
func (c *Client) Canvas() *draw.Canvas { return c.canvas }
