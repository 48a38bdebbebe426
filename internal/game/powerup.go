package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tomz197/assemblyline/internal/schedule"
)

// PowerUpKind identifies a power-up.
type PowerUpKind int

const (
	PowerUpSlow PowerUpKind = iota
	PowerUpAutoSort
	PowerUpBonus

	powerUpKindCount = 3
)

// PowerUpKinds lists every power-up in display order.
var PowerUpKinds = []PowerUpKind{PowerUpSlow, PowerUpAutoSort, PowerUpBonus}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSlow:
		return "slow"
	case PowerUpAutoSort:
		return "autoSort"
	case PowerUpBonus:
		return "bonus"
	default:
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
}

func (k PowerUpKind) valid() bool {
	return k >= PowerUpSlow && k <= PowerUpBonus
}

// Phase is the derived state machine position of a power-up.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCoolingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCoolingDown:
		return "cooling down"
	default:
		return "idle"
	}
}

// PowerUpState holds the two independent flags of a power-up.
// Active is only ever set while OnCooldown is false at that instant, and
// OnCooldown is set at the same time.
type PowerUpState struct {
	Active     bool
	OnCooldown bool
}

// Phase derives the state machine position from the flags.
func (s PowerUpState) Phase() Phase {
	switch {
	case s.Active:
		return PhaseActive
	case s.OnCooldown:
		return PhaseCoolingDown
	default:
		return PhaseIdle
	}
}

// PowerUpStatus is the renderer view of a power-up.
type PowerUpStatus struct {
	Kind        PowerUpKind
	State       PowerUpState
	Enabled     bool          // Player may trigger it
	Ready       bool          // Highlighted by a spawn offer
	ActiveUntil time.Duration // Game time the activation window closes
	CooldownEnd time.Duration // Game time the cooldown clears
}

type powerUp struct {
	cfg         PowerUpConfig
	state       PowerUpState
	enabled     bool
	ready       bool
	activeUntil time.Duration
	cooldownEnd time.Duration
}

// PowerUpController runs the slow, auto-sort and bonus power-ups, each with
// its own activation window and cooldown armed on the scheduler.
type PowerUpController struct {
	sched    *schedule.Scheduler
	rng      *rand.Rand
	audio    AudioPlayer
	renderer Renderer

	kinds            [powerUpKindCount]powerUp
	autoSortInterval time.Duration

	live       func() bool // Session running and unpaused
	sortOldest func()      // Auto-sort step
}

var powerUpKeys = [powerUpKindCount]string{
	PowerUpSlow:     "slow",
	PowerUpAutoSort: "autoSort",
	PowerUpBonus:    "bonus",
}

func deactivateKey(k PowerUpKind) schedule.Key {
	return schedule.Key("powerup:" + powerUpKeys[k] + ":deactivate")
}

func cooldownKey(k PowerUpKind) schedule.Key {
	return schedule.Key("powerup:" + powerUpKeys[k] + ":cooldown")
}

const autoSortKey schedule.Key = "powerup:autoSort:tick"

func newPowerUpController(cfg Config, sched *schedule.Scheduler, rng *rand.Rand, audio AudioPlayer, renderer Renderer) *PowerUpController {
	c := &PowerUpController{
		sched:            sched,
		rng:              rng,
		audio:            audio,
		renderer:         renderer,
		autoSortInterval: cfg.AutoSortInterval,
		live:             func() bool { return true },
		sortOldest:       func() {},
	}
	for _, k := range PowerUpKinds {
		c.kinds[k].cfg = cfg.PowerUps[k]
	}
	c.Reset()
	return c
}

// Reset returns every power-up to Idle and enabled. Pending timers are
// left to the caller, which resets the scheduler as a whole.
func (c *PowerUpController) Reset() {
	for _, k := range PowerUpKinds {
		p := &c.kinds[k]
		p.state = PowerUpState{}
		p.enabled = true
		p.ready = false
		p.activeUntil = 0
		p.cooldownEnd = 0
	}
}

// IsActive reports whether the power-up's activation window is open.
func (c *PowerUpController) IsActive(k PowerUpKind) bool {
	return k.valid() && c.kinds[k].state.Active
}

// State returns the flags of a power-up.
func (c *PowerUpController) State(k PowerUpKind) PowerUpState {
	if !k.valid() {
		return PowerUpState{}
	}
	return c.kinds[k].state
}

// Statuses returns the renderer view of every power-up.
func (c *PowerUpController) Statuses() []PowerUpStatus {
	out := make([]PowerUpStatus, 0, len(PowerUpKinds))
	for _, k := range PowerUpKinds {
		p := c.kinds[k]
		out = append(out, PowerUpStatus{
			Kind:        k,
			State:       p.state,
			Enabled:     p.enabled,
			Ready:       p.ready,
			ActiveUntil: p.activeUntil,
			CooldownEnd: p.cooldownEnd,
		})
	}
	return out
}

// Activate moves an idle power-up into its activation window. The
// deactivation and cooldown timers both start now and run independently.
func (c *PowerUpController) Activate(k PowerUpKind) error {
	if !k.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPowerUp, int(k))
	}
	p := &c.kinds[k]
	if p.state.OnCooldown {
		return fmt.Errorf("activate %s: %w", k, ErrOnCooldown)
	}
	if !p.enabled {
		return fmt.Errorf("activate %s: %w", k, ErrUnavailable)
	}

	c.audio.Play(SoundPowerUp)

	now := c.sched.Now()
	p.state.Active = true
	p.state.OnCooldown = true
	p.enabled = false
	p.ready = false
	p.activeUntil = now + p.cfg.Duration
	p.cooldownEnd = now + p.cfg.Cooldown

	c.sched.After(deactivateKey(k), p.cfg.Duration, func() { c.deactivate(k) })
	c.sched.After(cooldownKey(k), p.cfg.Cooldown, func() { c.clearCooldown(k) })
	if k == PowerUpAutoSort {
		// Interval is validated with the config
		_ = c.sched.Every(autoSortKey, c.autoSortInterval, c.autoSortTick)
	}

	c.publish()
	return nil
}

// deactivate closes the activation window. A stale firing is a no-op.
func (c *PowerUpController) deactivate(k PowerUpKind) {
	p := &c.kinds[k]
	if !p.state.Active {
		return
	}
	p.state.Active = false
	if k == PowerUpAutoSort {
		c.sched.Cancel(autoSortKey)
	}
	c.publish()
}

// clearCooldown ends the cooldown. Works whether or not deactivation already
// fired.
func (c *PowerUpController) clearCooldown(k PowerUpKind) {
	p := &c.kinds[k]
	if !p.state.OnCooldown {
		return
	}
	p.state.OnCooldown = false
	if c.live() {
		p.enabled = true
	}
	c.publish()
}

func (c *PowerUpController) autoSortTick() {
	if !c.kinds[PowerUpAutoSort].state.Active || !c.live() {
		return
	}
	c.sortOldest()
}

// Offer makes one random off-cooldown power-up available to the player.
// Reports false when every power-up is cooling down.
func (c *PowerUpController) Offer() (PowerUpKind, bool) {
	var available []PowerUpKind
	for _, k := range PowerUpKinds {
		if !c.kinds[k].state.OnCooldown {
			available = append(available, k)
		}
	}
	if len(available) == 0 {
		return 0, false
	}
	k := available[c.rng.IntN(len(available))]
	c.kinds[k].enabled = true
	c.kinds[k].ready = true
	c.publish()
	return k, true
}

func (c *PowerUpController) publish() {
	c.renderer.UpdatePowerUps(c.Statuses())
}
