package game

import "errors"

var (
	// ErrUnknownItem reports a stale reference: the item was already sorted
	// or missed. Callers treat it as a silent no-op.
	ErrUnknownItem = errors.New("unknown item")

	ErrNotRunning        = errors.New("session not running")
	ErrPaused            = errors.New("session paused")
	ErrOnCooldown        = errors.New("power-up on cooldown")
	ErrUnavailable       = errors.New("power-up not available")
	ErrUnknownPowerUp    = errors.New("unknown power-up")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidConfig     = errors.New("invalid game config")
)
