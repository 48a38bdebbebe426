package loop

import "time"

// Frame loop
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Render area. Larger terminals get the area centered; smaller ones below
// the minimum get a resize prompt instead of the game.
const (
	MaxTermWidth  = 100
	MaxTermHeight = 30
	MinTermWidth  = 60
	MinTermHeight = 20
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second // Warning shown, game auto-paused
	InactivityDisconnectUser = 120 * time.Second
)

// Shutdown
const (
	ShutdownDisplayTime = 10 * time.Second // Shutdown notice shown before auto-disconnect
	shutdownPollPeriod  = 200 * time.Millisecond
)

// Status line
const (
	statusDisplayTime = 1500 * time.Millisecond
	MaxPlayerLength   = 16 // Maximum display length for player names
)
