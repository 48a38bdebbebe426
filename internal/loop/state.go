package loop

// Screen is the phase a client is in.
type Screen int

const (
	ScreenStart    Screen = iota // Title menu
	ScreenSettings               // Difficulty and sound
	ScreenPlaying                // Game in progress, paused or not
	ScreenGameOver               // Final score and restart prompt
	ScreenShutdown               // Server going down
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenSettings:
		return "settings"
	case ScreenPlaying:
		return "playing"
	case ScreenGameOver:
		return "game over"
	case ScreenShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// settingsRow is the focused line of the settings screen.
type settingsRow int

const (
	rowDifficulty settingsRow = iota
	rowSound
	settingsRows
)
