package game

// Sound names played through the AudioPlayer.
type Sound string

const (
	SoundCorrectSort   Sound = "correctSort"
	SoundIncorrectSort Sound = "incorrectSort"
	SoundMissedItem    Sound = "missedItem"
	SoundPowerUp       Sound = "powerUp"
	SoundGameOver      Sound = "gameOver"
)

// Sounds lists every sound the core can request.
var Sounds = []Sound{SoundCorrectSort, SoundIncorrectSort, SoundMissedItem, SoundPowerUp, SoundGameOver}

// FeedbackKind classifies a feedback signal.
type FeedbackKind int

const (
	FeedbackCorrect FeedbackKind = iota
	FeedbackIncorrect
	FeedbackMissed
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	case FeedbackMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Feedback is a transient signal shown where an item left the conveyor.
type Feedback struct {
	Kind     FeedbackKind
	Points   int // Score delta as configured, before clamping
	Position Position
}

// Renderer receives every change the player should see.
// Implementations must not call back into the Session.
type Renderer interface {
	ShowItem(item ConveyorItem)
	RemoveItem(id string)
	ShowFeedback(fb Feedback)
	UpdateScore(score int)
	UpdateLives(lives int)
	UpdatePowerUps(states []PowerUpStatus)
	ShowGameOver(finalScore int)
}

// AudioPlayer plays named sounds, fire and forget.
type AudioPlayer interface {
	Play(sound Sound)
}

// SortAttempt is a discrete "sort item into bin" request from an input source.
type SortAttempt struct {
	ItemID string
	Bin    Category
}

// NopRenderer ignores every update.
type NopRenderer struct{}

func (NopRenderer) ShowItem(ConveyorItem)          {}
func (NopRenderer) RemoveItem(string)              {}
func (NopRenderer) ShowFeedback(Feedback)          {}
func (NopRenderer) UpdateScore(int)                {}
func (NopRenderer) UpdateLives(int)                {}
func (NopRenderer) UpdatePowerUps([]PowerUpStatus) {}
func (NopRenderer) ShowGameOver(int)               {}

var _ Renderer = NopRenderer{}

type nopAudio struct{}

func (nopAudio) Play(Sound) {}
