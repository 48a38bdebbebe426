// Package settings persists per-player preferences and best scores.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomz197/assemblyline/internal/game"
)

// ErrCorrupt reports a stored record that could not be parsed. Load still
// returns usable defaults alongside it.
var ErrCorrupt = errors.New("settings: corrupt record")

// Settings are the preferences a player can change from the settings screen.
type Settings struct {
	Difficulty   game.Difficulty
	SoundEnabled bool
}

// Defaults returns the settings of a new player.
func Defaults() Settings {
	return Settings{
		Difficulty:   game.DifficultyMedium,
		SoundEnabled: true,
	}
}

// Repository loads and saves player settings.
type Repository interface {
	// Load returns the player's settings, or Defaults for unknown players.
	Load(ctx context.Context, player string) (Settings, error)
	// Save stores the player's settings.
	Save(ctx context.Context, player string, s Settings) error
	// RecordScore keeps the best score of the player and returns it.
	RecordScore(ctx context.Context, player string, score int) (int, error)
}

// parse validates stored values. Invalid records yield defaults and ErrCorrupt.
func parse(difficulty string, soundEnabled bool) (Settings, error) {
	d, err := game.ParseDifficulty(difficulty)
	if err != nil {
		return Defaults(), fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return Settings{Difficulty: d, SoundEnabled: soundEnabled}, nil
}
