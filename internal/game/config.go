package game

import (
	"errors"
	"fmt"
	"time"
)

// Game configuration.
// All tunable game parameters are centralized here; DefaultConfig carries
// the values the game ships with.

// Difficulty selects one of the fixed DifficultyProfile presets.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the presets from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts a stored or typed name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) String() string { return string(d) }

// Next returns the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return DifficultyMedium
}

// Prev returns the preceding difficulty, wrapping around.
func (d Difficulty) Prev() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+len(Difficulties)-1)%len(Difficulties)]
		}
	}
	return DifficultyMedium
}

// Profile is the DifficultyProfile of one preset.
type Profile struct {
	ItemSpeed     time.Duration // Time for an item to cross the conveyor
	SpawnInterval time.Duration // Time between spawn ticks
	PowerUpChance float64       // Probability that a spawn offers a power-up
}

// Scoring holds the score deltas.
type Scoring struct {
	CorrectSort     int
	DefectiveSort   int
	MissedItem      int
	IncorrectSort   int
	BonusMultiplier int
}

// PowerUpConfig holds the activation window and cooldown of a power-up.
// Both windows start at the activation instant.
type PowerUpConfig struct {
	Duration time.Duration
	Cooldown time.Duration
}

// Config is the complete game tuning.
type Config struct {
	Profiles         map[Difficulty]Profile
	Scoring          Scoring
	PowerUps         map[PowerUpKind]PowerUpConfig
	InitialLives     int
	SlowFactor       float64       // Travel time multiplier while slow is active
	AutoSortInterval time.Duration // Period of the auto-sort loop
	LaneMargin       float64       // Lane offsets are drawn from [margin, 1-margin)
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		Profiles: map[Difficulty]Profile{
			DifficultyEasy: {
				ItemSpeed:     15 * time.Second,
				SpawnInterval: 3000 * time.Millisecond,
				PowerUpChance: 0.2,
			},
			DifficultyMedium: {
				ItemSpeed:     10 * time.Second,
				SpawnInterval: 2000 * time.Millisecond,
				PowerUpChance: 0.15,
			},
			DifficultyHard: {
				ItemSpeed:     7 * time.Second,
				SpawnInterval: 1500 * time.Millisecond,
				PowerUpChance: 0.1,
			},
		},
		Scoring: Scoring{
			CorrectSort:     10,
			DefectiveSort:   15,
			MissedItem:      -5,
			IncorrectSort:   -10,
			BonusMultiplier: 2,
		},
		PowerUps: map[PowerUpKind]PowerUpConfig{
			PowerUpSlow:     {Duration: 5000 * time.Millisecond, Cooldown: 15000 * time.Millisecond},
			PowerUpAutoSort: {Duration: 5000 * time.Millisecond, Cooldown: 20000 * time.Millisecond},
			PowerUpBonus:    {Duration: 10000 * time.Millisecond, Cooldown: 25000 * time.Millisecond},
		},
		InitialLives:     3,
		SlowFactor:       1.5,
		AutoSortInterval: 1000 * time.Millisecond,
		LaneMargin:       0.1,
	}
}

// Profile returns the preset for d.
func (c Config) Profile(d Difficulty) (Profile, error) {
	p, ok := c.Profiles[d]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return p, nil
}

// Validate reports every inconsistency in the tuning.
func (c Config) Validate() error {
	var errs []error
	for _, d := range Difficulties {
		p, ok := c.Profiles[d]
		if !ok {
			errs = append(errs, fmt.Errorf("missing %s profile", d))
			continue
		}
		if p.ItemSpeed <= 0 || p.SpawnInterval <= 0 {
			errs = append(errs, fmt.Errorf("%s profile: durations must be positive", d))
		}
		if p.PowerUpChance < 0 || p.PowerUpChance > 1 {
			errs = append(errs, fmt.Errorf("%s profile: power-up chance %v outside [0,1]", d, p.PowerUpChance))
		}
	}
	for _, k := range PowerUpKinds {
		pc, ok := c.PowerUps[k]
		if !ok {
			errs = append(errs, fmt.Errorf("missing %s power-up", k))
			continue
		}
		if pc.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s power-up: duration must be positive", k))
		}
		if pc.Cooldown < pc.Duration {
			errs = append(errs, fmt.Errorf("%s power-up: cooldown %v shorter than duration %v", k, pc.Cooldown, pc.Duration))
		}
	}
	if c.InitialLives <= 0 {
		errs = append(errs, errors.New("initial lives must be positive"))
	}
	if c.SlowFactor <= 0 {
		errs = append(errs, errors.New("slow factor must be positive"))
	}
	if c.AutoSortInterval <= 0 {
		errs = append(errs, errors.New("auto-sort interval must be positive"))
	}
	if c.LaneMargin < 0 || c.LaneMargin >= 0.5 {
		errs = append(errs, fmt.Errorf("lane margin %v outside [0,0.5)", c.LaneMargin))
	}
	if c.Scoring.BonusMultiplier < 1 {
		errs = append(errs, errors.New("bonus multiplier must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
