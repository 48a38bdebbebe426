package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PowerUps[PowerUpBonus] = PowerUpConfig{Duration: 10 * time.Second, Cooldown: 5 * time.Second}
	cfg.SlowFactor = 0
	delete(cfg.Profiles, DifficultyHard)

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bonus power-up")
	assert.Contains(t, err.Error(), "slow factor")
	assert.Contains(t, err.Error(), "missing hard profile")
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDifficulty("nightmare")
	require.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestDifficultyCycle(t *testing.T) {
	assert.Equal(t, DifficultyHard, DifficultyMedium.Next())
	assert.Equal(t, DifficultyEasy, DifficultyHard.Next())
	assert.Equal(t, DifficultyHard, DifficultyEasy.Prev())
	assert.Equal(t, DifficultyMedium, Difficulty("").Next())
}
