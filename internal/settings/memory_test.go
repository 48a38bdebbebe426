package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/assemblyline/internal/game"
)

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	got, err := m.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	want := Settings{Difficulty: game.DifficultyEasy}
	require.NoError(t, m.Save(ctx, "ada", want))
	got, err = m.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	best, err := m.RecordScore(ctx, "ada", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, best)
	best, err = m.RecordScore(ctx, "ada", 10)
	require.NoError(t, err)
	assert.Equal(t, 30, best)

	got, err = m.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
