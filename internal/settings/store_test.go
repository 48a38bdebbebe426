package settings

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/assemblyline/internal/game"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	require.Error(t, err)
}

func TestLoadUnknownPlayerReturnsDefaults(t *testing.T) {
	store, _ := openTestStore(t)

	got, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	want := Settings{Difficulty: game.DifficultyHard, SoundEnabled: false}
	require.NoError(t, store.Save(ctx, "ada", want))

	got, err := store.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.Difficulty = game.DifficultyEasy
	require.NoError(t, store.Save(ctx, "ada", want))
	got, err = store.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "ada", Settings{Difficulty: game.DifficultyHard}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, game.DifficultyHard, got.Difficulty)
	assert.False(t, got.SoundEnabled)
}

func TestCorruptDifficultyFallsBackToDefaults(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`INSERT INTO settings (player, difficulty, sound_enabled, updated_at) VALUES ('eve', 'nightmare', 0, 0)`)
	require.NoError(t, err)

	got, err := store.Load(ctx, "eve")
	require.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, Defaults(), got)
}

func TestRecordScoreKeepsBest(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	best, err := store.RecordScore(ctx, "ada", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, best)

	best, err = store.RecordScore(ctx, "ada", 25)
	require.NoError(t, err)
	assert.Equal(t, 40, best)

	best, err = store.RecordScore(ctx, "ada", 90)
	require.NoError(t, err)
	assert.Equal(t, 90, best)

	got, err := store.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got, "recording a score keeps default settings")
}

func TestSaveKeepsBestScore(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.RecordScore(ctx, "ada", 70)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "ada", Settings{Difficulty: game.DifficultyEasy, SoundEnabled: true}))

	best, err := store.RecordScore(ctx, "ada", 0)
	require.NoError(t, err)
	assert.Equal(t, 70, best)
}
