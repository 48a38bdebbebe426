package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvDefaults(t *testing.T) {
	var game Game
	require.NoError(t, ParseEnv(&game))
	assert.Equal(t, "local", game.Player)
	assert.Equal(t, "assemblyline.db", game.SettingsPath)
	assert.Zero(t, game.Seed)
	assert.Empty(t, game.LogFile)

	var ssh SSH
	require.NoError(t, ParseEnv(&ssh))
	assert.Equal(t, "2222", ssh.Port)
	assert.Equal(t, 15*time.Second, ssh.ShutdownTimeout)

	var web Web
	require.NoError(t, ParseEnv(&web))
	assert.Equal(t, "8080", web.Port)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("ASSEMBLY_PLAYER", "ada")
	t.Setenv("ASSEMBLY_SEED", "42")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	var game Game
	require.NoError(t, ParseEnv(&game))
	assert.Equal(t, "ada", game.Player)
	assert.Equal(t, uint64(42), game.Seed)

	var ssh SSH
	require.NoError(t, ParseEnv(&ssh))
	assert.Equal(t, 3*time.Second, ssh.ShutdownTimeout)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("ASSEMBLY_SEED", "not-a-number")

	var game Game
	err := ParseEnv(&game)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
