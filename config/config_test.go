package config

import (
	"testing"
	"time"

	"gamesearch/meta"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var c Config
		require.NoError(t, c.Load(nil))

		require.Equal(t, "tablut", c.Game)
		require.Equal(t, 10, c.Games)
		require.Equal(t, meta.TIME_BUDGET, c.Budget)
		require.Equal(t, meta.MAX_TURNS, c.MaxTurns)
		require.Empty(t, c.ExperimentPath)
	})

	t.Run("flags", func(t *testing.T) {
		var c Config
		require.NoError(t, c.Load([]string{"-game", "tictactoe", "-budget", "250ms", "-parallelism", "4", "-max-turns", "50"}))

		require.Equal(t, "tictactoe", c.Game)
		require.Equal(t, 250*time.Millisecond, c.Budget)
		require.Equal(t, 4, c.Parallelism)
		require.Equal(t, 50, c.MaxTurns)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("GAMESEARCH_GAMES", "7")
		var c Config
		require.NoError(t, c.Load(nil))

		require.Equal(t, 7, c.Games)
	})

	t.Run("bad value", func(t *testing.T) {
		var c Config
		require.Error(t, c.Load([]string{"-games", "many"}))
	})
}
