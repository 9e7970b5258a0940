package tictactoe

import (
	"testing"

	"gamesearch/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestStatus(t *testing.T) {
	t.Run("row of X wins for the first player", func(t *testing.T) {
		b, err := Parse("XXX.OO...", false)
		require.NoError(t, err)
		require.Equal(t, game.Win, b.Status())
	})

	t.Run("diagonal of O loses for the first player", func(t *testing.T) {
		b, err := Parse("OXXXO...O", true)
		require.NoError(t, err)
		require.Equal(t, game.Lose, b.Status())
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		b, err := Parse("XOXXOOOXX", true)
		require.NoError(t, err)
		require.Equal(t, game.Draw, b.Status())
		require.Zero(t, b.Heuristic())
	})

	t.Run("decided games score by plies", func(t *testing.T) {
		b := New(true)
		for _, m := range []Move{0, 3, 1, 4, 2} {
			b.Apply(m)
		}
		require.Equal(t, game.Win, b.Status())
		require.Equal(t, game.WinScore-5, b.Heuristic())
		require.Panics(t, func() { b.LegalMoves() }, "Terminal state should refuse to list moves")
	})
}

func TestApplyUndo(t *testing.T) {
	t.Run("turn alternates from the starting side", func(t *testing.T) {
		b := New(false)
		require.False(t, b.Turn())
		b.Apply(4)
		require.True(t, b.Turn())
		require.Equal(t, "...\n.O.\n...\n", b.String(), "Second player should mark first when X does not start")
	})

	t.Run("undo is the inverse of apply along random games", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for g := 0; g < 200; g++ {
			b := New(g%2 == 0)
			var history []*Board
			var tokens []Move
			for b.Status() == game.Going {
				moves := b.LegalMoves()
				history = append(history, b.Clone())
				tokens = append(tokens, b.Apply(moves[rng.Intn(len(moves))]))
			}
			for i := len(tokens) - 1; i >= 0; i-- {
				b.Undo(tokens[i])
				require.Equal(t, history[i], b)
			}
		}
	})

	t.Run("undo of an empty cell panics", func(t *testing.T) {
		b := New(true)
		b.Apply(0)
		require.Panics(t, func() { b.Undo(5) })
	})
}
