package utils

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFindIndex(t *testing.T) {
	t.Run("finds the first match", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"))
	})

	t.Run("missing item", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
		require.Equal(t, -1, FindIndex([]int(nil), 3))
	})
}

func TestShuffle(t *testing.T) {
	t.Run("keeps every element", func(t *testing.T) {
		s := []int{0, 1, 2, 3, 4, 5, 6, 7}
		Shuffle(rand.New(rand.NewSource(1)), s)

		sorted := slices.Clone(s)
		slices.Sort(sorted)
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, sorted)
	})

	t.Run("same seed gives the same order", func(t *testing.T) {
		a := []int{0, 1, 2, 3, 4, 5, 6, 7}
		b := slices.Clone(a)
		Shuffle(rand.New(rand.NewSource(9)), a)
		Shuffle(rand.New(rand.NewSource(9)), b)

		require.Equal(t, a, b)
	})
}
