package minimax

import (
	"slices"

	"gamesearch/game"
	"gamesearch/transposition"
)

// node keeps the result of searching one position. The tree persists across
// iterative-deepening passes and, through CommitMove, across turns.
type node[M comparable] struct {
	value      int64
	depth      int
	bound      transposition.Bound
	visited    bool
	exhaustive bool // no depth-limited leaf below; value holds at any depth
	children   []edge[M]
}

type edge[M comparable] struct {
	move M
	node *node[M]
}

// resolves reports whether the stored result answers a query at depth with
// window (alpha, beta).
func (n *node[M]) resolves(alpha, beta int64, depth int) (int64, bool) {
	if !n.visited {
		return 0, false
	}
	if !n.exhaustive && n.depth < depth {
		return 0, false
	}
	switch n.bound {
	case transposition.Exact:
		return n.value, true
	case transposition.Lower:
		return n.value, n.value >= beta
	case transposition.Upper:
		return n.value, n.value <= alpha
	}
	return 0, false
}

// set records a search result. An exact decided value cannot change with
// more depth, so it counts as exhaustive.
func (n *node[M]) set(value int64, depth int, bound transposition.Bound, exhaustive bool) {
	n.value = value
	n.depth = depth
	n.bound = bound
	n.visited = true
	n.exhaustive = exhaustive || (bound == transposition.Exact && game.IsDecisive(value))
}

// sortChildren puts the previous pass's best replies first. Children never
// searched go last.
func (n *node[M]) sortChildren(maximizing bool) {
	slices.SortStableFunc(n.children, func(x, y edge[M]) int {
		return compareValues(x.node, y.node, maximizing)
	})
}

func compareValues[M comparable](x, y *node[M], maximizing bool) int {
	switch {
	case x.visited && !y.visited:
		return -1
	case !x.visited && y.visited:
		return 1
	case !x.visited:
		return 0
	}
	a, b := x.value, y.value
	if maximizing {
		a, b = b, a
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (n *node[M]) child(move M) *node[M] {
	for _, c := range n.children {
		if c.move == move {
			return c.node
		}
	}
	return nil
}

// best picks the child with the greatest (depth, value) for the side to
// move, preferring deeper results.
func (n *node[M]) best(maximizing bool) (M, bool) {
	var move M
	found := false
	bestDepth, bestValue := 0, int64(0)
	for _, c := range n.children {
		if !c.node.visited {
			continue
		}
		v := c.node.value
		if !maximizing {
			v = -v
		}
		d := c.node.depth
		if !found || d > bestDepth || (d == bestDepth && v > bestValue) {
			move, bestDepth, bestValue, found = c.move, d, v, true
		}
	}
	return move, found
}
