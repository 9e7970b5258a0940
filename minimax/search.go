package minimax

import (
	"fmt"
	"math"
	"slices"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/transposition"

	"github.com/rs/zerolog"
)

const inf = math.MaxInt64

// Searcher is an iterative-deepening alpha-beta engine over one game instance
// that it owns. It keeps its search tree between moves.
type Searcher[M comparable, K comparable, U any] struct {
	g     game.Game[M, K, U]
	table *transposition.Table[K]

	mask          uint64
	margin        time.Duration
	maxDepth      int
	minStoreDepth int
	metrics       metrics.Collector
	logger        zerolog.Logger

	root  *node[M]
	depth int // depth resolved under root

	calls      uint64
	tableHits  int
	deadline   time.Time
	endedEarly bool
	last       metrics.SearchMetric
}

func New[M comparable, K comparable, U any](g game.Game[M, K, U], options ...Option) *Searcher[M, K, U] {
	s := defaults()
	for _, option := range options {
		option(&s)
	}
	if s.checkInterval <= 0 || s.checkInterval&(s.checkInterval-1) != 0 {
		panic(fmt.Sprintf("check interval must be a power of two, got %d", s.checkInterval))
	}

	var table *transposition.Table[K]
	if s.table != nil {
		t, ok := s.table.(*transposition.Table[K])
		if !ok {
			panic(fmt.Sprintf("transposition table has key type %T, want %T", s.table, table))
		}
		table = t
	}

	return &Searcher[M, K, U]{
		g:             g,
		table:         table,
		mask:          uint64(s.checkInterval - 1),
		margin:        s.margin,
		maxDepth:      s.maxDepth,
		minStoreDepth: s.minStoreDepth,
		metrics:       s.metrics,
		logger:        s.logger,
		root:          &node[M]{},
	}
}

func (s *Searcher[M, K, U]) Status() game.Status {
	return s.g.Status()
}

func (s *Searcher[M, K, U]) Turn() bool {
	return s.g.Turn()
}

// Value is the root value from the last search, for the first player.
func (s *Searcher[M, K, U]) Value() int64 {
	return s.root.value
}

// Depth is the depth resolved under the current root.
func (s *Searcher[M, K, U]) Depth() int {
	return s.depth
}

func (s *Searcher[M, K, U]) LastMetric() metrics.SearchMetric {
	return s.last
}

// ChooseMove deepens until the budget runs out, the root is decided, the
// tree is searched to its leaves or the depth cap is reached. It always
// returns a legal move.
func (s *Searcher[M, K, U]) ChooseMove(budget time.Duration) M {
	start := time.Now()
	s.deadline = start.Add(budget - s.margin)
	s.endedEarly = false
	s.calls = 0
	s.tableHits = 0
	s.metrics.Start("minimax")
	if s.table != nil && s.table.Full() {
		s.logger.Debug().Int("entries", s.table.Len()).Msg("transposition table full, clearing")
		s.table.Reset()
	}

	for depth := min(s.depth+1, s.maxDepth); depth <= s.maxDepth; depth++ {
		s.search(s.root, -inf, inf, depth, true)
		if s.endedEarly {
			break
		}
		s.depth = depth
		if s.root.exhaustive || game.IsDecisive(s.root.value) {
			break
		}
	}

	move, ok := s.root.best(s.g.Turn())
	if !ok {
		move = s.g.LegalMoves()[0]
	}

	s.metrics.AddNodes(int(s.calls))
	s.metrics.AddTableHits(s.tableHits)
	s.metrics.SetDepth(s.depth, s.endedEarly)
	s.last = s.metrics.Complete()
	s.logger.Debug().
		Int("depth", s.depth).
		Uint64("nodes", s.calls).
		Bool("ended-early", s.endedEarly).
		Int64("value", s.root.value).
		Dur("elapsed", time.Since(start)).
		Msgf("minimax chose %v", move)
	return move
}

// CommitMove plays a move by either side and keeps the matching subtree.
func (s *Searcher[M, K, U]) CommitMove(move M) {
	s.g.Apply(move)
	if next := s.root.child(move); next != nil {
		s.root = next
		s.depth = next.depth
		s.metrics.SetTreeReset(false)
		return
	}
	s.root = &node[M]{}
	s.depth = 0
	s.metrics.SetTreeReset(true)
}

func (s *Searcher[M, K, U]) expired() bool {
	s.calls++
	if s.calls&s.mask == 0 && time.Now().After(s.deadline) {
		s.endedEarly = true
	}
	return s.endedEarly
}

// search returns the minimax value of the current position, maximizing for
// the first player. Callers must check endedEarly before using the result.
func (s *Searcher[M, K, U]) search(n *node[M], alpha, beta int64, depth int, root bool) int64 {
	if s.expired() {
		return n.value
	}

	if s.g.Status() != game.Going {
		n.set(s.g.Heuristic(), depth, transposition.Exact, true)
		return n.value
	}
	if depth <= 0 {
		n.set(s.g.Heuristic(), 0, transposition.Exact, false)
		return n.value
	}

	if !root {
		if v, ok := n.resolves(alpha, beta, depth); ok {
			n.depth = max(n.depth, depth)
			return v
		}
		if v, ok := s.probe(n, alpha, beta, depth); ok {
			return v
		}
	}

	maximizing := s.g.Turn()
	if n.children == nil {
		s.expand(n, maximizing)
	} else {
		n.sortChildren(maximizing)
	}

	a, b := alpha, beta
	exhaustive := true
	for _, c := range n.children {
		u := s.g.Apply(c.move)
		v := s.search(c.node, a, b, depth-1, false)
		s.g.Undo(u)
		if s.endedEarly {
			return n.value
		}

		exhaustive = exhaustive && c.node.exhaustive
		if maximizing && v > a {
			a = v
		} else if !maximizing && v < b {
			b = v
		}
		if a >= b {
			break
		}
	}

	value := b
	if maximizing {
		value = a
	}
	bound := transposition.Exact
	switch {
	case value >= beta:
		bound = transposition.Lower
	case value <= alpha:
		bound = transposition.Upper
	}
	n.set(value, depth, bound, exhaustive)

	if s.table != nil && depth >= s.minStoreDepth {
		stored := depth
		if exhaustive {
			stored = transposition.Unlimited
		}
		s.table.StoreBound(s.g.Key(), value, stored, bound)
	}
	return value
}

func (s *Searcher[M, K, U]) probe(n *node[M], alpha, beta int64, depth int) (int64, bool) {
	if s.table == nil {
		return 0, false
	}
	e, ok := s.table.Probe(s.g.Key(), depth)
	if !ok {
		return 0, false
	}
	switch {
	case e.Bound == transposition.Lower && e.Value < beta:
		return 0, false
	case e.Bound == transposition.Upper && e.Value > alpha:
		return 0, false
	}
	s.tableHits++
	n.set(e.Value, depth, e.Bound, e.Depth == transposition.Unlimited)
	return e.Value, true
}

// expand creates the children of n in static order, then floats the ones
// with the best table hints to the front.
func (s *Searcher[M, K, U]) expand(n *node[M], maximizing bool) {
	moves := legalMoves(s.g)
	n.children = make([]edge[M], len(moves))
	for i, m := range moves {
		n.children[i] = edge[M]{move: m, node: &node[M]{}}
	}
	if s.table == nil {
		return
	}

	hints := make(map[*node[M]]int64, len(moves))
	worst := int64(-inf)
	if !maximizing {
		worst = inf
	}
	for _, c := range n.children {
		u := s.g.Apply(c.move)
		v, ok := s.table.Hint(s.g.Key())
		s.g.Undo(u)
		if !ok {
			v = worst
		}
		hints[c.node] = v
	}
	slices.SortStableFunc(n.children, func(x, y edge[M]) int {
		a, b := hints[x.node], hints[y.node]
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
	})
}

func legalMoves[M comparable, K comparable, U any](g game.Game[M, K, U]) []M {
	if o, ok := g.(game.Orderer[M]); ok {
		return o.OrderedMoves()
	}
	return g.LegalMoves()
}
