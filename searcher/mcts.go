package searcher

import (
	"fmt"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/minimax"
	"gamesearch/utils"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// MCTS grows a UCB1 search tree over one game instance that it owns. The
// tree is kept across moves.
type MCTS[M comparable, K comparable, U any] struct {
	g game.Game[M, K, U]

	duration     time.Duration
	episodes     int
	cSquared     float64
	cutoff       int
	policy       Policy
	playoutDepth int
	batch        int
	rng          *rand.Rand
	cache        map[K]float64
	metrics      metrics.Collector
	logger       zerolog.Logger

	root *node[M]
	path []U
	last metrics.SearchMetric
}

// NewMCTS panics unless a duration or an episode count is given.
func NewMCTS[M comparable, K comparable, U any](g game.Game[M, K, U], options ...Option) *MCTS[M, K, U] {
	s := defaults()
	for _, option := range options {
		option(&s)
	}
	if s.episodes <= 0 && s.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if s.rng == nil {
		s.rng = newSeededRand()
	}

	m := &MCTS[M, K, U]{
		g:            g,
		duration:     s.duration,
		episodes:     s.episodes,
		cSquared:     s.exploration * s.exploration,
		cutoff:       s.cutoff,
		policy:       s.policy,
		playoutDepth: s.playoutDepth,
		batch:        s.batch,
		rng:          s.rng,
		metrics:      s.metrics,
		logger:       s.logger,
	}
	if s.cache {
		m.cache = make(map[K]float64)
	}
	m.root = m.newRoot()
	return m
}

func (m *MCTS[M, K, U]) Status() game.Status {
	return m.g.Status()
}

func (m *MCTS[M, K, U]) Turn() bool {
	return m.g.Turn()
}

func (m *MCTS[M, K, U]) LastMetric() metrics.SearchMetric {
	return m.last
}

// Policy returns the share of root visits spent on each expanded move.
func (m *MCTS[M, K, U]) Policy() map[M]float64 {
	total := lo.SumBy(m.root.children, func(c *node[M]) int { return c.visits })
	policy := make(map[M]float64, len(m.root.children))
	for _, c := range m.root.children {
		if total > 0 {
			policy[c.move] = float64(c.visits) / float64(total)
		}
	}
	return policy
}

// ChooseMove simulates until the budget (or the configured duration when the
// budget is zero) runs out, the episode count is reached or the root is
// proven.
func (m *MCTS[M, K, U]) ChooseMove(budget time.Duration) M {
	if m.g.Status() != game.Going {
		panic(fmt.Errorf("%w: choosing a move at %v", game.ErrTerminal, m.g.Status()))
	}
	if budget <= 0 {
		budget = m.duration
	}

	m.metrics.Start("mcts")
	start := time.Now()
	episodes := 0
	for !m.root.isProven() {
		if m.episodes > 0 && episodes >= m.episodes {
			break
		}
		if budget > 0 && episodes > 0 && episodes%m.batch == 0 && time.Since(start) >= budget {
			break
		}
		m.simulate()
		m.metrics.AddEpisode()
		episodes++
	}

	var move M
	if best := m.root.best(); best != nil {
		move = best.move
	} else {
		move = m.g.LegalMoves()[0]
	}

	m.last = m.metrics.Complete()
	m.logger.Debug().
		Int("episodes", episodes).
		Int("root-visits", m.root.visits).
		Str("proven", m.root.proven.String()).
		Dur("elapsed", time.Since(start)).
		Msgf("mcts chose %v", move)
	return move
}

// CommitMove plays a move by either side and keeps the matching subtree.
func (m *MCTS[M, K, U]) CommitMove(move M) {
	m.g.Apply(move)

	moves := lo.Map(m.root.children, func(c *node[M], _ int) M { return c.move })
	if i := utils.FindIndex(moves, move); i >= 0 {
		m.root = m.root.children[i]
		m.root.parent = nil
		m.metrics.SetTreeReset(false)
		return
	}
	m.root = m.newRoot()
	m.metrics.SetTreeReset(true)
}

func (m *MCTS[M, K, U]) newRoot() *node[M] {
	var none M
	return newNode[M](nil, none, !m.g.Turn(), m.g.Turn())
}

// simulate runs one selection, expansion, playout and backup, restoring the
// game before it returns.
func (m *MCTS[M, K, U]) simulate() {
	leaf := m.selectThenExpand()
	result := m.evaluate(leaf)
	leaf.backup(result)
	if leaf.isProven() {
		leaf.propagate()
	}

	for i := len(m.path) - 1; i >= 0; i-- {
		m.g.Undo(m.path[i])
	}
	m.path = m.path[:0]
}

// selectThenExpand descends to a node that has not been played out yet, or to
// a terminal or proven node.
func (m *MCTS[M, K, U]) selectThenExpand() *node[M] {
	n := m.root
	for n.visits > 0 && !n.isProven() && m.g.Status() == game.Going {
		if !n.expanded {
			n.untried = m.g.LegalMoves()
			utils.Shuffle(m.rng, n.untried)
			n.expanded = true
		}

		if k := len(n.untried); k > 0 {
			move := n.untried[k-1]
			n.untried = n.untried[:k-1]
			m.apply(move)
			child := newNode(n, move, n.turn, m.g.Turn())
			n.children = append(n.children, child)
			return child
		}

		child := n.pickChild(m.cSquared)
		if child == nil {
			panic("unproven node has only proven children")
		}
		m.apply(child.move)
		n = child
	}
	return n
}

func (m *MCTS[M, K, U]) apply(move M) {
	m.path = append(m.path, m.g.Apply(move))
}

// evaluate scores the position at n for the first player. Decided positions
// become proofs.
func (m *MCTS[M, K, U]) evaluate(n *node[M]) float64 {
	if !n.isProven() {
		switch status := m.g.Status(); status {
		case game.Win, game.Lose:
			n.proven = status
		case game.Draw:
			return Draw
		}
	}
	switch n.proven {
	case game.Win:
		return Win
	case game.Lose:
		return Loss
	}
	return m.playout()
}

// playout plays to the end or the cutoff and restores the game. A cut-off
// playout is a coin flip and is not cached.
func (m *MCTS[M, K, U]) playout() float64 {
	key := m.g.Key()
	if m.cache != nil {
		if result, ok := m.cache[key]; ok {
			m.metrics.AddCacheHit()
			return result
		}
	}

	var undo []U
	for len(undo) < m.cutoff && m.g.Status() == game.Going {
		undo = append(undo, m.g.Apply(m.playoutMove()))
	}
	status := m.g.Status()
	for i := len(undo) - 1; i >= 0; i-- {
		m.g.Undo(undo[i])
	}

	if status == game.Going {
		if m.rng.Intn(2) == 0 {
			return Win
		}
		return Loss
	}
	m.metrics.AddFullPlayout()
	result := status.Reward()
	if m.cache != nil {
		m.cache[key] = result
	}
	return result
}

func (m *MCTS[M, K, U]) playoutMove() M {
	if m.policy == HeuristicPlayout {
		move, _ := minimax.BestMove(m.g, m.playoutDepth)
		return move
	}
	moves := m.g.LegalMoves()
	return moves[m.rng.Intn(len(moves))]
}
