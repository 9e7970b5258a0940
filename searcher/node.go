package searcher

import (
	"math"

	"gamesearch/game"
)

// node holds the statistics of one position. Rewards are counted for mover,
// the side whose move led here, so a parent maximizes over its children.
type node[M comparable] struct {
	parent   *node[M]
	move     M
	mover    bool
	turn     bool
	untried  []M
	expanded bool
	children []*node[M]
	rewards  float64
	visits   int
	proven   game.Status // Going until a Win or Lose is proven
}

func newNode[M comparable](parent *node[M], move M, mover, turn bool) *node[M] {
	return &node[M]{
		parent: parent,
		move:   move,
		mover:  mover,
		turn:   turn,
		proven: game.Going,
	}
}

func (n *node[M]) isProven() bool {
	return n.proven != game.Going
}

func (n *node[M]) fullyExpanded() bool {
	return n.expanded && len(n.untried) == 0
}

// pickChild returns the child with the highest UCB1 score. Proven children
// are never picked.
func (n *node[M]) pickChild(cSquared float64) *node[M] {
	if n.visits == 0 {
		panic("node has children but no visits")
	}
	c2LnN := cSquared * math.Log(float64(n.visits))

	var best *node[M]
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		if child.isProven() {
			continue
		}
		if score := ucb1(child.rewards, child.visits, c2LnN); best == nil || score > maxScore {
			best, maxScore = child, score
		}
	}
	return best
}

func (n *node[M]) backup(result float64) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		cur.rewards += reward(result, cur.mover)
	}
}

// propagate settles proofs from n towards the root: a node is won for the
// side to move by any won child and lost once every child is lost.
func (n *node[M]) propagate() {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.isProven() {
			continue
		}
		win := winFor(cur.turn)
		loss := winFor(!cur.turn)
		lost := cur.fullyExpanded()
		for _, child := range cur.children {
			if child.proven == win {
				cur.proven = win
				break
			}
			lost = lost && child.proven == loss
		}
		if cur.proven == game.Going && lost && len(cur.children) > 0 {
			cur.proven = loss
		}
		if !cur.isProven() {
			return
		}
	}
}

// best returns the child to play: a proven win, else the most visited child
// not proven lost. Nil if nothing was expanded.
func (n *node[M]) best() *node[M] {
	win := winFor(n.turn)
	loss := winFor(!n.turn)

	var best, fallback *node[M]
	for _, child := range n.children {
		if child.proven == win {
			return child
		}
		if fallback == nil || child.visits > fallback.visits {
			fallback = child
		}
		if child.proven != loss && (best == nil || child.visits > best.visits) {
			best = child
		}
	}
	if best == nil {
		return fallback
	}
	return best
}
