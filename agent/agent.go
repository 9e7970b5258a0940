package agent

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// Agent owns a private copy of the game and plays one side of it. Both
// agents of a match see every move through CommitMove, including their own.
type Agent[M comparable] interface {
	Status() game.Status
	// Turn reports whether the first player is to move.
	Turn() bool
	ChooseMove(budget time.Duration) M
	CommitMove(move M)
}

// Factory builds a fresh agent over a new game. first selects whether the
// game's first player starts.
type Factory[M comparable] func(first bool) Agent[M]

// Reporter is implemented by agents that measure their searches.
type Reporter interface {
	LastMetric() metrics.SearchMetric
}

// Random plays uniformly random legal moves.
type Random[M comparable, K comparable, U any] struct {
	g   game.Game[M, K, U]
	rng *rand.Rand
}

func NewRandom[M comparable, K comparable, U any](g game.Game[M, K, U], seed uint64) *Random[M, K, U] {
	return &Random[M, K, U]{g: g, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random[M, K, U]) Status() game.Status {
	return r.g.Status()
}

func (r *Random[M, K, U]) Turn() bool {
	return r.g.Turn()
}

func (r *Random[M, K, U]) ChooseMove(time.Duration) M {
	moves := r.g.LegalMoves()
	return moves[r.rng.Intn(len(moves))]
}

func (r *Random[M, K, U]) CommitMove(move M) {
	r.g.Apply(move)
}
