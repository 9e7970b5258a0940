package searcher

import (
	"math"

	"gamesearch/game"
)

// Rewards are kept in [0, 1] so a node's rewards never exceed its visits.
const (
	Win  = 1.0
	Loss = 0.0
	Draw = 0.5
)

// Policy picks the moves of a playout.
type Policy int

const (
	RandomPlayout Policy = iota
	HeuristicPlayout
)

func (p Policy) String() string {
	switch p {
	case RandomPlayout:
		return "random"
	case HeuristicPlayout:
		return "heuristic"
	}
	return "unknown"
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// reward turns a result for the first player into one for side.
func reward(result float64, side bool) float64 {
	if side {
		return result
	}
	return 1 - result
}

// winFor is the status in which side has won.
func winFor(side bool) game.Status {
	if side {
		return game.Win
	}
	return game.Lose
}
