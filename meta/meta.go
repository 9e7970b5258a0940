// meta/meta.go
package meta

import "time"

// MAX_TURNS caps a harness game, counted in plies.
const MAX_TURNS = 300

// TIME_BUDGET is the default think time per move.
const TIME_BUDGET = 1 * time.Second

// CheckInterval is the number of alpha-beta calls between clock reads.
const CheckInterval = 256

// SafetyMargin is kept back from every alpha-beta time budget.
const SafetyMargin = 20 * time.Millisecond

// MaxDepth caps iterative deepening.
const MaxDepth = 64

// Exploration is the MCTS UCB1 constant C.
const Exploration = 1.3

// Cutoff caps MCTS playouts, in plies.
const Cutoff = 100

// PlayoutDepth is the search depth of heuristic MCTS playouts.
const PlayoutDepth = 2

// Batch is the number of MCTS simulations between clock reads.
const Batch = 128

// TableMemoryFraction is the share of system memory one transposition table
// may fill.
const TableMemoryFraction = 0.05
