package game

import "errors"

// Any two-player, perfect-information game that wants to be searched by the
// minimax or MCTS engines implements Game. A single instance is mutated in
// place by Apply and restored by Undo, so engines never clone states.
//
// Status and Heuristic are absolute: Win means the first player (Turn() ==
// true) has won, and a positive heuristic favours the first player.
type Game[M comparable, K comparable, U any] interface {
	// Turn reports whether the first player is to move.
	Turn() bool
	// LegalMoves is never empty for a Going state. Games that can run out of
	// moves return a pass sentinel whose application ends the game.
	LegalMoves() []M
	// Key identifies the position. Rules-equivalent states share a key.
	Key() K
	Status() Status
	Heuristic() int64
	Apply(move M) U
	Undo(token U)
}

// Orderer is implemented by games with a static move ordering that is better
// than LegalMoves for alpha-beta pruning.
type Orderer[M comparable] interface {
	OrderedMoves() []M
}

type Status int8

const (
	Going Status = iota
	Win
	Lose
	Draw
)

func (s Status) String() string {
	switch s {
	case Going:
		return "going"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Reward scores a finished game for the first player: Win=1, Lose=0, Draw=0.5.
func (s Status) Reward() float64 {
	switch s {
	case Win:
		return 1
	case Lose:
		return 0
	}
	return 0.5
}

// Heuristic values at or beyond ±Decisive denote forced results. Games score
// a decided position as ±(WinScore - plies) so that quicker wins rank higher.
const (
	WinScore int64 = 1 << 20
	Decisive       = WinScore / 2
)

func IsDecisive(value int64) bool {
	return value >= Decisive || value <= -Decisive
}

// Score returns the absolute heuristic of a decided game reached after plies.
func Score(s Status, plies int) int64 {
	switch s {
	case Win:
		return WinScore - int64(plies)
	case Lose:
		return -WinScore + int64(plies)
	}
	return 0
}

var (
	ErrTerminal     = errors.New("game: move on terminal state")
	ErrUndoMismatch = errors.New("game: undo token does not match state")
)
