package tablut

import (
	"fmt"
	"slices"

	"gamesearch/game"
)

// Move relocates the piece on From to To, both padded indices.
type Move struct {
	From, To uint8
}

// Pass is returned as the only move when the side to move is stuck. Applying
// it loses the game for that side.
var Pass = Move{}

func (m Move) IsPass() bool {
	return m.From == m.To
}

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return cellName(int(m.From)) + "-" + cellName(int(m.To))
}

func cellName(i int) string {
	col, row := Coords(i)
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// NewMove builds a move from board coordinates.
func NewMove(fromCol, fromRow, toCol, toRow int) Move {
	return Move{From: uint8(Index(fromCol, fromRow)), To: uint8(Index(toCol, toRow))}
}

// walk calls fn for every empty cell the piece on from can slide to.
func walk(from int, occupied Bitboard, fn func(to int)) {
	onBlock := blocks.Has(from)
	for _, d := range dirs {
		for to, n := from+d, 1; inside.Has(to) && !occupied.Has(to); to, n = to+d, n+1 {
			if blocks.Has(to) && (!onBlock || n > 2) {
				break
			}
			fn(to)
		}
	}
}

func (b *Board) movers() Bitboard {
	if b.Turn() {
		return b.defenders.Or(b.king)
	}
	return b.attackers
}

func (b *Board) LegalMoves() []Move {
	if b.status != game.Going {
		panic(fmt.Errorf("%w: legal moves requested\n%s", game.ErrTerminal, b))
	}

	occupied := b.occupied()
	moves := make([]Move, 0, 64)
	for pieces := b.movers(); !pieces.IsZero(); {
		from := pieces.Pop()
		walk(from, occupied, func(to int) {
			moves = append(moves, Move{From: uint8(from), To: uint8(to)})
		})
	}
	if len(moves) == 0 {
		return []Move{Pass}
	}
	return moves
}

// Sort keys by move distance; lower is searched first.
var distanceOrder = [2][Size]int{
	{9, 4, 5, 3, 6, 7, 2, 1, 0}, // defender
	{9, 5, 2, 4, 3, 7, 1, 6, 0}, // attacker
}

// OrderedMoves returns LegalMoves sorted by the static distance table.
func (b *Board) OrderedMoves() []Move {
	moves := b.LegalMoves()
	order := distanceOrder[1]
	if b.Turn() {
		order = distanceOrder[0]
	}
	slices.SortStableFunc(moves, func(x, y Move) int {
		return order[distance(x)] - order[distance(y)]
	})
	return moves
}

func distance(m Move) int {
	d := int(m.To) - int(m.From)
	if d < 0 {
		d = -d
	}
	if d >= Width {
		d /= Width
	}
	return d
}
