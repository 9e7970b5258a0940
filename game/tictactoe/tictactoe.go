package tictactoe

import (
	"fmt"
	"strings"

	"gamesearch/game"
)

// Mark of a cell. X is always the first player.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// Move is a cell index, 0..8 row-major.
type Move uint8

type Key struct {
	Cells [9]Mark
	XTurn bool
}

type Board struct {
	cells  [9]Mark
	xFirst bool
	plies  int
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func New(xFirst bool) *Board {
	return &Board{xFirst: xFirst}
}

// Parse reads nine cells of 'X', 'O' and '.'.
func Parse(cells string, xToMove bool) (*Board, error) {
	cells = strings.ReplaceAll(cells, "\n", "")
	if len(cells) != 9 {
		return nil, fmt.Errorf("tictactoe: expected 9 cells, got %d", len(cells))
	}
	b := &Board{xFirst: xToMove}
	for i := 0; i < 9; i++ {
		switch cells[i] {
		case '.':
		case 'X':
			b.cells[i] = X
		case 'O':
			b.cells[i] = O
		default:
			return nil, fmt.Errorf("tictactoe: unknown mark %q", cells[i])
		}
	}
	return b, nil
}

func (b *Board) Turn() bool {
	return (b.plies%2 == 0) == b.xFirst
}

func (b *Board) mark() Mark {
	if b.Turn() {
		return X
	}
	return O
}

func (b *Board) Key() Key {
	return Key{Cells: b.cells, XTurn: b.Turn()}
}

func (b *Board) Status() game.Status {
	for _, l := range lines {
		if m := b.cells[l[0]]; m != Empty && m == b.cells[l[1]] && m == b.cells[l[2]] {
			if m == X {
				return game.Win
			}
			return game.Lose
		}
	}
	for _, m := range b.cells {
		if m == Empty {
			return game.Going
		}
	}
	return game.Draw
}

func (b *Board) LegalMoves() []Move {
	if s := b.Status(); s != game.Going {
		panic(fmt.Errorf("%w: tictactoe is %s", game.ErrTerminal, s))
	}
	moves := make([]Move, 0, 9)
	for i, m := range b.cells {
		if m == Empty {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

// Heuristic only scores decided games; everything else is even.
func (b *Board) Heuristic() int64 {
	return game.Score(b.Status(), b.plies)
}

func (b *Board) Apply(m Move) Move {
	if s := b.Status(); s != game.Going {
		panic(fmt.Errorf("%w: tictactoe is %s", game.ErrTerminal, s))
	}
	if m > 8 || b.cells[m] != Empty {
		panic(fmt.Errorf("tictactoe: illegal move %d", m))
	}
	b.cells[m] = b.mark()
	b.plies++
	return m
}

func (b *Board) Undo(m Move) {
	if b.plies == 0 || m > 8 || b.cells[m] == Empty {
		panic(fmt.Errorf("%w: cell %d", game.ErrUndoMismatch, m))
	}
	b.plies--
	if b.cells[m] != b.mark() {
		b.plies++
		panic(fmt.Errorf("%w: cell %d holds the other mark", game.ErrUndoMismatch, m))
	}
	b.cells[m] = Empty
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) String() string {
	var sb strings.Builder
	for i, m := range b.cells {
		sb.WriteByte(".XO"[m])
		if i%3 == 2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
