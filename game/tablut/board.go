package tablut

import (
	"fmt"
	"maps"
	"strings"

	"gamesearch/game"
)

type Piece uint8

const (
	Empty Piece = iota
	Attacker
	Defender
	King
)

func (p Piece) String() string {
	return string(".ADK"[p])
}

var startPosition = []string{
	"...AAA...",
	"....A....",
	"....D....",
	"A...D...A",
	"AADDKDDAA",
	"A...D...A",
	"....D....",
	"....A....",
	"...AAA...",
}

// Key is the canonical identity of a position: piece placement plus the side
// to move. Boards reached through different move orders share a key.
type Key struct {
	Attackers Bitboard
	Defenders Bitboard
	King      Bitboard
	Defender  bool
}

// Board is a Tablut position. It implements game.Game with the defender as
// the first player: Turn() is true when the defender is to move, Win means the
// king escaped and Lose means the king was captured.
type Board struct {
	attackers Bitboard
	defenders Bitboard
	king      Bitboard

	defenderFirst bool
	plies         int
	status        game.Status
	seen          map[Key]int

	rules Rules
}

// New returns the standard starting position. Standard Tablut is New(false):
// the attackers open.
func New(defenderFirst bool, options ...Option) *Board {
	b, err := Parse(startPosition, defenderFirst, options...)
	if err != nil {
		panic(err)
	}
	return b
}

// Parse builds a position from nine rows of 'A', 'D', 'K' and '.' (row 0 at
// the top). A position without a king is already lost for the defender.
func Parse(rows []string, defenderToMove bool, options ...Option) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("tablut: expected %d rows, got %d", Size, len(rows))
	}

	b := &Board{
		defenderFirst: defenderToMove,
		seen:          map[Key]int{},
		rules:         DefaultRules(),
	}
	for _, option := range options {
		option(&b.rules)
	}

	kings := 0
	for row, line := range rows {
		if len(line) != Size {
			return nil, fmt.Errorf("tablut: row %d has %d cells, expected %d", row, len(line), Size)
		}
		for col := 0; col < Size; col++ {
			i := Index(col, row)
			switch line[col] {
			case '.':
			case 'A':
				b.attackers.Set(i)
			case 'D':
				b.defenders.Set(i)
			case 'K':
				b.king.Set(i)
				kings++
			default:
				return nil, fmt.Errorf("tablut: unknown piece %q at row %d col %d", line[col], row, col)
			}
		}
	}
	if kings > 1 {
		return nil, fmt.Errorf("tablut: %d kings on the board", kings)
	}
	if kings == 0 {
		b.status = game.Lose
	}
	b.seen[b.Key()] = 1
	return b, nil
}

func (b *Board) Turn() bool {
	return (b.plies%2 == 0) == b.defenderFirst
}

func (b *Board) Status() game.Status {
	return b.status
}

func (b *Board) Plies() int {
	return b.plies
}

func (b *Board) Key() Key {
	return Key{
		Attackers: b.attackers,
		Defenders: b.defenders,
		King:      b.king,
		Defender:  b.Turn(),
	}
}

// At returns the piece on a board cell.
func (b *Board) At(col, row int) Piece {
	return b.at(Index(col, row))
}

func (b *Board) at(i int) Piece {
	switch {
	case b.attackers.Has(i):
		return Attacker
	case b.defenders.Has(i):
		return Defender
	case b.king.Has(i):
		return King
	}
	return Empty
}

func (b *Board) put(i int, p Piece) {
	b.attackers.Clear(i)
	b.defenders.Clear(i)
	b.king.Clear(i)
	switch p {
	case Attacker:
		b.attackers.Set(i)
	case Defender:
		b.defenders.Set(i)
	case King:
		b.king.Set(i)
	}
}

func (b *Board) occupied() Bitboard {
	return b.attackers.Or(b.defenders).Or(b.king)
}

// Counts returns the number of attackers and defenders (king excluded).
func (b *Board) Counts() (attackers, defenders int) {
	return b.attackers.Count(), b.defenders.Count()
}

func (b *Board) Clone() *Board {
	c := *b
	c.seen = maps.Clone(b.seen)
	return &c
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteString(b.At(col, row).String())
		}
		sb.WriteByte('\n')
	}
	side := "attacker"
	if b.Turn() {
		side = "defender"
	}
	fmt.Fprintf(&sb, "%s to move, ply %d, %s", side, b.plies, b.status)
	return sb.String()
}
