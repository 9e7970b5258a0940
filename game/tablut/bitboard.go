package tablut

import "math/bits"

const (
	Size  = 9
	Width = Size + 2 // one cell of padding on each side
	Cells = Width * Width
)

// Bitboard is a set of cells in the padded 11x11 index space.
type Bitboard struct {
	Lo, Hi uint64
}

// Index maps board coordinates (0-based, column then row) to a padded index.
func Index(col, row int) int {
	return (row+1)*Width + col + 1
}

// Coords is the inverse of Index.
func Coords(i int) (col, row int) {
	return i%Width - 1, i/Width - 1
}

func (b Bitboard) Has(i int) bool {
	switch {
	case i < 0 || i >= Cells:
		return false
	case i < 64:
		return b.Lo&(1<<uint(i)) != 0
	default:
		return b.Hi&(1<<uint(i-64)) != 0
	}
}

func (b *Bitboard) Set(i int) {
	if i < 64 {
		b.Lo |= 1 << uint(i)
	} else {
		b.Hi |= 1 << uint(i-64)
	}
}

func (b *Bitboard) Clear(i int) {
	if i < 64 {
		b.Lo &^= 1 << uint(i)
	} else {
		b.Hi &^= 1 << uint(i-64)
	}
}

func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

func (b Bitboard) Count() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

func (b Bitboard) IsZero() bool {
	return b.Lo == 0 && b.Hi == 0
}

// Pop removes and returns the lowest set index. The board must not be empty.
func (b *Bitboard) Pop() int {
	if b.Lo != 0 {
		i := bits.TrailingZeros64(b.Lo)
		b.Lo &= b.Lo - 1
		return i
	}
	i := bits.TrailingZeros64(b.Hi)
	b.Hi &= b.Hi - 1
	return i + 64
}

func maskOf(rows [Size]string) Bitboard {
	var b Bitboard
	for row, line := range rows {
		for col := 0; col < Size; col++ {
			if line[col] == '#' {
				b.Set(Index(col, row))
			}
		}
	}
	return b
}

var (
	inside = maskOf([Size]string{
		"#########",
		"#########",
		"#########",
		"#########",
		"#########",
		"#########",
		"#########",
		"#########",
		"#########",
	})

	// Camps and the throne. Pieces may not enter them, except that a piece
	// standing on one may move up to two cells through adjacent block cells.
	blocks = maskOf([Size]string{
		"...###...",
		"....#....",
		".........",
		"#.......#",
		"##..#..##",
		"#.......#",
		".........",
		"....#....",
		"...###...",
	})

	// Empty cells that act as a hostile piece for captures.
	captureAid = maskOf([Size]string{
		"...#.#...",
		"....#....",
		".........",
		"#.......#",
		".#..#..#.",
		"#.......#",
		".........",
		"....#....",
		"...#.#...",
	})

	// Escape cells for the king.
	goal = maskOf([Size]string{
		".##...##.",
		"#.......#",
		"#.......#",
		".........",
		".........",
		".........",
		"#.......#",
		"#.......#",
		".##...##.",
	})

	throne     = Index(4, 4)
	throneArea = maskOf([Size]string{
		".........",
		".........",
		".........",
		"....#....",
		"...###...",
		"....#....",
		".........",
		".........",
		".........",
	})
)

var dirs = [4]int{1, -1, Width, -Width}
