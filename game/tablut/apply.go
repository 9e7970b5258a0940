package tablut

import (
	"fmt"

	"gamesearch/game"
)

// Undo reverts one Apply. Besides the move it records what stood on the four
// neighbours of the destination, the only cells a capture can clear.
type Undo struct {
	Move      Move
	Neighbors uint8 // 2 bits per direction, in dirs order
}

func (b *Board) Apply(m Move) Undo {
	if b.status != game.Going {
		panic(fmt.Errorf("%w: apply %s\n%s", game.ErrTerminal, m, b))
	}

	u := Undo{Move: m}
	if m.IsPass() {
		if b.Turn() {
			b.status = game.Lose
		} else {
			b.status = game.Win
		}
		b.plies++
		return u
	}

	from, to := int(m.From), int(m.To)
	piece := b.at(from)
	if piece == Empty {
		panic(fmt.Errorf("tablut: no piece to move for %s\n%s", m, b))
	}
	for d, off := range dirs {
		u.Neighbors |= uint8(b.at(to+off)) << (2 * d)
	}

	b.put(from, Empty)
	b.put(to, piece)
	for _, off := range dirs {
		a1, a2 := to+off, to+2*off
		if !b.captures(a1, a2) {
			continue
		}
		if b.king.Has(a1) {
			b.status = game.Lose
		}
		b.put(a1, Empty)
	}
	if piece == King && goal.Has(to) {
		b.status = game.Win
	}

	b.plies++
	key := b.Key()
	b.seen[key]++
	limit := b.rules.RepetitionLimit
	if b.status == game.Going && limit > 0 && b.seen[key] >= limit {
		b.status = game.Draw
	}
	return u
}

func (b *Board) Undo(u Undo) {
	if b.plies == 0 {
		panic(fmt.Errorf("%w: nothing to undo", game.ErrUndoMismatch))
	}
	if u.Move.IsPass() {
		// A pass always ends the game.
		if b.status == game.Going {
			panic(fmt.Errorf("%w: pass on a going game\n%s", game.ErrUndoMismatch, b))
		}
		b.plies--
		b.status = game.Going
		return
	}

	from, to := int(u.Move.From), int(u.Move.To)
	if !b.matches(u, from, to) {
		panic(fmt.Errorf("%w: %s\n%s", game.ErrUndoMismatch, u.Move, b))
	}
	piece := b.at(to)

	key := b.Key()
	if b.seen[key] <= 1 {
		delete(b.seen, key)
	} else {
		b.seen[key]--
	}
	b.plies--
	b.status = game.Going

	b.put(to, Empty)
	for d, off := range dirs {
		b.put(to+off, Piece(u.Neighbors>>(2*d)&3))
	}
	b.put(from, piece)
}

// matches reports whether u can be the token of the last move: the side that
// just moved stands on to, from is empty and every neighbour of to either
// holds what was recorded or was emptied by a capture.
func (b *Board) matches(u Undo, from, to int) bool {
	piece := b.at(to)
	if piece == Empty || b.at(from) != Empty {
		return false
	}
	if (piece == Attacker) != b.Turn() {
		return false
	}
	for d, off := range dirs {
		recorded, now := Piece(u.Neighbors>>(2*d)&3), b.at(to+off)
		if to+off == from {
			if recorded != piece {
				return false
			}
			continue
		}
		switch {
		case now == recorded:
		case now != Empty:
			return false
		case (recorded == Attacker) == (piece == Attacker):
			return false
		case recorded == King && b.status != game.Lose:
			return false
		}
	}
	return true
}

// captures reports whether the piece on a1 is taken by the side that just
// moved next to it, a2 being the cell beyond a1.
func (b *Board) captures(a1, a2 int) bool {
	if b.Turn() {
		return b.attackers.Has(a1) && (b.defenders.Has(a2) || b.king.Has(a2) || b.aid(a2))
	}
	switch {
	case b.defenders.Has(a1):
		return b.hostile(a2)
	case b.king.Has(a1):
		if b.rules.KingCapture == KingCaptureThrone && !throneArea.Has(a1) {
			return b.hostile(a2)
		}
		for _, off := range dirs {
			if !b.hostile(a1 + off) {
				return false
			}
		}
		return true
	}
	return false
}

// hostile reports whether i counts as an attacker for captures.
func (b *Board) hostile(i int) bool {
	return b.attackers.Has(i) || b.aid(i)
}

func (b *Board) aid(i int) bool {
	return captureAid.Has(i) && !b.occupied().Has(i)
}
