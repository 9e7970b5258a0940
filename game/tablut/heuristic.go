package tablut

import "gamesearch/game"

// Weights of the static evaluation, positive for the defender. Mobility
// weights apply per empty cell a piece can reach.
type Weights struct {
	Tempo            int64 `yaml:"tempo"`
	Bias             int64 `yaml:"bias"`
	Defender         int64 `yaml:"defender"`
	Attacker         int64 `yaml:"attacker"`
	DefenderMobility int64 `yaml:"defender_mobility"`
	KingMobility     int64 `yaml:"king_mobility"`
	AttackerMobility int64 `yaml:"attacker_mobility"`
}

func DefaultWeights() Weights {
	return Weights{
		Tempo:            1,
		Bias:             -16,
		Defender:         6,
		Attacker:         -3,
		DefenderMobility: 2,
		KingMobility:     4,
		AttackerMobility: -1,
	}
}

func (b *Board) Heuristic() int64 {
	if b.status != game.Going {
		return game.Score(b.status, b.plies)
	}

	w := b.rules.Weights
	v := w.Bias + w.Defender*int64(b.defenders.Count()) + w.Attacker*int64(b.attackers.Count())
	if b.Turn() {
		v += w.Tempo
	} else {
		v -= w.Tempo
	}

	occupied := b.occupied()
	v += w.DefenderMobility * mobility(b.defenders, occupied)
	v += w.KingMobility * mobility(b.king, occupied)
	v += w.AttackerMobility * mobility(b.attackers, occupied)
	return v
}

func mobility(pieces, occupied Bitboard) int64 {
	var n int64
	for !pieces.IsZero() {
		walk(pieces.Pop(), occupied, func(int) { n++ })
	}
	return n
}
