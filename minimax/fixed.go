package minimax

import "gamesearch/game"

// BestMove runs a plain fixed-depth alpha-beta search without a tree or a
// clock and returns the best move with its value. It is cheap enough to drive
// playouts. The game must be Going.
func BestMove[M comparable, K comparable, U any](g game.Game[M, K, U], depth int) (M, int64) {
	moves := legalMoves(g)
	maximizing := g.Turn()
	best := moves[0]
	a, b := int64(-inf), int64(inf)
	for _, m := range moves {
		u := g.Apply(m)
		v := alphaBeta(g, a, b, depth-1)
		g.Undo(u)
		if maximizing && v > a {
			a, best = v, m
		} else if !maximizing && v < b {
			b, best = v, m
		}
	}
	if maximizing {
		return best, a
	}
	return best, b
}

func alphaBeta[M comparable, K comparable, U any](g game.Game[M, K, U], alpha, beta int64, depth int) int64 {
	if depth <= 0 || g.Status() != game.Going {
		return g.Heuristic()
	}
	maximizing := g.Turn()
	for _, m := range legalMoves(g) {
		u := g.Apply(m)
		v := alphaBeta(g, alpha, beta, depth-1)
		g.Undo(u)
		if maximizing && v > alpha {
			alpha = v
		} else if !maximizing && v < beta {
			beta = v
		}
		if alpha >= beta {
			break
		}
	}
	if maximizing {
		return alpha
	}
	return beta
}
