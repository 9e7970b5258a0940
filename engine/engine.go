package engine

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/meta"
)

type Engine interface {
	// Run plays a game until it ends, the agents desync or the turn cap is hit
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

type Option func(s *settings)

type settings struct {
	maxTurns int
	budgets  [2]time.Duration
}

func WithMaxTurns(turns int) Option {
	return func(s *settings) {
		if turns > 0 {
			s.maxTurns = turns
		}
	}
}

// WithBudget sets the think time given to every move.
func WithBudget(budget time.Duration) Option {
	return WithBudgets(budget, budget)
}

// WithBudgets sets the think time of each side; zero keeps the default.
func WithBudgets(first, second time.Duration) Option {
	return func(s *settings) {
		for i, budget := range []time.Duration{first, second} {
			if budget > 0 {
				s.budgets[i] = budget
			}
		}
	}
}

func defaults() settings {
	return settings{
		maxTurns: meta.MAX_TURNS,
		budgets:  [2]time.Duration{meta.TIME_BUDGET, meta.TIME_BUDGET},
	}
}
