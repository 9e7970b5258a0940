package engine

import (
	"fmt"
	"time"

	"gamesearch/agent"
	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Local plays two in-process agents against each other. agents[0] plays the
// first player's side, so it moves whenever Turn() is true.
type Local[M comparable] struct {
	agents   [2]agent.Agent[M]
	maxTurns int
	budgets  [2]time.Duration
}

func NewLocal[M comparable](first, second agent.Agent[M], options ...Option) *Local[M] {
	s := defaults()
	for _, option := range options {
		option(&s)
	}
	return &Local[M]{
		agents:   [2]agent.Agent[M]{first, second},
		maxTurns: s.maxTurns,
		budgets:  s.budgets,
	}
}

// Run executes the entire game loop. Both agents see every move.
func (e *Local[M]) Run() (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingFirst: e.agents[0].Turn(),
		StartTime:     time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	var think [2][]float64

	log.Info().Msgf("starting game, first player moves first: %t", gameMetric.StartingFirst)

	for step := 1; step <= e.maxTurns; step++ {
		if !e.synced() {
			gameMetric.Desynced = true
			break
		}
		if e.agents[0].Status() != game.Going {
			break
		}

		i := 1
		if e.agents[0].Turn() {
			i = 0
		}
		start := time.Now()
		move := e.agents[i].ChooseMove(e.budgets[i])
		elapsed := time.Since(start)
		think[i] = append(think[i], float64(elapsed))

		moveMetric := metrics.MoveMetric{
			Step:  step,
			First: i == 0,
			Move:  fmt.Sprint(move),
		}
		if r, ok := e.agents[i].(agent.Reporter); ok {
			moveMetric.SearchMetric = r.LastMetric()
		}
		if moveMetric.Duration == 0 {
			moveMetric.Duration = elapsed
		}
		moveMetrics = append(moveMetrics, moveMetric)

		for _, a := range e.agents {
			a.CommitMove(move)
		}
	}
	if !gameMetric.Desynced && !e.synced() {
		gameMetric.Desynced = true
	}

	gameMetric.Status = e.agents[0].Status().String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	for i, samples := range think {
		if len(samples) == 0 {
			continue
		}
		gameMetric.AvgThink[i] = time.Duration(stat.Mean(samples, nil))
		gameMetric.MaxThink[i] = time.Duration(floats.Max(samples))
	}

	log.Info().
		Str("status", gameMetric.Status).
		Int("moves", gameMetric.TotalMoves).
		Bool("desynced", gameMetric.Desynced).
		Msg("game over")
	return gameMetric, moveMetrics
}

// synced cross-checks the agents' views of the game. A mismatch is logged
// and ends the game; it is not fatal.
func (e *Local[M]) synced() bool {
	a, b := e.agents[0], e.agents[1]
	if a.Status() == b.Status() && a.Turn() == b.Turn() {
		return true
	}
	log.Error().
		Str("first-status", a.Status().String()).
		Bool("first-turn", a.Turn()).
		Str("second-status", b.Status().String()).
		Bool("second-turn", b.Turn()).
		Msg("agents disagree on the game state")
	return false
}
