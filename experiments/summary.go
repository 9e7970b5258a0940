package experiments

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Name     string           `yaml:"name"`
	Game     string           `yaml:"game"`
	Games    int              `yaml:"games"`
	MatchUps []MatchUpSummary `yaml:"match_ups"`
	Agents   []AgentSummary   `yaml:"agents"`
}

// MatchUpSummary counts results by agent, whichever side it played.
type MatchUpSummary struct {
	Agents     [2]int  `yaml:"agents,flow"`
	Games      int     `yaml:"games"`
	Wins       [2]int  `yaml:"wins,flow"`
	Draws      int     `yaml:"draws"`
	Unfinished int     `yaml:"unfinished"`
	Desynced   int     `yaml:"desynced"`
	AvgMoves   float64 `yaml:"avg_moves"`
}

type AgentSummary struct {
	ID         int     `yaml:"id"`
	Engine     string  `yaml:"engine"`
	Moves      int     `yaml:"moves"`
	MeanThink  string  `yaml:"mean_think"`
	StdThink   string  `yaml:"std_think"`
	Throughput float64 `yaml:"searches_per_second"` // alpha-beta nodes or MCTS episodes
}

func summarize(exp Experiment, games []metrics.GameRecord, moves []metrics.MoveRecord) Summary {
	summary := Summary{Name: exp.Name, Game: exp.Game, Games: len(games)}
	if exp.Games > 0 {
		for i, chunk := range lo.Chunk(games, exp.Games) {
			summary.MatchUps = append(summary.MatchUps, summarizeMatchUp(exp.MatchUps[i], chunk))
		}
	}

	gameByID := lo.KeyBy(games, func(g metrics.GameRecord) int { return g.ID })
	byAgent := lo.GroupBy(moves, func(m metrics.MoveRecord) int {
		if m.First {
			return gameByID[m.Game].Agent1
		}
		return gameByID[m.Game].Agent2
	})
	for _, config := range exp.Agents {
		summary.Agents = append(summary.Agents, summarizeAgent(config, byAgent[config.ID]))
	}
	return summary
}

func summarizeMatchUp(agents [2]int, games []metrics.GameRecord) MatchUpSummary {
	winner := func(g metrics.GameRecord) int {
		switch g.Status {
		case game.Win.String():
			return g.Agent1
		case game.Lose.String():
			return g.Agent2
		}
		return 0
	}
	s := MatchUpSummary{
		Agents:     agents,
		Games:      len(games),
		Draws:      lo.CountBy(games, func(g metrics.GameRecord) bool { return g.Status == game.Draw.String() }),
		Unfinished: lo.CountBy(games, func(g metrics.GameRecord) bool { return g.Status == game.Going.String() }),
		Desynced:   lo.CountBy(games, func(g metrics.GameRecord) bool { return g.Desynced }),
	}
	for i, id := range agents {
		s.Wins[i] = lo.CountBy(games, func(g metrics.GameRecord) bool { return winner(g) == id })
	}
	if len(games) > 0 {
		s.AvgMoves = float64(lo.SumBy(games, func(g metrics.GameRecord) int { return g.TotalMoves })) / float64(len(games))
	}
	return s
}

// summarizeAgent measures think time and search throughput over every move
// an agent made.
func summarizeAgent(config metrics.AgentConfig, moves []metrics.MoveRecord) AgentSummary {
	s := AgentSummary{ID: config.ID, Engine: config.Engine, Moves: len(moves)}
	if len(moves) == 0 {
		return s
	}

	durations := lo.Map(moves, func(m metrics.MoveRecord, _ int) float64 { return float64(m.Duration) })
	s.MeanThink = time.Duration(stat.Mean(durations, nil)).String()
	if len(durations) > 1 {
		s.StdThink = time.Duration(stat.StdDev(durations, nil)).String()
	}

	searches := lo.SumBy(moves, func(m metrics.MoveRecord) int { return m.Nodes + m.Episodes })
	elapsed := time.Duration(lo.SumBy(moves, func(m metrics.MoveRecord) int64 { return int64(m.Duration) }))
	if elapsed > 0 {
		s.Throughput = float64(searches) / elapsed.Seconds()
	}
	return s
}
