package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game/tablut"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ticTacToeExperiment() Experiment {
	return Experiment{
		Name:           "test",
		Game:           TicTacToe,
		Games:          4,
		Parallelism:    2,
		Budget:         time.Second,
		MaxTurns:       20,
		AlternateSides: true,
		Agents: []metrics.AgentConfig{
			{ID: 1, Engine: "minimax", Table: true},
			{ID: 2, Engine: "random", Seed: 7},
		},
		MatchUps: [][2]int{{1, 2}},
	}
}

func TestRun(t *testing.T) {
	t.Run("plays and records every game", func(t *testing.T) {
		dir := t.TempDir()

		summary, err := Run(ticTacToeExperiment(), dir)

		require.NoError(t, err)
		require.Equal(t, 4, summary.Games)
		require.Len(t, summary.MatchUps, 1)
		m := summary.MatchUps[0]
		require.Equal(t, [2]int{1, 2}, m.Agents)
		require.Equal(t, 0, m.Wins[1], "Random play should never beat minimax")
		require.Equal(t, 4, m.Wins[0]+m.Draws)
		require.Zero(t, m.Desynced)
		require.Len(t, summary.Agents, 2)
		require.Positive(t, summary.Agents[0].Moves)

		runs, err := os.ReadDir(filepath.Join(dir, "test"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "summary.yaml"} {
			require.FileExists(t, filepath.Join(dir, "test", runs[0].Name(), name))
		}

		data, err := os.ReadFile(filepath.Join(dir, "test", runs[0].Name(), "summary.yaml"))
		require.NoError(t, err)
		var stored Summary
		require.NoError(t, yaml.Unmarshal(data, &stored))
		require.Equal(t, summary.MatchUps, stored.MatchUps)
	})

	t.Run("plays tablut between searchers", func(t *testing.T) {
		exp := Experiment{
			Name:     "tablut",
			Game:     Tablut,
			Games:    1,
			Budget:   20 * time.Millisecond,
			MaxTurns: 4,
			Agents: []metrics.AgentConfig{
				{ID: 1, Engine: "minimax", MaxDepth: 2},
				{ID: 2, Engine: "mcts", Policy: "heuristic", Cutoff: 4, Episodes: 20},
			},
			MatchUps: [][2]int{{1, 2}},
		}

		summary, err := Run(exp, "")

		require.NoError(t, err)
		require.Equal(t, 1, summary.MatchUps[0].Games)
		require.Zero(t, summary.MatchUps[0].Desynced)
	})

	t.Run("rejects unknown agents", func(t *testing.T) {
		exp := ticTacToeExperiment()
		exp.MatchUps = [][2]int{{1, 9}}

		_, err := Run(exp, "")

		require.ErrorContains(t, err, "unknown agent 9")
	})

	t.Run("rejects unknown engines", func(t *testing.T) {
		exp := ticTacToeExperiment()
		exp.Agents[1].Engine = "oracle"

		_, err := Run(exp, "")

		require.ErrorContains(t, err, `unknown engine "oracle"`)
	})

	t.Run("rejects unknown games", func(t *testing.T) {
		exp := ticTacToeExperiment()
		exp.Game = "chess"

		_, err := Run(exp, "")

		require.Error(t, err)
	})
}

func TestLoadExperiment(t *testing.T) {
	t.Run("reads match-ups from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "experiment.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
name: cutoff
game: tablut
games: 6
budget: 250ms
alternate_sides: true
agents:
  - id: 1
    engine: minimax
    table: true
    weights:
      defender: 12
      king_mobility: 5
  - id: 2
    engine: mcts
    cutoff: 40
    policy: heuristic
    duration: 100ms
match_ups:
  - [1, 2]
`), 0644))

		exp, err := LoadExperiment(path)

		require.NoError(t, err)
		require.Equal(t, "cutoff", exp.Name)
		require.Equal(t, 250*time.Millisecond, exp.Budget)
		require.Len(t, exp.Agents, 2)
		require.Equal(t, 100*time.Millisecond, exp.Agents[1].Duration)
		require.NotNil(t, exp.Agents[0].Weights)
		require.Equal(t, tablut.Weights{Defender: 12, KingMobility: 5}, *exp.Agents[0].Weights)
		require.Nil(t, exp.Agents[1].Weights)
		require.Equal(t, [][2]int{{1, 2}}, exp.MatchUps)
	})

	t.Run("reports a missing file", func(t *testing.T) {
		_, err := LoadExperiment(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
	})
}

func TestNewFactory(t *testing.T) {
	t.Run("builds a fresh agent for either starting side", func(t *testing.T) {
		factory, err := newFactory(metrics.AgentConfig{ID: 1, Engine: "mcts", Episodes: 10}, newTicTacToe, 1)
		require.NoError(t, err)

		first := factory(true)
		require.True(t, first.Turn())
		require.False(t, factory(false).Turn())

		first.CommitMove(first.ChooseMove(0))
		require.False(t, first.Turn())
		require.True(t, factory(true).Turn(), "Each call should start a new game")
	})

	t.Run("gives an agent its own tablut weights", func(t *testing.T) {
		heavy := tablut.DefaultWeights()
		heavy.Defender *= 10

		weighted := newTablut(metrics.AgentConfig{Weights: &heavy}, false)
		plain := newTablut(metrics.AgentConfig{}, false)

		require.Greater(t, weighted.Heuristic(), plain.Heuristic())
		require.Equal(t, plain.Key(), weighted.Key())
	})

	t.Run("rejects unknown playout policies", func(t *testing.T) {
		_, err := newFactory(metrics.AgentConfig{ID: 3, Engine: "mcts", Policy: "greedy"}, newTicTacToe, 1)

		require.ErrorContains(t, err, `unknown playout policy "greedy"`)
	})
}
