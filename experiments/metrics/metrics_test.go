package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("start resets counters but keeps the tree flag", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts")
		c.AddEpisode()
		c.AddCacheHit()
		c.SetTreeReset(true)

		c.Start("mcts")
		c.AddEpisode()
		m := c.Complete()

		require.Equal(t, "mcts", m.Engine)
		require.Equal(t, 1, m.Episodes)
		require.Zero(t, m.CacheHits)
		require.True(t, m.IsTreeReset)
	})

	t.Run("records alpha-beta progress", func(t *testing.T) {
		c := NewCollector()
		c.Start("minimax")
		c.AddNodes(300)
		c.AddTableHits(12)
		c.SetDepth(5, true)
		m := c.Complete()

		require.Equal(t, 300, m.Nodes)
		require.Equal(t, 12, m.TableHits)
		require.Equal(t, 5, m.Depth)
		require.True(t, m.EndedEarly)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("mcts")
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("writes one row per record after the header", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "unit")
		require.NoError(t, err)

		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Engine: "minimax", Table: true},
			{ID: 2, Engine: "mcts", Duration: time.Second, Cutoff: 40},
		}))
		require.NoError(t, w.WriteGameRecords([]GameRecord{
			{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{Status: "Draw", TotalMoves: 9}},
		}))
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, First: true, Move: "4", SearchMetric: SearchMetric{Engine: "minimax", Depth: 9}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Move: "0", SearchMetric: SearchMetric{Engine: "mcts", Episodes: 500}}},
		}))

		configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, configs, 3)
		require.Equal(t, []string{"2", "mcts", "1s", "0", "40", "0", "", "false", "0", "false", "0"}, configs[2])

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, "Draw", games[1][4])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, moves, 3)
		require.Equal(t, "500", moves[2][10])
	})

	t.Run("writes a yaml summary", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "unit")
		require.NoError(t, err)

		require.NoError(t, w.WriteSummary(map[string]int{"games": 3}))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.yaml"))
		require.NoError(t, err)
		require.Equal(t, "games: 3\n", string(data))
	})
}
