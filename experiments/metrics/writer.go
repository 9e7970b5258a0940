package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gamesearch/game/tablut"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID          int           `yaml:"id"`
	Engine      string        `yaml:"engine"` // minimax, mcts or random
	Duration    time.Duration `yaml:"duration,omitempty"`
	Episodes    int           `yaml:"episodes,omitempty"`
	Cutoff      int           `yaml:"cutoff,omitempty"`
	Exploration float64       `yaml:"exploration,omitempty"`
	Policy      string        `yaml:"policy,omitempty"` // random or heuristic
	Cache       bool          `yaml:"cache,omitempty"`
	MaxDepth    int           `yaml:"max_depth,omitempty"`
	Table       bool          `yaml:"table,omitempty"`
	Seed        uint64        `yaml:"seed,omitempty"`
	// Weights replaces the default Tablut heuristic of this agent's game.
	Weights *tablut.Weights `yaml:"weights,omitempty"`
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, plays the first player's side
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> to hold one experiment's files.
func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := strings.ReplaceAll(time.Now().UTC().Format(time.RFC3339Nano), ":", "-")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "engine", "duration", "episodes", "cutoff", "exploration", "policy", "cache", "max_depth", "table", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Engine,
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			config.Policy,
			strconv.FormatBool(config.Cache),
			strconv.Itoa(config.MaxDepth),
			strconv.FormatBool(config.Table),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_first", "status", "desynced", "start_time", "end_time", "duration", "total_moves",
		"avg_think1", "max_think1", "avg_think2", "max_think2"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.FormatBool(record.StartingFirst),
			record.Status,
			strconv.FormatBool(record.Desynced),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			record.AvgThink[0].String(),
			record.MaxThink[0].String(),
			record.AvgThink[1].String(),
			record.MaxThink[1].String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "first", "move", "engine", "duration", "depth", "nodes", "ended_early", "table_hits",
		"episodes", "full_playouts", "cache_hits", "is_tree_reset"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.FormatBool(record.First),
			record.Move,
			record.Engine,
			record.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.FormatBool(record.EndedEarly),
			strconv.Itoa(record.TableHits),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.CacheHits),
			strconv.FormatBool(record.IsTreeReset),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteSummary stores any YAML-encodable value as summary.yaml.
func (w *Writer) WriteSummary(summary any) error {
	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	path := filepath.Join(w.baseDir, "summary.yaml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
