package experiments

import (
	"fmt"
	"os"
	"time"

	"gamesearch/agent"
	"gamesearch/engine"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/game/tablut"
	"gamesearch/game/tictactoe"
	"gamesearch/meta"
	"gamesearch/minimax"
	"gamesearch/searcher"
	"gamesearch/transposition"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	Tablut    = "tablut"
	TicTacToe = "tictactoe"
)

// Experiment is a set of match-ups between agent configurations. Each pair
// in MatchUps names two agent IDs; the first plays the first player's side
// unless AlternateSides swaps them on every other game.
type Experiment struct {
	Name           string                `yaml:"name"`
	Game           string                `yaml:"game"`
	Games          int                   `yaml:"games"` // per match-up
	Parallelism    int                   `yaml:"parallelism"`
	Budget         time.Duration         `yaml:"budget"`
	MaxTurns       int                   `yaml:"max_turns"`
	AlternateSides bool                  `yaml:"alternate_sides"`
	Agents         []metrics.AgentConfig `yaml:"agents"`
	MatchUps       [][2]int              `yaml:"match_ups"`
}

func LoadExperiment(path string) (Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Experiment{}, fmt.Errorf("failed to read experiment file: %w", err)
	}
	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return Experiment{}, fmt.Errorf("failed to parse experiment file %s: %w", path, err)
	}
	return exp, nil
}

// Default pits alpha-beta with a table against MCTS with both playout
// policies.
func Default(gameName string) Experiment {
	return Experiment{
		Name:           "minimax_vs_mcts",
		Game:           gameName,
		Games:          10,
		Parallelism:    1,
		Budget:         meta.TIME_BUDGET,
		MaxTurns:       meta.MAX_TURNS,
		AlternateSides: true,
		Agents: []metrics.AgentConfig{
			{ID: 1, Engine: "minimax", Table: true},
			{ID: 2, Engine: "mcts", Policy: "random", Cache: true},
			{ID: 3, Engine: "mcts", Policy: "heuristic", Cutoff: 20},
		},
		MatchUps: [][2]int{{1, 2}, {1, 3}, {2, 3}},
	}
}

// Run plays every game of the experiment, writes the records under dir and
// returns the summary.
func Run(exp Experiment, dir string) (Summary, error) {
	switch exp.Game {
	case Tablut:
		return run(exp, dir, newTablut)
	case TicTacToe:
		return run(exp, dir, newTicTacToe)
	}
	return Summary{}, fmt.Errorf("unknown game %q", exp.Game)
}

// newTablut builds the game an agent searches over, with the agent's own
// heuristic weights when it has them.
func newTablut(config metrics.AgentConfig, first bool) game.Game[tablut.Move, tablut.Key, tablut.Undo] {
	var options []tablut.Option
	if config.Weights != nil {
		options = append(options, tablut.WithWeights(*config.Weights))
	}
	return tablut.New(first, options...)
}

func newTicTacToe(_ metrics.AgentConfig, first bool) game.Game[tictactoe.Move, tictactoe.Key, tictactoe.Move] {
	return tictactoe.New(first)
}

// newGameFunc builds a fresh game for one agent; first selects whether the
// game's first player opens.
type newGameFunc[M comparable, K comparable, U any] func(config metrics.AgentConfig, first bool) game.Game[M, K, U]

// startsFirst reports whether the game's first player opens. Tablut opens
// with the attackers.
func startsFirst(gameName string) bool {
	return gameName != Tablut
}

type job struct {
	id     int
	first  metrics.AgentConfig
	second metrics.AgentConfig
}

func run[M comparable, K comparable, U any](exp Experiment, dir string, newGame newGameFunc[M, K, U]) (Summary, error) {
	configs := lo.KeyBy(exp.Agents, func(c metrics.AgentConfig) int { return c.ID })

	var jobs []job
	for _, matchUp := range exp.MatchUps {
		a, ok := configs[matchUp[0]]
		if !ok {
			return Summary{}, fmt.Errorf("match-up %v: unknown agent %d", matchUp, matchUp[0])
		}
		b, ok := configs[matchUp[1]]
		if !ok {
			return Summary{}, fmt.Errorf("match-up %v: unknown agent %d", matchUp, matchUp[1])
		}
		for i := 0; i < exp.Games; i++ {
			j := job{id: len(jobs) + 1, first: a, second: b}
			if exp.AlternateSides && i%2 == 1 {
				j.first, j.second = b, a
			}
			jobs = append(jobs, j)
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(jobs))

	first := startsFirst(exp.Game)
	gameRecords := make([]metrics.GameRecord, len(jobs))
	moveRecords := make([][]metrics.MoveRecord, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(1, exp.Parallelism))
	for i, j := range jobs {
		g.Go(func() error {
			newFirst, err := newFactory(j.first, newGame, uint64(j.id))
			if err != nil {
				return err
			}
			newSecond, err := newFactory(j.second, newGame, uint64(j.id))
			if err != nil {
				return err
			}

			e := engine.NewLocal(newFirst(first), newSecond(first),
				engine.WithMaxTurns(exp.MaxTurns),
				engine.WithBudgets(budget(j.first, exp), budget(j.second, exp)))
			gameMetric, moveMetrics := e.Run()

			gameRecords[i] = metrics.GameRecord{
				ID:         j.id,
				Agent1:     j.first.ID,
				Agent2:     j.second.ID,
				GameMetric: gameMetric,
			}
			moveRecords[i] = lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: j.id, MoveMetric: mm}
			})

			log.Info().Msgf("completed game %d of %d: agent %d vs agent %d, %s",
				j.id, len(jobs), j.first.ID, j.second.ID, gameMetric.Status)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	moves := lo.Flatten(moveRecords)
	summary := summarize(exp, gameRecords, moves)
	if dir == "" {
		return summary, nil
	}
	return summary, write(exp, dir, gameRecords, moves, summary)
}

func write(exp Experiment, dir string, games []metrics.GameRecord, moves []metrics.MoveRecord, summary Summary) error {
	writer, err := metrics.NewWriter(dir, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteSummary(summary); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return nil
}

func budget(config metrics.AgentConfig, exp Experiment) time.Duration {
	if config.Duration > 0 {
		return config.Duration
	}
	return exp.Budget
}

// newFactory validates config and returns a factory for the engine it names.
// seed is mixed into the configured seed so that games of a match-up differ.
func newFactory[M comparable, K comparable, U any](config metrics.AgentConfig, newGame newGameFunc[M, K, U], seed uint64) (agent.Factory[M], error) {
	seed += config.Seed
	logger := log.With().Int("agent", config.ID).Str("engine", config.Engine).Logger()
	switch config.Engine {
	case "minimax":
		options := []minimax.Option{minimax.WithMetrics(), minimax.WithLogger(logger)}
		if config.MaxDepth > 0 {
			options = append(options, minimax.WithMaxDepth(config.MaxDepth))
		}
		return func(first bool) agent.Agent[M] {
			options := options[:len(options):len(options)]
			if config.Table {
				table := transposition.New[K](transposition.WithMemoryFraction(meta.TableMemoryFraction))
				options = append(options, minimax.WithTable(table))
			}
			return minimax.New(newGame(config, first), options...)
		}, nil

	case "mcts":
		options := []searcher.Option{
			searcher.WithDuration(meta.TIME_BUDGET),
			searcher.WithSeed(seed),
			searcher.WithMetrics(),
			searcher.WithLogger(logger),
		}
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Cutoff > 0 {
			options = append(options, searcher.WithCutoff(config.Cutoff))
		}
		if config.Exploration > 0 {
			options = append(options, searcher.WithExploration(config.Exploration))
		}
		switch config.Policy {
		case "", "random":
		case "heuristic":
			options = append(options, searcher.WithPolicy(searcher.HeuristicPlayout))
		default:
			return nil, fmt.Errorf("agent %d: unknown playout policy %q", config.ID, config.Policy)
		}
		if config.Cache {
			options = append(options, searcher.WithPlayoutCache())
		}
		return func(first bool) agent.Agent[M] {
			return searcher.NewMCTS(newGame(config, first), options...)
		}, nil

	case "random":
		return func(first bool) agent.Agent[M] {
			return agent.NewRandom(newGame(config, first), seed)
		}, nil
	}
	return nil, fmt.Errorf("agent %d: unknown engine %q", config.ID, config.Engine)
}
