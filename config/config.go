package config

import (
	"time"

	"gamesearch/meta"

	"github.com/namsral/flag"
)

// Config is read from flags, then from GAMESEARCH_* environment variables.
type Config struct {
	Game           string
	ExperimentPath string
	Games          int
	Parallelism    int
	Budget         time.Duration
	MaxTurns       int
	OutputDir      string
	LogLevel       string
	Console        bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("gamesearch", "GAMESEARCH", flag.ContinueOnError)
	fs.StringVar(&c.Game, "game", "tablut", "game to play: tablut or tictactoe")
	fs.StringVar(&c.ExperimentPath, "experiment", "", "yaml file describing agents and match-ups; the built-in match-ups are used when empty")
	fs.IntVar(&c.Games, "games", 10, "games per match-up")
	fs.IntVar(&c.Parallelism, "parallelism", 1, "games played at the same time")
	fs.DurationVar(&c.Budget, "budget", meta.TIME_BUDGET, "think time per move")
	fs.IntVar(&c.MaxTurns, "max-turns", meta.MAX_TURNS, "plies before a game is abandoned")
	fs.StringVar(&c.OutputDir, "output-dir", "./results", "directory for experiment records")
	fs.StringVar(&c.LogLevel, "log-level", "info", "zerolog level: debug, info, warn or error")
	fs.BoolVar(&c.Console, "console", true, "human-readable log output")
	err := fs.Parse(args)
	return err
}
