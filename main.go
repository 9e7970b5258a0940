package main

import (
	"os"

	"gamesearch/config"
	"gamesearch/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Info().Msgf("loaded config: %+v", *cfg)

	exp := experiments.Default(cfg.Game)
	if cfg.ExperimentPath != "" {
		exp, err = experiments.LoadExperiment(cfg.ExperimentPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load experiment")
		}
	} else {
		exp.Games = cfg.Games
		exp.Budget = cfg.Budget
		exp.MaxTurns = cfg.MaxTurns
	}
	if exp.Parallelism == 0 {
		exp.Parallelism = cfg.Parallelism
	}
	if exp.Budget == 0 {
		exp.Budget = cfg.Budget
	}
	if exp.MaxTurns == 0 {
		exp.MaxTurns = cfg.MaxTurns
	}

	summary, err := experiments.Run(exp, cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, m := range summary.MatchUps {
		log.Info().Msgf("agents %v: wins %v, draws %d, unfinished %d, desynced %d",
			m.Agents, m.Wins, m.Draws, m.Unfinished, m.Desynced)
	}
}
