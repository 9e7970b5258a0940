package minimax

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/meta"
	"gamesearch/transposition"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *settings)

type settings struct {
	table         any // *transposition.Table[K], checked by New
	checkInterval int
	margin        time.Duration
	maxDepth      int
	minStoreDepth int
	metrics       metrics.Collector
	logger        zerolog.Logger
}

// WithTable memoizes results by position key. The table's key type must be
// the game's key type.
func WithTable[K comparable](table *transposition.Table[K]) Option {
	return func(s *settings) {
		s.table = table
	}
}

// WithCheckInterval sets how many search calls pass between clock reads. It
// must be a power of two.
func WithCheckInterval(calls int) Option {
	return func(s *settings) {
		s.checkInterval = calls
	}
}

// WithSafetyMargin is subtracted from every time budget.
func WithSafetyMargin(margin time.Duration) Option {
	return func(s *settings) {
		if margin >= 0 {
			s.margin = margin
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithMinStoreDepth keeps shallow results out of the table.
func WithMinStoreDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.minStoreDepth = depth
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func defaults() settings {
	return settings{
		checkInterval: meta.CheckInterval,
		margin:        meta.SafetyMargin,
		maxDepth:      meta.MaxDepth,
		minStoreDepth: 1,
		metrics:       metrics.NewDummyCollector(),
		logger:        log.Logger,
	}
}
