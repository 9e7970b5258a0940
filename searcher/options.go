package searcher

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(s *settings)

type settings struct {
	duration     time.Duration
	episodes     int
	exploration  float64
	cutoff       int
	policy       Policy
	playoutDepth int
	rng          *rand.Rand
	cache        bool
	batch        int
	metrics      metrics.Collector
	logger       zerolog.Logger
}

func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

// WithExploration sets the UCB1 constant C.
func WithExploration(c float64) Option {
	return func(s *settings) {
		if c > 0 {
			s.exploration = c
		}
	}
}

func WithCutoff(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.cutoff = depth
		}
	}
}

func WithPolicy(policy Policy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

// WithPlayoutDepth sets the search depth of each heuristic playout move.
func WithPlayoutDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.playoutDepth = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPlayoutCache remembers playout results by position key.
func WithPlayoutCache() Option {
	return func(s *settings) {
		s.cache = true
	}
}

// WithBatch sets the number of simulations between clock reads.
func WithBatch(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.batch = n
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
		exploration:  meta.Exploration,
		cutoff:       meta.Cutoff,
		policy:       RandomPlayout,
		playoutDepth: meta.PlayoutDepth,
		batch:        meta.Batch,
		metrics:      metrics.NewDummyCollector(),
		logger:       log.Logger,
	}
}

func newSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(frand.Uint64n(1 << 63)))
}
