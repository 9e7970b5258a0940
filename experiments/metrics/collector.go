package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one ChooseMove call of either engine.
type SearchMetric struct {
	Engine       string
	Duration     time.Duration
	Depth        int  // alpha-beta: deepest completed iteration
	Nodes        int  // alpha-beta: search calls
	EndedEarly   bool // alpha-beta: budget expired mid-iteration
	TableHits    int
	Episodes     int // MCTS: simulations
	FullPlayouts int // MCTS: playouts that reached a terminal state
	CacheHits    int // MCTS: playouts answered from the cache
	IsTreeReset  bool
}

type MoveMetric struct {
	Step  int
	First bool // side that moved
	Move  string
	SearchMetric
}

type GameMetric struct {
	StartingFirst bool
	Status        string // final status of the first agent
	Desynced      bool
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
	AvgThink      [2]time.Duration // indexed by agent: 0 plays first
	MaxThink      [2]time.Duration
}

type Collector interface {
	Start(engine string)
	SetTreeReset(value bool)
	SetDepth(depth int, endedEarly bool)
	AddNodes(n int)
	AddTableHits(n int)
	AddEpisode()
	AddFullPlayout()
	AddCacheHit()
	Complete() SearchMetric
}

type collector struct {
	engine       string
	startTime    time.Time
	depth        atomic.Int32
	endedEarly   atomic.Bool
	nodes        atomic.Int64
	tableHits    atomic.Int64
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	cacheHits    atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start begins a new measurement. Counters are reset; the tree reset flag is
// kept so that it can be set between searches.
func (m *collector) Start(engine string) {
	m.engine = engine
	m.startTime = time.Now()
	m.depth.Store(0)
	m.endedEarly.Store(false)
	m.nodes.Store(0)
	m.tableHits.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.cacheHits.Store(0)
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetDepth(depth int, endedEarly bool) {
	m.depth.Store(int32(depth))
	m.endedEarly.Store(endedEarly)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) AddTableHits(n int) {
	m.tableHits.Add(int64(n))
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:       m.engine,
		Duration:     time.Since(m.startTime),
		Depth:        int(m.depth.Load()),
		Nodes:        int(m.nodes.Load()),
		EndedEarly:   m.endedEarly.Load(),
		TableHits:    int(m.tableHits.Load()),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		CacheHits:    int(m.cacheHits.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string)                 {}
func (m *dummyCollector) SetTreeReset(value bool)             {}
func (m *dummyCollector) SetDepth(depth int, endedEarly bool) {}
func (m *dummyCollector) AddNodes(n int)                      {}
func (m *dummyCollector) AddTableHits(n int)                  {}
func (m *dummyCollector) AddEpisode()                         {}
func (m *dummyCollector) AddFullPlayout()                     {}
func (m *dummyCollector) AddCacheHit()                        {}
func (m *dummyCollector) Complete() SearchMetric              { return SearchMetric{} }
