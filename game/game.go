// Package game owns the arena: entity pools, the player, per-tick
// simulation and the loop driver that paces it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/reef/components"
	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // log window stats via slog
	StatsWindowSec float64 // stats window override (0 = config)
	OutputDir      string  // CSV output directory (empty = disabled)
	Metrics        *telemetry.Metrics
}

// Game holds the complete arena state. It is not safe for concurrent use;
// Driver serialises access.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	seed  int64
	world *ecs.World

	// Entity mappers
	fishMapper *ecs.Map5[
		components.Position,
		components.Heading,
		components.Body,
		components.Vitals,
		components.Fish,
	]
	fishFilter *ecs.Filter5[
		components.Position,
		components.Heading,
		components.Body,
		components.Vitals,
		components.Fish,
	]
	foodMapper   *ecs.Map3[components.Position, components.Body, components.Food]
	foodFilter   *ecs.Filter3[components.Position, components.Body, components.Food]
	bubbleMapper *ecs.Map3[components.Position, components.Body, components.Bubble]
	bubbleFilter *ecs.Filter3[components.Position, components.Body, components.Bubble]

	player components.Player
	input  inputState

	// Rules and parameters derived from config
	bounds       systems.Bounds
	rules        systems.Rules
	seekParams   systems.SeekParams
	wanderParams systems.WanderParams
	bubbleParams systems.BubbleParams

	// Spawn timers
	fishTimers [components.NumKinds]systems.SpawnTimer
	foodTimer  systems.SpawnTimer

	// State
	session    uuid.UUID
	tick       int64
	simTime    float64
	score      int
	over       bool
	killer     components.Kind
	killerSize float64
	lastRank   int
	numFish    [components.NumKinds]int
	numFood    int
	numBubbles int

	// Scratch buffers reused across ticks
	fishSlab []systems.FishRef
	foodSlab []systems.FoodRef
	fishRefs [components.NumKinds][]*systems.FishRef
	foodRefs []*systems.FoodRef
	doomed   []ecs.Entity

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	leaderboard      *telemetry.Leaderboard
	outputManager    *telemetry.OutputManager
	metrics          *telemetry.Metrics
	logStats         bool
}

// NewGame creates a game in its reset state. The config must be valid.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,

		bounds: systems.Bounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH},
		rules:  systems.RulesFromConfig(cfg),
		seekParams: systems.SeekParams{
			DeadZone:   cfg.Input.DeadZone,
			FrameScale: cfg.Physics.FrameScale,
		},
		wanderParams: systems.WanderParams{
			Cooldown:   cfg.Wander.Cooldown,
			MaxTurn:    cfg.Derived.MaxTurnRad,
			FrameScale: cfg.Physics.FrameScale,
		},
		bubbleParams: systems.BubbleParams{
			FrameScale:   cfg.Physics.FrameScale,
			WobbleAmp:    cfg.Bubbles.WobbleAmp,
			WobblePeriod: cfg.Bubbles.WobblePitch,
		},

		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.SizeMilestones, cfg.Food.Cap),
		leaderboard:      telemetry.NewLeaderboard(cfg.Telemetry.LeaderboardSize),
		outputManager:    om,
		metrics:          opts.Metrics,
		logStats:         opts.LogStats,
	}

	g.Reset()
	return g, nil
}

// newWorld replaces the ECS world and its mappers with empty ones.
func (g *Game) newWorld() {
	world := ecs.NewWorld()
	g.world = world
	g.fishMapper = ecs.NewMap5[
		components.Position,
		components.Heading,
		components.Body,
		components.Vitals,
		components.Fish,
	](world)
	g.fishFilter = ecs.NewFilter5[
		components.Position,
		components.Heading,
		components.Body,
		components.Vitals,
		components.Fish,
	](world)
	g.foodMapper = ecs.NewMap3[components.Position, components.Body, components.Food](world)
	g.foodFilter = ecs.NewFilter3[components.Position, components.Body, components.Food](world)
	g.bubbleMapper = ecs.NewMap3[components.Position, components.Body, components.Bubble](world)
	g.bubbleFilter = ecs.NewFilter3[components.Position, components.Body, components.Bubble](world)
}

// Reset starts a fresh session: empty pools reseeded, player centred,
// timers and score zeroed.
func (g *Game) Reset() {
	g.newWorld()

	g.player = g.freshPlayer()
	g.input = inputState{}

	g.fishTimers[components.KindSmall] = systems.SpawnTimer{Interval: g.cfg.Small.SpawnInterval}
	g.fishTimers[components.KindEnemy] = systems.SpawnTimer{Interval: g.cfg.Enemy.SpawnInterval}
	g.foodTimer = systems.SpawnTimer{Interval: g.cfg.Food.SpawnInterval}

	g.session = uuid.New()
	g.tick = 0
	g.simTime = 0
	g.score = 0
	g.over = false
	g.killer = 0
	g.killerSize = 0
	g.lastRank = 0
	g.numFish = [components.NumKinds]int{}
	g.numFood = 0
	g.numBubbles = 0

	g.spawnInitialPopulation()

	g.collector.Begin(g.session.String())
	g.metrics.SessionStarted()

	slog.Info("session_start",
		"session", g.session.String(),
		"seed", g.seed,
		"world_w", g.bounds.Width,
		"world_h", g.bounds.Height,
		"small", g.numFish[components.KindSmall],
		"enemy", g.numFish[components.KindEnemy],
		"food", g.numFood,
		"bubbles", g.numBubbles,
	)
}

// freshPlayer returns the player at the arena centre with reset attributes.
func (g *Game) freshPlayer() components.Player {
	return components.Player{
		Pos:    components.Position{X: g.bounds.Width / 2, Y: g.bounds.Height / 2},
		Dir:    components.Heading{DX: 1},
		Body:   components.Body{Size: g.cfg.Player.Size},
		Vitals: components.Vitals{Speed: g.cfg.Player.Speed, Health: g.cfg.Player.Health},
	}
}

// Close flushes run output.
func (g *Game) Close() error {
	if err := g.outputManager.WriteLeaderboard(g.leaderboard); err != nil {
		slog.Error("failed to write leaderboard", "error", err)
	}
	return g.outputManager.Close()
}

// Session returns the current session ID.
func (g *Game) Session() string {
	return g.session.String()
}

// Tick returns the number of ticks run this session.
func (g *Game) Tick() int64 {
	return g.tick
}

// Score returns the current session score.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the player has been eaten.
func (g *Game) Over() bool {
	return g.over
}

// Player returns a copy of the player state.
func (g *Game) Player() components.Player {
	return g.player
}

// Counts returns live entity counts per pool.
func (g *Game) Counts() PoolCounts {
	return PoolCounts{
		Small:   g.numFish[components.KindSmall],
		Enemy:   g.numFish[components.KindEnemy],
		Food:    g.numFood,
		Bubbles: g.numBubbles,
	}
}

// Leaderboard returns the ranked finished sessions.
func (g *Game) Leaderboard() []telemetry.SessionResult {
	return g.leaderboard.Entries()
}

// Bounds returns the arena rectangle.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

func (g *Game) fishCap(kind components.Kind) int {
	if kind == components.KindEnemy {
		return g.cfg.Enemy.Cap
	}
	return g.cfg.Small.Cap
}

func (g *Game) fishConfig(kind components.Kind) *config.FishConfig {
	if kind == components.KindEnemy {
		return &g.cfg.Enemy
	}
	return &g.cfg.Small
}
