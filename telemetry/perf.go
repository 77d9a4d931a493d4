package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseSteering  = "steering"
	PhaseRoaming   = "roaming"
	PhaseBubbles   = "bubbles"
	PhaseHygiene   = "hygiene"
	PhaseCollision = "collision"
	PhaseCleanup   = "cleanup"
	PhaseSpawn     = "spawn"
	PhaseTelemetry = "telemetry"
)

// phaseOrder lists phases in step order for logging.
var phaseOrder = []string{
	PhaseSteering, PhaseRoaming, PhaseBubbles, PhaseHygiene,
	PhaseCollision, PhaseCleanup, PhaseSpawn, PhaseTelemetry,
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks step timing over a rolling window of ticks.
// The zero tick start means no tick is in flight.
type PerfCollector struct {
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]PerfSample, windowSize),
		current: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(phaseOrder))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	if p.tickStart.IsZero() {
		return
	}
	now := time.Now()
	p.closePhase(now)

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % len(p.samples)
	if p.sampleCount < len(p.samples) {
		p.sampleCount++
	}
	p.tickStart = time.Time{}
	p.phase = ""
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return out
	}

	ticks := make([]float64, p.sampleCount)
	phases := make(map[string][]float64)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		ticks[i] = float64(s.TickDuration)
		for phase, d := range s.Phases {
			if phases[phase] == nil {
				phases[phase] = make([]float64, p.sampleCount)
			}
			phases[phase][i] = float64(d)
		}
	}

	sort.Float64s(ticks)
	avg := stat.Mean(ticks, nil)
	out.AvgTickDuration = time.Duration(avg)
	out.MinTickDuration = time.Duration(ticks[0])
	out.MaxTickDuration = time.Duration(ticks[len(ticks)-1])
	out.P95TickDuration = time.Duration(Percentile(ticks, 0.95))

	for phase, vals := range phases {
		mean := stat.Mean(vals, nil)
		out.PhaseAvg[phase] = time.Duration(mean)
		if avg > 0 {
			out.PhasePct[phase] = mean / avg * 100
		}
	}

	if avg > 0 {
		out.TicksPerSecond = float64(time.Second) / avg
	}

	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"p95_tick_us", s.P95TickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	// Add phase breakdowns
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Session      string  `csv:"session"`
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SteeringPct  float64 `csv:"steering_pct"`
	RoamingPct   float64 `csv:"roaming_pct"`
	BubblesPct   float64 `csv:"bubbles_pct"`
	HygienePct   float64 `csv:"hygiene_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(session string, windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		Session:      session,
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SteeringPct:  s.PhasePct[PhaseSteering],
		RoamingPct:   s.PhasePct[PhaseRoaming],
		BubblesPct:   s.PhasePct[PhaseBubbles],
		HygienePct:   s.PhasePct[PhaseHygiene],
		CollisionPct: s.PhasePct[PhaseCollision],
		CleanupPct:   s.PhasePct[PhaseCleanup],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
