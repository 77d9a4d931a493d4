package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/reef/components"
)

const metricsNamespace = "reef"

// Metrics exposes live arena state to Prometheus. Each instance owns its
// registry so several games can coexist in one process.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ticks     prometheus.Counter
	meals     *prometheus.CounterVec
	spawns    *prometheus.CounterVec
	gameOvers prometheus.Counter
	sessions  prometheus.Counter

	score      prometheus.Gauge
	playerSize prometheus.Gauge
	pool       *prometheus.GaugeVec
}

// NewMetrics creates and registers the arena metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks executed.",
		}),
		meals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "meals_total",
			Help:      "Entities eaten, by eater and victim.",
		}, []string{"eater", "victim"}),
		spawns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "spawns_total",
			Help:      "Entities spawned, by pool.",
		}, []string{"pool"}),
		gameOvers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "game_overs_total",
			Help:      "Sessions ended by the player being eaten.",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_total",
			Help:      "Sessions started.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "score",
			Help:      "Current session score.",
		}),
		playerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "player_size",
			Help:      "Current player size.",
		}),
		pool: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pool_entities",
			Help:      "Live entities per pool.",
		}, []string{"pool"}),
	}

	m.registry.MustRegister(m.ticks, m.meals, m.spawns, m.gameOvers, m.sessions, m.score, m.playerSize, m.pool)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Record counts a telemetry event.
func (m *Metrics) Record(e Event) {
	if m == nil || e.Count == 0 {
		return
	}
	n := float64(e.Count)
	switch e.Type {
	case EventPlayerAteFish:
		m.meals.WithLabelValues("player", e.Kind.String()).Add(n)
	case EventPlayerAteFood:
		m.meals.WithLabelValues("player", "food").Add(n)
	case EventFishAteFish:
		m.meals.WithLabelValues("fish", e.Kind.String()).Add(n)
	case EventFishAteFood:
		m.meals.WithLabelValues("fish", "food").Add(n)
	case EventFishSpawn:
		m.spawns.WithLabelValues(e.Kind.String()).Add(n)
	case EventFoodSpawn:
		m.spawns.WithLabelValues("food").Add(n)
	case EventGameOver:
		m.gameOvers.Add(n)
	}
}

// SessionStarted counts a new session and zeroes the live gauges.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
	m.score.Set(0)
}

// TickState is the per-tick view published to gauges.
type TickState struct {
	Score      int
	PlayerSize float64
	Fish       [components.NumKinds]int
	Food       int
	Bubbles    int
}

// ObserveTick updates the gauges after a tick.
func (m *Metrics) ObserveTick(s TickState) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.score.Set(float64(s.Score))
	m.playerSize.Set(s.PlayerSize)
	for k := 0; k < components.NumKinds; k++ {
		m.pool.WithLabelValues(components.Kind(k).String()).Set(float64(s.Fish[k]))
	}
	m.pool.WithLabelValues("food").Set(float64(s.Food))
	m.pool.WithLabelValues("bubbles").Set(float64(s.Bubbles))
}
