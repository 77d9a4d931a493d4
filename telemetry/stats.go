package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	Session         string  `csv:"session"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Player at window end
	Score       int     `csv:"score"`
	ScoreGained int     `csv:"score_gained"`
	PlayerSize  float64 `csv:"player_size"`

	// Pool sizes at window end
	SmallCount  int `csv:"small"`
	EnemyCount  int `csv:"enemy"`
	FoodCount   int `csv:"food"`
	BubbleCount int `csv:"bubbles"`

	// Events during window
	SmallSpawned   int `csv:"small_spawned"`
	EnemySpawned   int `csv:"enemy_spawned"`
	FoodSpawned    int `csv:"food_spawned"`
	PlayerAteSmall int `csv:"player_ate_small"`
	PlayerAteEnemy int `csv:"player_ate_enemy"`
	PlayerAteFood  int `csv:"player_ate_food"`
	SmallLost      int `csv:"small_lost"` // eaten by other fish
	EnemyLost      int `csv:"enemy_lost"`
	FishAteFood    int `csv:"fish_ate_food"`
	InvalidRemoved int `csv:"invalid_removed"`
	GameOvers      int `csv:"game_overs"`

	// Size distribution (sampled at window end)
	SmallSizeMean float64 `csv:"small_size_mean"`
	SmallSizeStd  float64 `csv:"small_size_std"`
	SmallSizeP50  float64 `csv:"small_size_p50"`
	SmallSizeP90  float64 `csv:"small_size_p90"`

	EnemySizeMean float64 `csv:"enemy_size_mean"`
	EnemySizeStd  float64 `csv:"enemy_size_std"`
	EnemySizeP50  float64 `csv:"enemy_size_p50"`
	EnemySizeP90  float64 `csv:"enemy_size_p90"`

	MaxFishSize float64 `csv:"max_fish_size"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SizeStats summarises a size sample.
type SizeStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeSizeStats calculates mean, sample standard deviation and
// percentiles. Std is 0 for fewer than two values.
func ComputeSizeStats(values []float64) SizeStats {
	n := len(values)
	if n == 0 {
		return SizeStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s SizeStats
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	s.Max = sorted[n-1]
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.Session),
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("score", s.Score),
		slog.Int("score_gained", s.ScoreGained),
		slog.Float64("player_size", s.PlayerSize),
		slog.Int("small", s.SmallCount),
		slog.Int("enemy", s.EnemyCount),
		slog.Int("food", s.FoodCount),
		slog.Int("bubbles", s.BubbleCount),
		slog.Int("player_ate_small", s.PlayerAteSmall),
		slog.Int("player_ate_enemy", s.PlayerAteEnemy),
		slog.Int("player_ate_food", s.PlayerAteFood),
		slog.Int("small_lost", s.SmallLost),
		slog.Int("enemy_lost", s.EnemyLost),
		slog.Int("fish_ate_food", s.FishAteFood),
		slog.Float64("small_size_mean", s.SmallSizeMean),
		slog.Float64("enemy_size_mean", s.EnemySizeMean),
		slog.Float64("max_fish_size", s.MaxFishSize),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"session", s.Session,
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"score", s.Score,
		"score_gained", s.ScoreGained,
		"player_size", s.PlayerSize,
		"small", s.SmallCount,
		"enemy", s.EnemyCount,
		"food", s.FoodCount,
		"bubbles", s.BubbleCount,
		"small_spawned", s.SmallSpawned,
		"enemy_spawned", s.EnemySpawned,
		"food_spawned", s.FoodSpawned,
		"player_ate_small", s.PlayerAteSmall,
		"player_ate_enemy", s.PlayerAteEnemy,
		"player_ate_food", s.PlayerAteFood,
		"small_lost", s.SmallLost,
		"enemy_lost", s.EnemyLost,
		"fish_ate_food", s.FishAteFood,
		"invalid_removed", s.InvalidRemoved,
		"game_overs", s.GameOvers,
		"small_size_mean", s.SmallSizeMean,
		"small_size_std", s.SmallSizeStd,
		"enemy_size_mean", s.EnemySizeMean,
		"enemy_size_std", s.EnemySizeStd,
		"max_fish_size", s.MaxFishSize,
	)
}
