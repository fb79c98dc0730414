// Package telemetry collects per-window rain statistics, tick timing, and run output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window of one widget.
type WindowStats struct {
	Widget          string  `csv:"widget"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Counts at window end
	Active    int `csv:"active"`
	Pooled    int `csv:"pooled"`
	Allocated int `csv:"allocated"`

	// Events during window
	Spawns      int     `csv:"spawns"`
	Retirements int     `csv:"retirements"`
	Faults      int     `csv:"faults"`
	SpawnRate   float64 `csv:"spawn_rate"` // spawns per second

	// Active drops sampled every tick
	ActiveMean float64 `csv:"active_mean"`
	ActiveMax  int     `csv:"active_max"`

	// Spawned drop speed distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Spawned drop vertical length distribution
	LengthMean float64 `csv:"length_mean"`
	LengthP50  float64 `csv:"length_p50"`
}

// Distribution summarizes a sample. Values are sorted in place.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, standard deviation and empirical quantiles.
// An empty sample yields zeros; a single value has zero spread.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sort.Float64s(values)

	d := Distribution{
		Mean: stat.Mean(values, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, values, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, values, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, values, nil),
	}
	if len(values) > 1 {
		d.Std = stat.StdDev(values, nil)
	}
	if math.IsNaN(d.Std) {
		d.Std = 0
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("widget", s.Widget),
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active", s.Active),
		slog.Int("pooled", s.Pooled),
		slog.Int("allocated", s.Allocated),
		slog.Int("spawns", s.Spawns),
		slog.Int("retirements", s.Retirements),
		slog.Int("faults", s.Faults),
		slog.Float64("spawn_rate", s.SpawnRate),
		slog.Float64("active_mean", s.ActiveMean),
		slog.Int("active_max", s.ActiveMax),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("length_mean", s.LengthMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"widget", s.Widget,
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"active", s.Active,
		"pooled", s.Pooled,
		"allocated", s.Allocated,
		"spawns", s.Spawns,
		"retirements", s.Retirements,
		"faults", s.Faults,
		"spawn_rate", s.SpawnRate,
		"active_mean", s.ActiveMean,
		"active_max", s.ActiveMax,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"length_mean", s.LengthMean,
		"length_p50", s.LengthP50,
	)
}
