// Package telemetry collects per-window field statistics, frame timing, bookmarks and snapshots.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/nebula/nebula"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	// Field state at window end
	FieldWidth     float64 `csv:"field_width"`
	FieldHeight    float64 `csv:"field_height"`
	Population     int     `csv:"population"`
	PointerPresent bool    `csv:"pointer"`

	// Lifecycle during window
	Spawned int `csv:"spawned"`
	Culled  int `csv:"culled"`

	// Links per frame
	LinksMean     float64 `csv:"links_mean"`
	LinksMax      int     `csv:"links_max"`
	LinkAlphaMean float64 `csv:"link_alpha_mean"`

	// Speed distribution of regular particles (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
}

// ComputeSpeedStats returns mean, sample standard deviation and median of
// the given speeds. All are 0 for an empty slice.
func ComputeSpeedStats(speeds []float64) (mean, std, p50 float64) {
	n := len(speeds)
	if n == 0 {
		return 0, 0, 0
	}

	mean, std = stat.MeanStdDev(speeds, nil)
	if n < 2 || math.IsNaN(std) {
		std = 0
	}

	sorted := make([]float64, n)
	copy(sorted, speeds)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return mean, std, p50
}

// Speeds returns the speed of every regular particle in the field.
func Speeds(f *nebula.Field) []float64 {
	speeds := make([]float64, 0, f.Len())
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Kind != nebula.KindRegular {
			continue
		}
		speeds = append(speeds, r2.Norm(p.Vel))
	}
	return speeds
}

// LogStats logs the window using slog.
func (s WindowStats) LogStats() {
	slog.Info("window_stats",
		"run_id", s.RunID,
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"population", s.Population,
		"pointer", s.PointerPresent,
		"spawned", s.Spawned,
		"culled", s.Culled,
		"links_mean", s.LinksMean,
		"links_max", s.LinksMax,
		"link_alpha_mean", s.LinkAlphaMean,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
	)
}
