package telemetry

import "github.com/pthm-cable/nebula/nebula"

// FrameSample is what one frame contributes to the current window.
type FrameSample struct {
	Spawned bool
	Culled  int
	Links   nebula.LinkStats
}

// Collector accumulates frame samples within windows and produces WindowStats.
type Collector struct {
	runID               string
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Counters for current window
	frames    int
	spawned   int
	culled    int
	linkTotal int
	linkMax   int
	alphaSum  float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each window lasts in simulated seconds
// dt: seconds per frame
func NewCollector(runID string, windowDurationSec, dt float64) *Collector {
	return NewCollectorAt(runID, windowDurationSec, dt, 0)
}

// NewCollectorAt creates a collector whose first window starts at startTick,
// for runs resumed from a snapshot.
func NewCollectorAt(runID string, windowDurationSec, dt float64, startTick int32) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		runID:               runID,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     startTick,
	}
}

// RecordFrame adds one frame's sample to the window.
func (c *Collector) RecordFrame(s FrameSample) {
	c.frames++
	if s.Spawned {
		c.spawned++
	}
	c.culled += s.Culled
	c.linkTotal += s.Links.Count
	c.alphaSum += s.Links.AlphaSum
	if s.Links.Count > c.linkMax {
		c.linkMax = s.Links.Count
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the counters and the field's current
// state, then resets the counters for the next window.
func (c *Collector) Flush(currentTick int32, f *nebula.Field) WindowStats {
	speedMean, speedStd, speedP50 := ComputeSpeedStats(Speeds(f))

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Frames:          c.frames,
		FieldWidth:      f.Width,
		FieldHeight:     f.Height,
		Population:      f.RegularCount(),
		PointerPresent:  f.PointerCount() > 0,
		Spawned:         c.spawned,
		Culled:          c.culled,
		LinksMax:        c.linkMax,
		SpeedMean:       speedMean,
		SpeedStd:        speedStd,
		SpeedP50:        speedP50,
	}
	if c.frames > 0 {
		stats.LinksMean = float64(c.linkTotal) / float64(c.frames)
	}
	if c.linkTotal > 0 {
		stats.LinkAlphaMean = c.alphaSum / float64(c.linkTotal)
	}

	c.windowStartTick = currentTick
	c.frames = 0
	c.spawned = 0
	c.culled = 0
	c.linkTotal = 0
	c.linkMax = 0
	c.alphaSum = 0

	return stats
}
