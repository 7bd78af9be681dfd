package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/nebula"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/ui"
)

// ErrNoSurface is returned when no drawing surface could be obtained.
var ErrNoSurface = errors.New("no drawing surface")

// Options configures a new game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	SnapshotDir    string  // empty = no snapshots on bookmarks
	Headless       bool

	// Field state to start from instead of an empty field
	Restore *telemetry.Snapshot

	// Config overrides the global config (nil = config.Cfg())
	Config *config.Config

	// Initial field size; 0 = screen.width x nebula.height
	Width, Height float64

	// Optional collectors fed every frame
	Metrics       *telemetry.Metrics
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg      *config.Config
	field    *nebula.Field
	renderer *renderer.NebulaRenderer
	surface  renderer.Surface // raylib surface, nil when headless
	hud      *ui.HUD
	overlays *ui.OverlayRegistry

	runID string
	seed  int64
	tick  int32

	// Last frame
	lastLinks nebula.LinkStats

	// Raylib input state
	pointerInside bool

	// Telemetry
	logStats         bool
	snapshotDir      string
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	metrics          *telemetry.Metrics
	statsCallback    func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game, sizes its field and performs the first
// spawn.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = float64(cfg.Screen.Width)
	}
	if height <= 0 {
		height = float64(cfg.Nebula.Height)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:              cfg,
		field:            nebula.NewField(width, height, nebula.ParamsFromConfig(cfg), rng),
		renderer:         renderer.NewNebulaRenderer(cfg),
		overlays:         ui.NewOverlayRegistry(),
		runID:            uuid.NewString(),
		seed:             opts.Seed,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory, cfg.Nebula.Size),
		metrics:          opts.Metrics,
		statsCallback:    opts.StatsCallback,
	}
	g.collector = telemetry.NewCollector(g.runID, statsWindow, cfg.Derived.FrameDT)

	if opts.Restore != nil {
		if err := opts.Restore.Restore(g.field); err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
		g.tick = opts.Restore.Tick
		g.collector = telemetry.NewCollectorAt(g.runID, statsWindow, cfg.Derived.FrameDT, g.tick)
	}

	if !opts.Headless {
		g.surface = renderer.NewRaylibSurface()
		g.hud = ui.NewHUD()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	g.field.Spawn()

	slog.Info("starting",
		"run_id", g.runID,
		"seed", opts.Seed,
		"width", width,
		"height", height,
		"size", cfg.Nebula.Size,
		"headless", opts.Headless,
		"restored", opts.Restore != nil,
		"output_dir", om.Dir(),
	)

	return g, nil
}

// Frame runs one frame: pending input, drawing, integration, spawning and
// telemetry. A nil surface skips drawing but still evaluates links.
func (g *Game) Frame(s renderer.Surface) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseIntents)
	g.field.ApplyIntents()

	var sample telemetry.FrameSample
	if s != nil {
		g.perfCollector.StartPhase(telemetry.PhaseRender)
		g.renderer.Clear(s)
		g.renderer.DrawParticles(s, g.field.Particles)

		g.perfCollector.StartPhase(telemetry.PhaseLinks)
		sample.Links = g.renderer.DrawLinks(s, g.field)
	} else {
		g.perfCollector.StartPhase(telemetry.PhaseLinks)
		sample.Links = g.field.VisitLinks(nil)
	}

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	sample.Culled = g.field.Advance()

	g.perfCollector.StartPhase(telemetry.PhaseSpawn)
	sample.Spawned = g.field.Spawn()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.lastLinks = sample.Links
	g.collector.RecordFrame(sample)
	g.flushTelemetry()

	elapsed := g.perfCollector.EndTick()
	g.metrics.Observe(sample, g.field.RegularCount(), g.field.PointerCount() > 0, elapsed)
}

// Update polls window input and queues it for the next frame.
func (g *Game) Update() {
	g.handleInput()
}

// Draw renders one frame to the raylib window.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	g.Frame(g.surface)

	if g.overlays.IsEnabled(ui.OverlayPointer) {
		g.renderer.DrawPointerMarker(g.surface, g.field)
	}
	if g.overlays.IsEnabled(ui.OverlayHUD) && g.hud != nil {
		g.hud.Draw(g.hudData(rl.GetFPS()))
	}
}

// UpdateHeadless runs one frame without drawing.
func (g *Game) UpdateHeadless() {
	g.Frame(nil)
}

func (g *Game) hudData(fps int32) ui.HUDData {
	return ui.HUDData{
		Title:      g.cfg.Screen.Title,
		RunID:      g.runID,
		Population: g.field.RegularCount(),
		Target:     g.field.Params().Size,
		Pointer:    g.field.PointerCount() > 0,
		Links:      g.lastLinks.Count,
		LinkAlpha:  g.lastLinks.MeanAlpha(),
		Tick:       g.tick,
		FPS:        fps,
		Width:      g.field.Width,
		Height:     g.field.Height,
	}
}

// Field returns the simulation state.
func (g *Game) Field() *nebula.Field {
	return g.field
}

// RunID returns the identifier stamped on this run's logs and CSV rows.
func (g *Game) RunID() string {
	return g.runID
}

// Tick returns the number of frames run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload logs the final field state and releases resources.
func (g *Game) Unload() {
	g.logFieldState()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
