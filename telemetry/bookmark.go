package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFieldFull      BookmarkType = "field_full"
	BookmarkLinkSurge      BookmarkType = "link_surge"
	BookmarkPopulationDrop BookmarkType = "population_drop"
	BookmarkSteadyState    BookmarkType = "steady_state"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments from consecutive stats windows.
type BookmarkDetector struct {
	target int // Regular population the spawner aims for

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	full               bool // population at target in the previous window
	recentPeak         int  // peak population since the last drop
	stableWindowsCount int  // consecutive windows with steady population and links
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize, target int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady state detection
	}
	return &BookmarkDetector{
		target:      target,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFieldFull(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		// Link surge: mean links per frame > 2x rolling average
		if b := bd.checkLinkSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Population drop: >30% below recent peak, usually after a shrink
		if b := bd.checkPopulationDrop(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		if b := bd.checkSteadyState(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

// checkFieldFull fires each time the population reaches the target after
// being below it.
func (bd *BookmarkDetector) checkFieldFull(stats WindowStats) *Bookmark {
	full := bd.target > 0 && stats.Population >= bd.target
	defer func() { bd.full = full }()

	if !full || bd.full {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFieldFull,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population reached target %d after %.1fs", bd.target, stats.SimTimeSec),
	}
}

func (bd *BookmarkDetector) checkLinkSurge(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.LinksMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.LinksMean > avg*2.0 && stats.LinksMean >= 10 {
		return &Bookmark{
			Type:        BookmarkLinkSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Links per frame %.1f is %.1fx average (%.1f)", stats.LinksMean, stats.LinksMean/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPopulationDrop(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population <= bd.recentPeak-5 {
		// Reset peak after a drop
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationDrop,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population fell %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	if bd.target == 0 || stats.Population < bd.target*8/10 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	popCV2 := cv2(history, func(s WindowStats) float64 { return float64(s.Population) })
	linkCV2 := cv2(history, func(s WindowStats) float64 { return s.LinksMean })

	if popCV2 < 0.01 && linkCV2 < 0.04 { // CV < 0.1 and CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSteadyState,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady field with %d balls and %.1f links per frame over 5+ windows", stats.Population, stats.LinksMean),
		}
	}

	return nil
}

// cv2 returns the squared coefficient of variation of a windowed value.
func cv2(history []WindowStats, value func(WindowStats) float64) float64 {
	xs := make([]float64, len(history))
	for i, h := range history {
		xs[i] = value(h)
	}
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
