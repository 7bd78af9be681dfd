package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nebula/nebula"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	f := newTestField()
	for i := 0; i < 5; i++ {
		f.Spawn()
	}
	f.Enqueue(nebula.PointerMove(120, 80))
	f.Enqueue(nebula.PointerEnter())
	f.ApplyIntents()

	snapshot := NewSnapshot("run-1", 42, 1000, f)
	snapshot.Bookmark = &Bookmark{Type: BookmarkLinkSurge, Tick: 1000, Description: "Test bookmark"}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.RunID != "run-1" || loaded.RNGSeed != 42 || loaded.Tick != 1000 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkLinkSurge {
		t.Errorf("Bookmark not loaded: %+v", loaded.Bookmark)
	}

	restored := nebula.NewField(1, 1, testParams(), nil)
	if err := loaded.Restore(restored); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Width != f.Width || restored.Height != f.Height {
		t.Errorf("size = %vx%v, want %vx%v", restored.Width, restored.Height, f.Width, f.Height)
	}
	if len(restored.Particles) != f.RegularCount() {
		t.Fatalf("particles = %d, want %d", len(restored.Particles), f.RegularCount())
	}
	for i := range restored.Particles {
		if restored.Particles[i] != f.Particles[i] {
			t.Errorf("particle %d = %+v, want %+v", i, restored.Particles[i], f.Particles[i])
		}
	}
}

func TestSnapshotRestoreDropsPointer(t *testing.T) {
	f := newTestField()
	for i := 0; i < 5; i++ {
		f.Spawn()
	}
	f.Enqueue(nebula.PointerMove(120, 80))
	f.Enqueue(nebula.PointerEnter())
	f.ApplyIntents()

	restored := nebula.NewField(1, 1, testParams(), rand.New(rand.NewSource(3)))
	if err := NewSnapshot("run-1", 42, 10, f).Restore(restored); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if got := restored.PointerCount(); got != 0 {
		t.Fatalf("pointer count after restore = %d, want 0", got)
	}
	if got := restored.LastPointer(); got != (r2.Vec{X: 120, Y: 80}) {
		t.Errorf("last pointer = %v, want (120,80)", got)
	}

	// Without pointer input the field stays pointer-free.
	for i := 0; i < 1000; i++ {
		restored.ApplyIntents()
		restored.VisitLinks(nil)
		restored.Advance()
		restored.Spawn()
	}
	if got := restored.PointerCount(); got != 0 {
		t.Errorf("pointer count after 1000 frames = %d, want 0", got)
	}

	// Entering reuses the saved position.
	restored.Enqueue(nebula.PointerEnter())
	restored.ApplyIntents()
	if p := restored.Pointer(); p == nil || p.Pos != (r2.Vec{X: 120, Y: 80}) {
		t.Errorf("pointer after enter = %+v, want at (120,80)", p)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkPopulationDrop, Tick: 5000},
	}
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_5000_population_drop.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_3000.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestSnapshotRestoreRejectsBadState(t *testing.T) {
	tests := []struct {
		name      string
		particles []ParticleState
		width     float64
		height    float64
		wantErr   string
	}{
		{"unknown kind", []ParticleState{{Kind: "comet"}}, 800, 450, "unknown kind"},
		{"two pointers", []ParticleState{{Kind: "pointer"}, {Kind: "pointer"}}, 800, 450, "2 pointer"},
		{"zero width", nil, 0, 450, "invalid field size"},
		{"negative height", nil, 800, -1, "invalid field size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField()
			f.Particles = append(f.Particles, nebula.Particle{Pos: r2.Vec{X: 1, Y: 1}})

			snap := &Snapshot{
				Version:     SnapshotVersion,
				FieldWidth:  tt.width,
				FieldHeight: tt.height,
				Particles:   tt.particles,
			}
			err := snap.Restore(f)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Restore error = %v, want %q", err, tt.wantErr)
			}
			if len(f.Particles) != 1 || f.Width != 800 || f.Height != 450 {
				t.Error("field modified by a failed restore")
			}
		})
	}
}

func TestLoadSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version mismatch error")
	}
}
