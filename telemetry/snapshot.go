package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nebula/nebula"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete field state for replay.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	RNGSeed int64  `json:"rng_seed"`

	FieldWidth  float64 `json:"field_width"`
	FieldHeight float64 `json:"field_height"`

	Tick int32 `json:"tick"`

	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Radius float64 `json:"radius"`
	Alpha  float64 `json:"alpha"`
}

// NewSnapshot captures the field's particles in store order.
func NewSnapshot(runID string, seed int64, tick int32, f *nebula.Field) *Snapshot {
	s := &Snapshot{
		Version:     SnapshotVersion,
		RunID:       runID,
		RNGSeed:     seed,
		FieldWidth:  f.Width,
		FieldHeight: f.Height,
		Tick:        tick,
		Particles:   make([]ParticleState, len(f.Particles)),
	}
	for i, p := range f.Particles {
		s.Particles[i] = ParticleState{
			Kind:   p.Kind.String(),
			X:      p.Pos.X,
			Y:      p.Pos.Y,
			VelX:   p.Vel.X,
			VelY:   p.Vel.Y,
			Radius: p.Radius,
			Alpha:  p.Alpha,
		}
	}
	return s
}

// Restore replaces the field's size and regular particles with the
// snapshot's. A saved pointer particle is not restored, since pointer presence
// comes from live input; its position becomes the field's last known pointer
// position.
func (s *Snapshot) Restore(f *nebula.Field) error {
	if !(s.FieldWidth > 0) || !(s.FieldHeight > 0) {
		return fmt.Errorf("invalid field size %vx%v", s.FieldWidth, s.FieldHeight)
	}

	particles := make([]nebula.Particle, 0, len(s.Particles))
	var pointer *ParticleState
	pointers := 0
	for i, ps := range s.Particles {
		switch ps.Kind {
		case nebula.KindRegular.String():
			particles = append(particles, nebula.Particle{
				Pos:    r2.Vec{X: ps.X, Y: ps.Y},
				Vel:    r2.Vec{X: ps.VelX, Y: ps.VelY},
				Radius: ps.Radius,
				Alpha:  ps.Alpha,
				Kind:   nebula.KindRegular,
			})
		case nebula.KindPointer.String():
			pointer = &s.Particles[i]
			pointers++
		default:
			return fmt.Errorf("particle %d: unknown kind %q", i, ps.Kind)
		}
	}
	if pointers > 1 {
		return fmt.Errorf("snapshot holds %d pointer particles", pointers)
	}

	f.Width = s.FieldWidth
	f.Height = s.FieldHeight
	f.Particles = particles
	if pointer != nil {
		f.SetLastPointer(r2.Vec{X: pointer.X, Y: pointer.Y})
	}
	return nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
