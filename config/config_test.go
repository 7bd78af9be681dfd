package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Nebula.Size != 50 {
		t.Errorf("nebula.size = %d, want 50", cfg.Nebula.Size)
	}
	if cfg.Nebula.Height != 450 {
		t.Errorf("nebula.height = %d, want 450", cfg.Nebula.Height)
	}
	if cfg.Nebula.BufferZone != 50 {
		t.Errorf("nebula.buffer_zone = %v, want 50", cfg.Nebula.BufferZone)
	}
	if cfg.Balls.Radius != 1.5 {
		t.Errorf("balls.radius = %v, want 1.5", cfg.Balls.Radius)
	}
	if cfg.Links.MaxDistance != 250 {
		t.Errorf("links.max_distance = %v, want 250", cfg.Links.MaxDistance)
	}
	if cfg.Derived.BallColor.R != 255 || cfg.Derived.BallColor.A != 255 {
		t.Errorf("derived ball color = %+v, want opaque white", cfg.Derived.BallColor)
	}
	if cfg.Derived.FrameDT <= 0 {
		t.Errorf("derived frame dt = %v, want positive", cfg.Derived.FrameDT)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nebula.yaml")
	data := "nebula:\n  size: 12\nlinks:\n  max_distance: 100\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Nebula.Size != 12 {
		t.Errorf("nebula.size = %d, want 12", cfg.Nebula.Size)
	}
	if cfg.Links.MaxDistance != 100 {
		t.Errorf("links.max_distance = %v, want 100", cfg.Links.MaxDistance)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Nebula.Height != 450 {
		t.Errorf("nebula.height = %d, want default 450", cfg.Nebula.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative size", "nebula:\n  size: -1\n", "nebula.size"},
		{"zero link distance", "links:\n  max_distance: 0\n", "links.max_distance"},
		{"inward floor above max", "balls:\n  min_inward_velocity: 2\n", "balls.max_velocity"},
		{"alpha above one", "balls:\n  alpha: 1.5\n", "balls.alpha"},
		{"nan link distance", "links:\n  max_distance: .nan\n", "links.max_distance"},
		{"infinite buffer", "nebula:\n  buffer_zone: .inf\n", "nebula.buffer_zone"},
		{"negative infinite velocity", "balls:\n  min_velocity: -.inf\n", "balls.min_velocity"},
		{"nan cell width", "terminal:\n  cell_width: .nan\n", "terminal.cell_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Nebula.Size = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Nebula.Size != 7 {
		t.Errorf("nebula.size = %d, want 7", loaded.Nebula.Size)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
