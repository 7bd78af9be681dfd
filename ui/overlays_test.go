package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlaysStartDisabled(t *testing.T) {
	reg := NewOverlayRegistry()
	if got := reg.EnabledOverlays(); len(got) != 0 {
		t.Errorf("enabled at start = %v, want none", got)
	}
	if len(reg.All()) != 2 {
		t.Errorf("registered %d overlays, want 2", len(reg.All()))
	}
}

func TestHandleKeyPress(t *testing.T) {
	tests := []struct {
		name    string
		keys    []int32
		wantHUD bool
		wantPtr bool
	}{
		{"no keys", nil, false, false},
		{"hud on", []int32{rl.KeyD}, true, false},
		{"hud off again", []int32{rl.KeyD, rl.KeyD}, false, false},
		{"both", []int32{rl.KeyD, rl.KeyP}, true, true},
		{"unbound key", []int32{rl.KeyZ}, false, false},
		{"no key pressed", []int32{0}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewOverlayRegistry()
			for _, k := range tt.keys {
				reg.HandleKeyPress(k)
			}
			if reg.IsEnabled(OverlayHUD) != tt.wantHUD {
				t.Errorf("hud = %v, want %v", reg.IsEnabled(OverlayHUD), tt.wantHUD)
			}
			if reg.IsEnabled(OverlayPointer) != tt.wantPtr {
				t.Errorf("pointer = %v, want %v", reg.IsEnabled(OverlayPointer), tt.wantPtr)
			}
		})
	}
}

func TestHandleKeyPressReportsToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPointer || !on {
		t.Errorf("HandleKeyPress(P) = %q, %v, %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyQ); ok {
		t.Error("unbound key reported a toggle")
	}
}

func TestRegisterReplacesDescriptor(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled(OverlayHUD, true)
	reg.Register(OverlayDescriptor{ID: OverlayHUD, Name: "HUD", Key: rl.KeyH, KeyLabel: "H"})

	if len(reg.All()) != 2 {
		t.Fatalf("registered %d overlays, want 2", len(reg.All()))
	}
	if !reg.IsEnabled(OverlayHUD) {
		t.Error("re-registering dropped the enabled state")
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyD); ok {
		t.Error("old key still bound")
	}
	if id, on, _ := reg.HandleKeyPress(rl.KeyH); id != OverlayHUD || on {
		t.Errorf("HandleKeyPress(H) = %q, %v; want hud toggled off", id, on)
	}
}

func TestSetEnabledUnknownID(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled("missing", true)
	if reg.IsEnabled("missing") {
		t.Error("unknown overlay became enabled")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}
