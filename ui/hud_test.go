package ui

import (
	"strings"
	"testing"
)

func TestHUDLines(t *testing.T) {
	h := NewHUD()
	lines := h.Lines(HUDData{
		Population: 12,
		Target:     50,
		Pointer:    true,
		Links:      30,
		LinkAlpha:  0.456,
		Tick:       90,
		FPS:        60,
		Width:      1280,
		Height:     450,
	})

	want := []string{
		"Balls: 12 / 50 | Pointer: in",
		"Links: 30 | Mean alpha: 0.46",
		"Field: 1280 x 450",
		"Tick: 90 | FPS: 60",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestHUDPointerOut(t *testing.T) {
	lines := NewHUD().Lines(HUDData{})
	if !strings.HasSuffix(lines[0], "Pointer: out") {
		t.Errorf("line 0 = %q, want pointer out", lines[0])
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"0d3e8f1a-7c44-4b8e-9a51-2f6d1c0e9b77", "0d3e8f1a"},
	}
	for _, tt := range tests {
		if got := shortID(tt.in); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
