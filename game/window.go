package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
)

// OpenWindow creates the raylib window sized screen.width x nebula.height.
func OpenWindow(cfg *config.Config) error {
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Nebula.Height), cfg.Screen.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib window: %w", ErrNoSurface)
	}
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	return nil
}
