//go:build !ebiten

package app

import (
	"fmt"

	"cell-society/internal/config"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(config.Simulation, int, int) (*Game, error) {
	panic("app.New requires building with the 'ebiten' tag")
}

// Reset always reports that the GUI build tag is missing.
func (gm *Game) Reset(int64) error {
	return fmt.Errorf("app.Game.Reset requires building with the 'ebiten' tag")
}

// Update always reports that the GUI build tag is missing.
func (gm *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (gm *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (gm *Game) Layout(int, int) (int, int) { return 0, 0 }
