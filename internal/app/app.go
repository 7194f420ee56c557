//go:build ebiten

package app

import (
	"image/color"
	"log/slog"

	"cell-society/internal/config"
	"cell-society/internal/core"
	"cell-society/internal/factory"
	"cell-society/internal/grid"
	"cell-society/internal/render"
	"cell-society/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// Game adapts a grid to the ebiten.Game interface.
type Game struct {
	cfg     config.Simulation
	g       *core.Grid
	painter *render.GridPainter
	palette []color.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	pace    *core.FixedStep

	scale    int
	sps      int
	paused   bool
	tickOnce bool
}

// New builds the grid described by cfg and wraps it in a Game.
func New(cfg config.Simulation, scale, sps int) (*Game, error) {
	if scale <= 0 {
		scale = 1
	}
	gm := &Game{cfg: cfg, scale: scale, sps: sps, pace: core.NewFixedStep(sps)}
	if err := gm.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return gm, nil
}

// Reset rebuilds the grid from the configuration with the provided seed.
func (gm *Game) Reset(seed int64) error {
	cfg := gm.cfg
	cfg.Seed = seed
	g, err := factory.Build(cfg)
	if err != nil {
		return err
	}
	palette, err := render.Palette(g.Rule().Variant(), cfg.Colors)
	if err != nil {
		return err
	}
	size := g.Size()
	gm.cfg = cfg
	gm.g = g
	gm.palette = palette
	gm.painter = render.NewGridPainter(g.Shape(), size.Rows, size.Cols, float64(gm.scale))
	gm.hud = ui.NewHUD(g, palette, hudWidth)
	gm.overlay = nil
	if g.Shape() == grid.ShapeSquare {
		gm.overlay = ui.NewOverlay(g, gm.scale)
	}
	gm.tickOnce = false
	gm.pace.Reset()
	return nil
}

// Grid returns the grid being shown.
func (gm *Game) Grid() *core.Grid { return gm.g }

// Update handles per-frame logic and advances the simulation at the
// configured steps per second.
func (gm *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		gm.paused = !gm.paused
		gm.pace.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		gm.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := gm.Reset(gm.cfg.Seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := gm.Reset(gm.cfg.Seed + 1); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		gm.sps *= 2
		gm.pace.SetRate(gm.sps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && gm.sps > 1 {
		gm.sps /= 2
		gm.pace.SetRate(gm.sps)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if row, col, ok := gm.painter.CellAt(x, y); ok {
			if err := gm.g.Cycle(row, col); err != nil {
				slog.Warn("cycle cell", "row", row, "col", col, "err", err)
			}
		}
	}

	if gm.overlay != nil {
		gm.overlay.Update()
	}

	steps := 0
	if !gm.paused {
		steps = gm.pace.Due()
	}
	if gm.tickOnce {
		steps++
		gm.tickOnce = false
	}
	for ; steps > 0; steps-- {
		if err := gm.g.Step(); err != nil {
			slog.Error("step failed", "generation", gm.g.Generation(), "err", err)
			gm.paused = true
			break
		}
	}
	gm.hud.Update(gm.paused)
	return nil
}

// Draw renders the current simulation state.
func (gm *Game) Draw(screen *ebiten.Image) {
	gm.painter.Draw(screen, gm.g.States(), gm.palette)
	if r, ok := gm.g.Rule().(core.AgentReporter); ok {
		gm.painter.DrawAgents(screen, r.Agents(gm.g))
	}
	if gm.overlay != nil {
		gm.overlay.Draw(screen)
	}
	w, h := gm.painter.Size()
	gm.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (gm *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := gm.painter.Size()
	return w + gm.hud.Width(), h
}
