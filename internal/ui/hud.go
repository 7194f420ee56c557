//go:build ebiten

package ui

import (
	"image/color"

	"cell-society/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 12
	lineHeight   = 16
	swatchSize   = 10
)

var (
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	swatchFrame = color.RGBA{R: 54, G: 56, B: 64, A: 255}
)

// HUD renders the information panel to the right of the simulation view.
type HUD struct {
	g       *core.Grid
	palette []color.RGBA
	width   int
	panel   *ebiten.Image
	pixel   *ebiten.Image
	lines   []Line
}

// NewHUD constructs a HUD for g with the given panel width.
func NewHUD(g *core.Grid, palette []color.RGBA, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{g: g, palette: palette, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the panel contents.
func (h *HUD) Update(paused bool) {
	if h == nil || h.width <= 0 {
		return
	}
	h.lines = PanelLines(h.g, paused)
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + lineHeight/2
	for _, l := range h.lines {
		x := panelPadding
		if l.State >= 0 && l.State < len(h.palette) {
			h.fillRect(x-1, y-swatchSize-1, swatchSize+2, swatchSize+2, swatchFrame)
			h.fillRect(x, y-swatchSize, swatchSize, swatchSize, h.palette[l.State])
			x += swatchSize + 6
		}
		fg := textColor
		if l.Dim {
			fg = dimColor
		}
		if l.Text != "" {
			text.Draw(h.panel, l.Text, face, x, y, fg)
		}
		y += lineHeight
		if y > height {
			break
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) fillRect(x, y, w, hgt int, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(hgt))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}
