//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"cell-society/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of square grids.
type Overlay struct {
	g        *core.Grid
	scale    int
	showFood bool
	showHome bool
	maskImg  *ebiten.Image
	maskBuf  []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(g *core.Grid, scale int) *Overlay {
	return &Overlay{g: g, scale: scale}
}

// Update toggles layers: 1 food trail, 2 home trail.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showFood = !o.showFood
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHome = !o.showHome
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showFood && !o.showHome {
		return
	}
	food, home, ok := PheromoneMasks(o.g)
	if !ok {
		return
	}
	size := o.g.Size()
	total := size.Rows * size.Cols
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.Cols || o.maskImg.Bounds().Dy() != size.Rows {
		o.maskImg = ebiten.NewImage(size.Cols, size.Rows)
		o.maskBuf = make([]byte, 4*total)
	}
	if o.showFood {
		o.drawMask(screen, food, color.RGBA{R: 120, G: 230, B: 80})
	}
	if o.showHome {
		o.drawMask(screen, home, color.RGBA{R: 64, G: 164, B: 223})
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	const (
		maxAlpha      = 160.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		// Premultiplied alpha.
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		glow := (glowBase + glowRange*math.Sqrt(intensity)) * alpha / 255
		o.maskBuf[base+0] = scaleComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleComponent(tint.B, glow)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
