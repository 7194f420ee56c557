package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"cell-society/internal/core"
)

var defaultPalettes = map[core.Variant][]color.RGBA{
	core.GameOfLife: {
		{R: 0, G: 0, B: 0, A: 255},
		{R: 240, G: 240, B: 240, A: 255},
	},
	core.Fire: {
		{R: 60, G: 40, B: 20, A: 255},
		{R: 230, G: 90, B: 20, A: 255},
		{R: 40, G: 140, B: 50, A: 255},
	},
	core.Percolation: {
		{R: 20, G: 20, B: 20, A: 255},
		{R: 64, G: 164, B: 223, A: 255},
	},
	core.PredatorPrey: {
		{R: 200, G: 60, B: 50, A: 255},
		{R: 240, G: 220, B: 110, A: 255},
		{R: 30, G: 70, B: 140, A: 255},
	},
	core.RPS: {
		{R: 255, G: 255, B: 255, A: 255},
		{R: 220, G: 40, B: 40, A: 255},
		{R: 40, G: 70, B: 220, A: 255},
		{R: 40, G: 180, B: 60, A: 255},
	},
	core.Segregation: {
		{R: 235, G: 235, B: 235, A: 255},
		{R: 220, G: 80, B: 60, A: 255},
		{R: 60, G: 110, B: 200, A: 255},
	},
	core.ForagingAnt: {
		{R: 30, G: 24, B: 18, A: 255},
		{R: 110, G: 190, B: 70, A: 255},
		{R: 170, G: 110, B: 60, A: 255},
	},
}

// AntColor is drawn over cells that host at least one ant.
var AntColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}

// DefaultPalette returns the built-in colors of v, one per state.
func DefaultPalette(v core.Variant) []color.RGBA {
	return append([]color.RGBA(nil), defaultPalettes[v]...)
}

// Palette resolves the configured colors of a variant, falling back to the
// built-in palette when none are given.
func Palette(v core.Variant, colors []string) ([]color.RGBA, error) {
	if len(colors) == 0 {
		return DefaultPalette(v), nil
	}
	out := make([]color.RGBA, len(colors))
	for i, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			return nil, core.Configf("colors", "state %d: %v", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// ParseColor accepts "#rrggbb", "#rrggbbaa", "0xrrggbb" and bare hex forms.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FillRGBA converts cell states into RGBA pixels in buf. States beyond the
// end of the palette use its last color; an empty palette clears the buffer
// to transparent black.
func FillRGBA(buf []byte, states []int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(states)])
		return
	}
	last := len(palette) - 1
	for i, s := range states {
		idx := s
		if idx > last || idx < 0 {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
