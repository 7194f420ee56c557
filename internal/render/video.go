package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"
	"log/slog"

	"github.com/icza/mjpeg"

	"cell-society/internal/core"
)

// Video records every committed generation as one frame of an MJPEG AVI.
// It is a core.Observer.
type Video struct {
	aw      mjpeg.AviWriter
	raster  *Rasterizer
	palette []color.RGBA
	buf     bytes.Buffer
	frames  int
	err     error
	closed  bool
}

// NewVideo creates the AVI file at path for g and writes g's current state
// as the first frame.
func NewVideo(path string, g *core.Grid, palette []color.RGBA, cell, fps int) (*Video, error) {
	if fps <= 0 {
		fps = 10
	}
	size := g.Size()
	raster := NewRasterizer(g.Shape(), size.Rows, size.Cols, cell)
	b := raster.Bounds()
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	v := &Video{aw: aw, raster: raster, palette: palette}
	v.Observe(g)
	if v.err != nil {
		aw.Close()
		return nil, v.err
	}
	return v, nil
}

// Observe appends g's current state as a frame.
func (v *Video) Observe(g *core.Grid) {
	if v.err != nil || v.closed {
		return
	}
	var agents []core.AgentRecord
	if r, ok := g.Rule().(core.AgentReporter); ok {
		agents = r.Agents(g)
	}
	img := v.raster.Frame(g.States(), v.palette, agents)
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &jpeg.Options{Quality: 90}); err != nil {
		v.fail(g, fmt.Errorf("encode frame: %w", err))
		return
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		v.fail(g, fmt.Errorf("add frame: %w", err))
		return
	}
	v.frames++
}

func (v *Video) fail(g *core.Grid, err error) {
	slog.Warn("video frame dropped", "generation", g.Generation(), "err", err)
	v.err = err
}

// Frames returns the number of frames written.
func (v *Video) Frames() int { return v.frames }

// Err returns the first write error, if any.
func (v *Video) Err() error { return v.err }

// Close finalises the AVI index. Later calls do nothing.
func (v *Video) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.aw.Close()
}
