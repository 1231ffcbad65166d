// Package surface is the drawable a scene session renders into: a
// software renderer plus a backing framebuffer sized by a pixel ratio
// relative to the viewport.
package surface

import (
	"image"
	"math"

	"statue-viewer/internal/postprocess"
	"statue-viewer/internal/raster"
	"statue-viewer/internal/scene"
)

// Pixel ratio bounds.
const (
	MinPixelRatio = 0.3
	MaxPixelRatio = 1.0
)

// Surface renders scenes at a reduced backing resolution and presents
// them at viewport size.
type Surface struct {
	renderer *raster.Renderer
	width    int
	height   int
	ratio    float64
	fb       *raster.FrameBuffer
	renders  int
}

// New creates a w×h surface with the given renderer options and
// initial pixel ratio.
func New(w, h int, opts raster.Options, ratio float64) *Surface {
	s := &Surface{
		renderer: raster.NewRenderer(opts),
		width:    max(w, 1),
		height:   max(h, 1),
	}
	s.SetPixelRatio(ratio)
	return s
}

// Options returns the renderer options.
func (s *Surface) Options() raster.Options { return s.renderer.Options() }

// Size returns the viewport size.
func (s *Surface) Size() (w, h int) { return s.width, s.height }

// PixelRatio returns the current pixel ratio.
func (s *Surface) PixelRatio() float64 { return s.ratio }

// SetPixelRatio sets the backing resolution multiplier, clamped to
// [MinPixelRatio, MaxPixelRatio]. NaN is treated as the minimum.
func (s *Surface) SetPixelRatio(r float64) {
	if math.IsNaN(r) {
		r = MinPixelRatio
	}
	s.ratio = min(max(r, MinPixelRatio), MaxPixelRatio)
}

// BackingSize returns the framebuffer size the next Render uses.
// Antialiasing doubles it in both directions.
func (s *Surface) BackingSize() (w, h int) {
	w = max(1, int(math.Round(float64(s.width)*s.ratio)))
	h = max(1, int(math.Round(float64(s.height)*s.ratio)))
	if s.renderer.Options().Antialias {
		w, h = w*2, h*2
	}
	return w, h
}

// Render draws sc as seen by cam into the backing framebuffer.
func (s *Surface) Render(sc *scene.Scene, cam *scene.Camera) {
	w, h := s.BackingSize()
	if s.fb == nil || s.fb.Width != w || s.fb.Height != h {
		s.fb = raster.NewFrameBuffer(w, h)
	}
	s.renderer.Render(sc, cam, s.fb)
	s.renders++
}

// Renders returns the number of completed Render calls.
func (s *Surface) Renders() int { return s.renders }

// Present returns the last rendered frame scaled to viewport size.
// The result is owned by the caller. Before the first Render it is
// a transparent image.
func (s *Surface) Present() *image.NRGBA {
	if s.fb == nil {
		return image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	}
	src := s.fb.Image()
	out := postprocess.Resample(src, s.width, s.height)
	if out == src {
		out = &image.NRGBA{
			Pix:    append([]uint8(nil), src.Pix...),
			Stride: src.Stride,
			Rect:   src.Rect,
		}
	}
	return out
}
