package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResample(t *testing.T) {
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	tcs := []struct {
		name       string
		srcW, srcH int
		w, h       int
	}{
		{"upscale", 30, 17, 100, 56},
		{"downscale", 200, 112, 100, 56},
		{"mixed", 120, 40, 100, 56},
	}
	for _, tc := range tcs {
		got := Resample(solid(tc.srcW, tc.srcH, c), tc.w, tc.h)
		if b := got.Bounds(); b.Dx() != tc.w || b.Dy() != tc.h {
			t.Fatalf("%s: size = %v; want %dx%d", tc.name, b, tc.w, tc.h)
		}
		for _, p := range []image.Point{{0, 0}, {tc.w / 2, tc.h / 2}, {tc.w - 1, tc.h - 1}} {
			px := got.NRGBAAt(p.X, p.Y)
			if absDiff(px.R, c.R) > 1 || absDiff(px.G, c.G) > 1 || absDiff(px.B, c.B) > 1 || px.A != 255 {
				t.Fatalf("%s: pixel %v = %v; want %v", tc.name, p, px, c)
			}
		}
	}
}

func TestResampleSameSizeIsIdentity(t *testing.T) {
	src := solid(8, 8, color.NRGBA{A: 255})
	if got := Resample(src, 8, 8); got != src {
		t.Fatal("Resample copied an image already at target size")
	}
	if got := Resample(src, 0, 5); got.Bounds().Dx() != 0 {
		t.Fatalf("Resample to zero width = %v", got.Bounds())
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
