package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Resample scales img to w×h. Upscaling (a reduced pixel ratio) uses
// bilinear filtering; downscaling (supersampled antialiasing) uses
// premultiplied CatmullRom to avoid dark halos at transparent edges.
// The input is returned as-is when it already has the target size.
func Resample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}

	if b.Dx() <= w && b.Dy() <= h {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	result := image.NewNRGBA(scaled.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := scaled.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(scaled.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(scaled.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(scaled.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(scaled.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = scaled.Pix[si+3]
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
