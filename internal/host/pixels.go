package host

import "image"

// pointerTracker turns polled cursor positions into move events.
type pointerTracker struct {
	x, y  int
	known bool
}

// moved records (x, y) and reports whether it is a move over the
// w×h viewport. The first position seen is not a move.
func (p *pointerTracker) moved(x, y, w, h int) bool {
	first := !p.known
	changed := x != p.x || y != p.y
	p.x, p.y, p.known = x, y, true
	if first || !changed {
		return false
	}
	return x >= 0 && y >= 0 && x < w && y < h
}

// premultiply converts img to the premultiplied RGBA bytes ebiten
// expects, reusing dst when it is large enough.
func premultiply(dst []byte, img *image.NRGBA) []byte {
	b := img.Bounds()
	n := b.Dx() * b.Dy() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx()*4; x += 4 {
			a := uint32(row[x+3])
			dst[i] = uint8(uint32(row[x]) * a / 255)
			dst[i+1] = uint8(uint32(row[x+1]) * a / 255)
			dst[i+2] = uint8(uint32(row[x+2]) * a / 255)
			dst[i+3] = uint8(a)
			i += 4
		}
	}
	return dst
}
