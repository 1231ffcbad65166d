package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/texture"
)

// Varying layout: interpolated per-vertex attributes.
const (
	vU = iota
	vV
	vPos // world position, 3 slots
	_
	_
	vNorm // world normal, 3 slots
	_
	_
	vDiff // per-vertex irradiance (low precision), 9 slots
	_
	_
	vSpecA
	_
	_
	vSpecB
	_
	_
	numVaryings
)

type varying [numVaryings]float64

func (a *varying) vec3(at int) mgl64.Vec3 { return mgl64.Vec3{a[at], a[at+1], a[at+2]} }

func (a *varying) setVec3(at int, v mgl64.Vec3) {
	a[at], a[at+1], a[at+2] = v[0], v[1], v[2]
}

// vertex is a projected triangle corner. attr holds varyings divided by w
// so they interpolate perspective-correctly in screen space.
type vertex struct {
	sx, sy, sz float64
	invW       float64
	attr       varying
}

type triangle struct {
	v    [3]vertex
	surf *surface
	area float64

	minX, maxX, minY, maxY int
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// bounds computes the screen bounding box clipped to w×h and reports
// whether any of it is visible.
func (t *triangle) bounds(w, h int) bool {
	x0, x1, x2 := t.v[0].sx, t.v[1].sx, t.v[2].sx
	y0, y1, y2 := t.v[0].sy, t.v[1].sy, t.v[2].sy
	t.minX = max(0, int(math.Floor(min(x0, x1, x2))))
	t.maxX = min(w-1, int(math.Ceil(max(x0, x1, x2))))
	t.minY = max(0, int(math.Floor(min(y0, y1, y2))))
	t.maxY = min(h-1, int(math.Ceil(max(y0, y1, y2))))
	return t.minX <= t.maxX && t.minY <= t.maxY
}

// draw rasterizes t into rows [y0, y1) of fb.
// This is the hot path: no allocation inside the pixel loop.
func (t *triangle) draw(fb *FrameBuffer, env *environment, lowPrecision bool, y0, y1 int) {
	minY := max(t.minY, y0)
	maxY := min(t.maxY, y1-1)
	if minY > maxY {
		return
	}

	a, b, c := &t.v[0], &t.v[1], &t.v[2]
	invArea := 1 / t.area
	surf := t.surf
	tex := surf.tex
	textured := tex.Ready()
	srgb := textured && tex.ColorSpace == texture.SRGB

	var at varying
	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5
		row := sy * fb.Width
		for sx := t.minX; sx <= t.maxX; sx++ {
			px := float64(sx) + 0.5
			w0 := edge(b.sx, b.sy, c.sx, c.sy, px, py) * invArea
			w1 := edge(c.sx, c.sy, a.sx, a.sy, px, py) * invArea
			w2 := 1 - w0 - w1
			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			z := w0*a.sz + w1*b.sz + w2*c.sz
			if z < -1 || z > 1 {
				continue
			}
			idx := row + sx
			if z >= fb.ZBuf[idx] {
				continue
			}

			invW := w0*a.invW + w1*b.invW + w2*c.invW
			wInv := 1 / invW
			for j := range at {
				at[j] = (w0*a.attr[j] + w1*b.attr[j] + w2*c.attr[j]) * wInv
			}

			albedo := surf.albedo
			if textured {
				tr, tg, tb, ta := SampleTexture(tex.Image, at[vU], at[vV])
				if ta < 8 {
					continue
				}
				if srgb {
					albedo = mgl64.Vec3{albedo[0] * srgbToLinear[tr], albedo[1] * srgbToLinear[tg], albedo[2] * srgbToLinear[tb]}
				} else {
					albedo = mgl64.Vec3{albedo[0] * float64(tr) / 255, albedo[1] * float64(tg) / 255, albedo[2] * float64(tb) / 255}
				}
			}

			var ir irradiance
			if lowPrecision {
				ir = irradiance{diffuse: at.vec3(vDiff), specA: at.vec3(vSpecA), specB: at.vec3(vSpecB)}
			} else {
				ir = env.light(at.vec3(vPos), at.vec3(vNorm).Normalize(), surf)
			}
			col := ir.resolve(albedo, surf)

			fb.ZBuf[idx] = z
			pi := idx * 4
			fb.Color[pi] = encode(col[0])
			fb.Color[pi+1] = encode(col[1])
			fb.Color[pi+2] = encode(col[2])
			fb.Color[pi+3] = 255
		}
	}
}
