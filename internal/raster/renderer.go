package raster

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/scene"
)

// PowerPreference selects how much CPU the renderer may use.
type PowerPreference int

const (
	// HighPerformance rasterizes row bands on all CPUs.
	HighPerformance PowerPreference = iota
	// LowPower rasterizes on the calling goroutine only.
	LowPower
)

// Precision selects where lighting is evaluated.
type Precision int

const (
	// PrecisionHigh lights every pixel.
	PrecisionHigh Precision = iota
	// PrecisionLow lights triangle corners and interpolates.
	PrecisionLow
)

// Options configure a Renderer.
type Options struct {
	Antialias       bool
	PowerPreference PowerPreference
	Precision       Precision
	Shadows         bool
}

// Renderer draws a scene into a FrameBuffer.
type Renderer struct {
	opts    Options
	workers int
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	workers := 1
	if opts.PowerPreference == HighPerformance {
		workers = runtime.NumCPU()
	}
	return &Renderer{opts: opts, workers: workers}
}

// Options returns the options the renderer was created with.
func (r *Renderer) Options() Options { return r.opts }

// Render clears fb to the scene background and draws every mesh
// reachable from the scene root as seen by cam.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera, fb *FrameBuffer) {
	bg := s.Background
	fb.Clear(clamp255(bg[0]*255), clamp255(bg[1]*255), clamp255(bg[2]*255))
	if fb.Width == 0 || fb.Height == 0 {
		return
	}

	env := newEnvironment(s, cam.Position, r.opts.Shadows)
	vp := cam.ViewProjection()
	low := r.opts.Precision == PrecisionLow

	var tris []triangle
	s.Traverse(func(m *scene.Mesh, world mgl64.Mat4) {
		tris = appendMesh(tris, m, world, vp, env, low, fb.Width, fb.Height)
	})
	if len(tris) == 0 {
		return
	}

	workers := min(r.workers, fb.Height)
	if workers <= 1 {
		for i := range tris {
			tris[i].draw(fb, env, low, 0, fb.Height)
		}
		return
	}

	band := (fb.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < fb.Height; y0 += band {
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for i := range tris {
				tris[i].draw(fb, env, low, y0, y1)
			}
		}(y0, min(y0+band, fb.Height))
	}
	wg.Wait()
}

// appendMesh projects the triangles of m and appends the visible ones.
func appendMesh(tris []triangle, m *scene.Mesh, world, vp mgl64.Mat4, env *environment, low bool, w, h int) []triangle {
	g := m.Geometry
	if g == nil {
		return tris
	}
	surf := surfaceOf(m.Material, m.ReceiveShadow)
	normalMat := world.Mat3().Inv().Transpose()

	for i := 0; i+2 < len(g.Positions); i += 3 {
		var wp [3]mgl64.Vec3
		for k := range wp {
			wp[k] = mgl64.TransformCoordinate(g.Positions[i+k], world)
		}
		face := wp[1].Sub(wp[0]).Cross(wp[2].Sub(wp[0]))
		if face.Len() < 1e-12 {
			continue
		}
		face = face.Normalize()

		t := triangle{surf: &surf}
		visible := true
		for k := range wp {
			clip := vp.Mul4x1(wp[k].Vec4(1))
			if clip[3] < 1e-6 {
				visible = false // behind the eye
				break
			}
			invW := 1 / clip[3]
			v := &t.v[k]
			v.sx = (clip[0]*invW + 1) * 0.5 * float64(w)
			v.sy = (1 - clip[1]*invW) * 0.5 * float64(h)
			v.sz = clip[2] * invW
			v.invW = invW

			n := face
			if i+k < len(g.Normals) && g.Normals[i+k].Len() > 1e-12 {
				n = normalMat.Mul3x1(g.Normals[i+k]).Normalize()
			}
			var a varying
			if i+k < len(g.UVs) {
				a[vU], a[vV] = g.UVs[i+k][0], g.UVs[i+k][1]
			}
			a.setVec3(vPos, wp[k])
			a.setVec3(vNorm, n)
			if low {
				ir := env.light(wp[k], n, &surf)
				a.setVec3(vDiff, ir.diffuse)
				a.setVec3(vSpecA, ir.specA)
				a.setVec3(vSpecB, ir.specB)
			}
			for j := range a {
				v.attr[j] = a[j] * invW
			}
		}
		if !visible {
			continue
		}

		t.area = edge(t.v[0].sx, t.v[0].sy, t.v[1].sx, t.v[1].sy, t.v[2].sx, t.v[2].sy)
		if t.area > -1e-12 && t.area < 1e-12 {
			continue
		}
		if !t.bounds(w, h) {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}
