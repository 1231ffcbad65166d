package session

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/scene"
	"statue-viewer/internal/surface"
)

// Orbit speeds in radians per frame.
const (
	OrbiterAStep  = 0.015
	OrbiterBStep  = 0.02
	OrbiterBStart = 45.0
	ModelSpin     = 0.001
)

// Light colours, intensities and ranges.
const (
	ambientColor     = 0x404040
	ambientIntensity = 1.0

	orbiterAColor     = 0xff5500
	orbiterAIntensity = 40
	orbiterARange     = 30

	orbiterBColor     = 0x0077ff
	orbiterBIntensity = 30
	orbiterBRange     = 25

	pointerColor     = 0xffffff
	pointerIntensity = 6
	pointerRange     = 20
	pointerReach     = 5
	pointerDepth     = 5
)

// OrbiterA returns the horizontal orbiter's position at angle a.
func OrbiterA(a float64) mgl64.Vec3 {
	return mgl64.Vec3{10 * math.Cos(a), 5 + 2*math.Sin(a*0.5), 10 * math.Sin(a)}
}

// OrbiterB returns the vertical orbiter's position at angle a.
func OrbiterB(a float64) mgl64.Vec3 {
	return mgl64.Vec3{7 * math.Sin(a), -5 + 5*math.Sin(a), 7 * math.Cos(a)}
}

// PointerLight returns the pointer light's position for a pointer at
// (x, y) over a w×h viewport.
func PointerLight(x, y float64, w, h int) mgl64.Vec3 {
	nx := 2*x/float64(max(w, 1)) - 1
	ny := 2*y/float64(max(h, 1)) - 1
	return mgl64.Vec3{nx * pointerReach, -ny * pointerReach, pointerDepth}
}

// ResolutionScale maps a pointer x over a viewport of width w to a
// pixel ratio: the minimum at the left edge, 1 at the right edge.
func ResolutionScale(x float64, w int) float64 {
	lo, hi := surface.MinPixelRatio, surface.MaxPixelRatio
	t := x / float64(max(w, 1))
	s := lo*(1-t) + hi*t
	if math.IsNaN(s) {
		return lo
	}
	return min(max(s, lo), hi)
}

// Rig is the scene's four lights and the orbit angles driving them.
type Rig struct {
	Ambient  *scene.AmbientLight
	OrbiterA *scene.PointLight
	OrbiterB *scene.PointLight
	Pointer  *scene.PointLight

	angleA float64
	angleB float64
}

// NewRig creates the lights at their starting positions. Only the
// orbiters cast shadows.
func NewRig() *Rig {
	r := &Rig{
		Ambient:  scene.NewAmbientLight(ambientColor, ambientIntensity),
		OrbiterA: scene.NewPointLight(orbiterAColor, orbiterAIntensity, orbiterARange, true),
		OrbiterB: scene.NewPointLight(orbiterBColor, orbiterBIntensity, orbiterBRange, true),
		Pointer:  scene.NewPointLight(pointerColor, pointerIntensity, pointerRange, false),
		angleB:   OrbiterBStart,
	}
	r.OrbiterA.SetPosition(OrbiterA(r.angleA))
	r.OrbiterB.SetPosition(OrbiterB(r.angleB))
	r.Pointer.SetPosition(mgl64.Vec3{0, 0, pointerDepth})
	return r
}

// AddTo attaches every light to s.
func (r *Rig) AddTo(s *scene.Scene) {
	s.Add(r.Ambient)
	s.Add(r.OrbiterA)
	s.Add(r.OrbiterB)
	s.Add(r.Pointer)
}

// Angles returns the current orbit angles.
func (r *Rig) Angles() (a, b float64) { return r.angleA, r.angleB }

// Advance steps both orbiters by one frame.
func (r *Rig) Advance() {
	r.angleA += OrbiterAStep
	r.angleB += OrbiterBStep
	r.OrbiterA.SetPosition(OrbiterA(r.angleA))
	r.OrbiterB.SetPosition(OrbiterB(r.angleB))
}

// FollowPointer moves the pointer light over a w×h viewport.
func (r *Rig) FollowPointer(x, y float64, w, h int) {
	r.Pointer.SetPosition(PointerLight(x, y, w, h))
}
