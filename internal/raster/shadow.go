package raster

import (
	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/scene"
)

// shadowBias offsets shaded points along the normal before occlusion tests.
const shadowBias = 1e-3

// occluder is a world-space triangle of a shadow-casting mesh.
type occluder struct {
	a, e1, e2 mgl64.Vec3
}

func collectOccluders(s *scene.Scene) []occluder {
	var out []occluder
	s.Traverse(func(m *scene.Mesh, world mgl64.Mat4) {
		if !m.CastShadow || m.Geometry == nil {
			return
		}
		pos := m.Geometry.Positions
		for i := 0; i+2 < len(pos); i += 3 {
			a := mgl64.TransformCoordinate(pos[i], world)
			b := mgl64.TransformCoordinate(pos[i+1], world)
			c := mgl64.TransformCoordinate(pos[i+2], world)
			out = append(out, occluder{a: a, e1: b.Sub(a), e2: c.Sub(a)})
		}
	})
	return out
}

// occluded reports whether the segment from..to crosses any occluder.
func occluded(occs []occluder, from, to mgl64.Vec3) bool {
	dir := to.Sub(from)
	for i := range occs {
		o := &occs[i]
		p := dir.Cross(o.e2)
		det := o.e1.Dot(p)
		if det > -1e-12 && det < 1e-12 {
			continue
		}
		inv := 1 / det
		s := from.Sub(o.a)
		u := s.Dot(p) * inv
		if u < 0 || u > 1 {
			continue
		}
		q := s.Cross(o.e1)
		v := dir.Dot(q) * inv
		if v < 0 || u+v > 1 {
			continue
		}
		t := o.e2.Dot(q) * inv
		if t > 1e-6 && t < 1-1e-6 {
			return true
		}
	}
	return false
}
