package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/scene"
	"statue-viewer/internal/texture"
)

// Output transfer parameters.
const (
	exposure = 1.0
	invGamma = 1 / 2.2
)

// srgbToLinear is a 256-entry sRGB decode table.
var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// encode maps linear radiance to an sRGB byte.
func encode(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	return clamp255(math.Pow(ACESTonemap(x*exposure), invGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// surface holds the material terms that stay fixed over a triangle.
type surface struct {
	albedo       mgl64.Vec3
	metalness    float64
	roughness    float64
	reflectivity float64
	tex          *texture.Texture
	receive      bool
}

func surfaceOf(m scene.Material, receive bool) surface {
	if sm, ok := m.(*scene.StandardMaterial); ok {
		return surface{
			albedo:       sm.Color,
			metalness:    sm.Metalness,
			roughness:    sm.Roughness,
			reflectivity: sm.Reflectivity,
			tex:          sm.Map,
			receive:      receive,
		}
	}
	return surface{albedo: m.Albedo(), roughness: 1, reflectivity: 0.5, receive: receive}
}

// irradiance is incoming light at a point, split so albedo can be
// applied afterwards: colour = diffuseColor·diffuse + F0·specA + specB.
type irradiance struct {
	diffuse mgl64.Vec3
	specA   mgl64.Vec3
	specB   mgl64.Vec3
}

func (ir irradiance) resolve(albedo mgl64.Vec3, s *surface) mgl64.Vec3 {
	dielectric := 0.16 * s.reflectivity * s.reflectivity
	var out mgl64.Vec3
	for c := 0; c < 3; c++ {
		f0 := dielectric*(1-s.metalness) + albedo[c]*s.metalness
		out[c] = albedo[c]*(1-s.metalness)*ir.diffuse[c] + f0*ir.specA[c] + ir.specB[c]
	}
	return out
}

// pointSample is a light resolved for one frame.
type pointSample struct {
	pos      mgl64.Vec3
	radiance mgl64.Vec3
	light    *scene.PointLight
	shadow   bool
}

// environment is the per-frame lighting state.
type environment struct {
	ambient mgl64.Vec3
	lights  []pointSample
	eye     mgl64.Vec3
	casters []occluder
}

func newEnvironment(s *scene.Scene, eye mgl64.Vec3, shadows bool) *environment {
	env := &environment{ambient: s.Ambient(), eye: eye}
	anyShadow := false
	for _, l := range s.Lights() {
		ps := pointSample{
			pos:      l.Position(),
			radiance: l.Color.Mul(l.Intensity),
			light:    l,
			shadow:   shadows && l.CastShadow(),
		}
		anyShadow = anyShadow || ps.shadow
		env.lights = append(env.lights, ps)
	}
	if anyShadow {
		env.casters = collectOccluders(s)
	}
	return env
}

// light evaluates Lambert diffuse and GGX specular at p with normal n.
func (env *environment) light(p, n mgl64.Vec3, s *surface) irradiance {
	v := env.eye.Sub(p).Normalize()
	if n.Dot(v) < 0 {
		n = n.Mul(-1) // double sided
	}
	nv := math.Max(n.Dot(v), 1e-4)

	a := math.Max(s.roughness*s.roughness, 1e-3)
	a2 := a * a

	ir := irradiance{diffuse: env.ambient.Mul(1 / math.Pi)}
	for i := range env.lights {
		ls := &env.lights[i]
		toLight := ls.pos.Sub(p)
		d := toLight.Len()
		if d < 1e-9 {
			continue
		}
		l := toLight.Mul(1 / d)
		nl := n.Dot(l)
		if nl <= 0 {
			continue
		}
		att := ls.light.Attenuation(d)
		if att <= 0 {
			continue
		}
		if ls.shadow && s.receive && occluded(env.casters, p.Add(n.Mul(shadowBias)), ls.pos) {
			continue
		}

		e := ls.radiance.Mul(att * nl)
		ir.diffuse = ir.diffuse.Add(e.Mul(1 / math.Pi))

		h := l.Add(v).Normalize()
		nh := math.Max(n.Dot(h), 0)
		vh := math.Max(v.Dot(h), 0)

		denom := nh*nh*(a2-1) + 1
		dTerm := a2 / (math.Pi * denom * denom)
		gv := nl * math.Sqrt(a2+(1-a2)*nv*nv)
		gl := nv * math.Sqrt(a2+(1-a2)*nl*nl)
		vis := 0.5 / math.Max(gv+gl, 1e-9)

		schlick := math.Pow(1-vh, 5)
		spec := e.Mul(dTerm * vis)
		ir.specA = ir.specA.Add(spec.Mul(1 - schlick))
		ir.specB = ir.specB.Add(spec.Mul(schlick))
	}
	return ir
}
