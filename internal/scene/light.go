package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hex converts a 0xRRGGBB colour to unit RGB.
func Hex(c uint32) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(c>>16&0xFF) / 255,
		float64(c>>8&0xFF) / 255,
		float64(c&0xFF) / 255,
	}
}

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     mgl64.Vec3
	Intensity float64
	transform Transform
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(color uint32, intensity float64) *AmbientLight {
	return &AmbientLight{Color: Hex(color), Intensity: intensity, transform: NewTransform()}
}

func (l *AmbientLight) Transform() *Transform { return &l.transform }

// PointLight emits from a position in all directions.
type PointLight struct {
	Color     mgl64.Vec3
	Intensity float64
	// Distance is the cut-off range; 0 means unbounded.
	Distance float64
	Decay    float64

	castShadow bool
	transform  Transform
}

// NewPointLight creates a point light with physical (inverse square) decay.
// Whether it casts shadows is fixed at creation.
func NewPointLight(color uint32, intensity, distance float64, castShadow bool) *PointLight {
	return &PointLight{
		Color:      Hex(color),
		Intensity:  intensity,
		Distance:   distance,
		Decay:      2,
		castShadow: castShadow,
		transform:  NewTransform(),
	}
}

func (l *PointLight) Transform() *Transform { return &l.transform }

// Position returns the light's position.
func (l *PointLight) Position() mgl64.Vec3 { return l.transform.Position }

// SetPosition moves the light.
func (l *PointLight) SetPosition(p mgl64.Vec3) { l.transform.Position = p }

// CastShadow reports whether the light casts shadows.
func (l *PointLight) CastShadow() bool { return l.castShadow }

// Attenuation returns the falloff factor at distance d:
// 1/max(d^decay, 0.01), smoothly windowed to zero at Distance.
func (l *PointLight) Attenuation(d float64) float64 {
	f := 1 / math.Max(math.Pow(d, l.Decay), 0.01)
	if l.Distance > 0 {
		r := d / l.Distance
		w := 1 - r*r*r*r
		if w < 0 {
			w = 0
		}
		f *= w * w
	}
	return f
}
