package session

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/scene"
)

// near compares by absolute distance.
func near(a, b mgl64.Vec3) bool { return a.Sub(b).Len() < 1e-9 }

func TestResolutionScale(t *testing.T) {
	const w = 800
	if got := ResolutionScale(0, w); got != 0.3 {
		t.Fatalf("scale at x=0 = %v", got)
	}
	if got := ResolutionScale(w, w); got != 1 {
		t.Fatalf("scale at x=W = %v", got)
	}
	prev := math.Inf(-1)
	for x := -100.0; x <= w+100; x += 7 {
		s := ResolutionScale(x, w)
		if s < 0.3 || s > 1 {
			t.Fatalf("scale(%v) = %v out of range", x, s)
		}
		if s < prev {
			t.Fatalf("scale(%v) = %v < previous %v", x, s, prev)
		}
		prev = s
	}
	if got := ResolutionScale(math.NaN(), w); got != 0.3 {
		t.Fatalf("scale(NaN) = %v", got)
	}
}

func TestPointerLight(t *testing.T) {
	tcs := []struct {
		x, y float64
		w, h int
		want mgl64.Vec3
	}{
		{0, 0, 800, 600, mgl64.Vec3{-5, 5, 5}},
		{800, 600, 800, 600, mgl64.Vec3{5, -5, 5}},
		{400, 300, 800, 600, mgl64.Vec3{0, 0, 5}},
		{200, 450, 800, 600, mgl64.Vec3{-2.5, -2.5, 5}},
	}
	for _, tc := range tcs {
		got := PointerLight(tc.x, tc.y, tc.w, tc.h)
		want := mgl64.Vec3{(2*tc.x/float64(tc.w) - 1) * 5, -(2*tc.y/float64(tc.h) - 1) * 5, 5}
		if got != want || !near(got, tc.want) {
			t.Errorf("PointerLight(%v,%v) = %v; want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRigAdvance(t *testing.T) {
	r := NewRig()
	if !near(r.OrbiterA.Position(), mgl64.Vec3{10, 5, 0}) {
		t.Fatalf("orbiter A starts at %v", r.OrbiterA.Position())
	}
	for n := 1; n <= 500; n++ {
		r.Advance()
		if n%50 != 0 {
			continue
		}
		fa := 0.015 * float64(n)
		wantA := mgl64.Vec3{10 * math.Cos(fa), 5 + 2*math.Sin(0.0075*float64(n)), 10 * math.Sin(fa)}
		if !near(r.OrbiterA.Position(), wantA) {
			t.Fatalf("n=%d: orbiter A = %v; want %v", n, r.OrbiterA.Position(), wantA)
		}
		fb := 45 + 0.02*float64(n)
		wantB := mgl64.Vec3{7 * math.Sin(fb), -5 + 5*math.Sin(fb), 7 * math.Cos(fb)}
		if !near(r.OrbiterB.Position(), wantB) {
			t.Fatalf("n=%d: orbiter B = %v; want %v", n, r.OrbiterB.Position(), wantB)
		}
	}
}

func TestRigLights(t *testing.T) {
	r := NewRig()
	tcs := []struct {
		name      string
		light     *scene.PointLight
		color     uint32
		intensity float64
		distance  float64
	}{
		{"A", r.OrbiterA, 0xff5500, 40, 30},
		{"B", r.OrbiterB, 0x0077ff, 30, 25},
		{"pointer", r.Pointer, 0xffffff, 6, 20},
	}
	for _, tc := range tcs {
		l := tc.light
		if l.Color != scene.Hex(tc.color) || l.Intensity != tc.intensity || l.Distance != tc.distance {
			t.Errorf("%s: colour %v intensity %v range %v", tc.name, l.Color, l.Intensity, l.Distance)
		}
	}
	if r.Ambient.Intensity != 1 || r.Ambient.Color != scene.Hex(0x404040) {
		t.Errorf("ambient = %+v", r.Ambient)
	}
}
