package skeleton

import (
	"math"
	"testing"

	"statue-viewer/internal/bmd"
)

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestApplyBindPoseTranslatesAndChains(t *testing.T) {
	m := &bmd.Model{
		Meshes: []bmd.Mesh{{
			Verts: [][3]float32{{1, 0, 0}, {1, 0, 0}, {1, 0, 0}},
			Nodes: []int16{0, 1, 7},
		}},
		Bones: []bmd.Bone{
			{Parent: -1, BindPosition: [3]float64{0, 2, 0}},
			// Quarter turn about Z under bone 0.
			{Parent: 0, BindRotation: [3]float64{0, 0, math.Pi / 2}},
		},
	}
	ApplyBindPose(m)

	want := [][3]float32{
		{1, 2, 0}, // translated by root
		{0, 3, 0}, // rotated to +Y, then translated
		{1, 0, 0}, // out-of-range bone is left alone
	}
	for i, w := range want {
		got := m.Meshes[0].Verts[i]
		if !near(got[0], w[0]) || !near(got[1], w[1]) || !near(got[2], w[2]) {
			t.Errorf("vertex %d = %v; want %v", i, got, w)
		}
	}
}

func TestApplyBindPoseIdentityIsNoop(t *testing.T) {
	m := &bmd.Model{
		Meshes: []bmd.Mesh{{Verts: [][3]float32{{3, 4, 5}}, Nodes: []int16{0}}},
		Bones:  []bmd.Bone{{Parent: -1}, {Parent: -1, IsDummy: true}},
	}
	ApplyBindPose(m)
	if got := m.Meshes[0].Verts[0]; got != [3]float32{3, 4, 5} {
		t.Fatalf("vertex moved to %v under identity pose", got)
	}
}
