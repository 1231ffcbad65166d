package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/bmd"
)

// LocalMatrix returns the bind-pose transform of a bone relative to its parent.
// Rotation is Euler XYZ applied as Rz·Ry·Rx.
func LocalMatrix(b bmd.Bone) mgl64.Mat4 {
	rx, ry, rz := b.BindRotation[0], b.BindRotation[1], b.BindRotation[2]
	q := mgl64.QuatRotate(rz, mgl64.Vec3{0, 0, 1}).
		Mul(mgl64.QuatRotate(ry, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(rx, mgl64.Vec3{1, 0, 0}))
	p := b.BindPosition
	return mgl64.Translate3D(p[0], p[1], p[2]).Mul4(q.Mat4())
}

// WorldMatrices computes the bind-pose world transform of each bone.
// Parents must precede their children; other parents are ignored.
func WorldMatrices(bones []bmd.Bone) []mgl64.Mat4 {
	worlds := make([]mgl64.Mat4, len(bones))
	for i, bone := range bones {
		if bone.IsDummy {
			worlds[i] = mgl64.Ident4()
			continue
		}
		local := LocalMatrix(bone)
		if bone.Parent >= 0 && bone.Parent < i {
			worlds[i] = worlds[bone.Parent].Mul4(local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// ApplyBindPose moves mesh vertices into bind pose in place.
// Rigid skinning: one bone per vertex, weight 1.
func ApplyBindPose(m *bmd.Model) {
	if len(m.Bones) == 0 {
		return
	}

	worlds := WorldMatrices(m.Bones)
	allIdentity := true
	for _, w := range worlds {
		if !w.ApproxEqual(mgl64.Ident4()) {
			allIdentity = false
			break
		}
	}
	if allIdentity {
		return
	}

	for mi := range m.Meshes {
		mesh := &m.Meshes[mi]
		for vi, v := range mesh.Verts {
			if vi >= len(mesh.Nodes) {
				break
			}
			bone := int(mesh.Nodes[vi])
			if bone < 0 || bone >= len(worlds) {
				continue
			}
			p := mgl64.TransformCoordinate(mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}, worlds[bone])
			mesh.Verts[vi] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
		}
	}
}
