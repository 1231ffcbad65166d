package loader

import (
	"context"
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/bmd"
	"statue-viewer/internal/crypto"
	"statue-viewer/internal/scene"
	"statue-viewer/internal/skeleton"
	"statue-viewer/internal/texture"
)

// Assets loads mesh and texture files. Encrypted meshes are decoded
// with the key stored at the decoder path, read on first use.
type Assets struct {
	decoderPath string

	keyOnce sync.Once
	key     [crypto.LEAKeySize]byte
	keyErr  error
}

// NewAssets returns a loader whose v15 key lives at decoderPath.
// An empty path means encrypted meshes cannot be loaded.
func NewAssets(decoderPath string) *Assets {
	return &Assets{decoderPath: decoderPath}
}

func (a *Assets) decoderKey() ([crypto.LEAKeySize]byte, error) {
	a.keyOnce.Do(func() {
		if a.decoderPath == "" {
			a.keyErr = bmd.ErrNoKey
			return
		}
		a.key, a.keyErr = crypto.LoadKey(a.decoderPath)
	})
	return a.key, a.keyErr
}

// LoadModel decodes the mesh file at path, poses it and returns it as
// a group with one mesh per sub-mesh. Each mesh gets a default
// material; callers replace it.
func (a *Assets) LoadModel(ctx context.Context, path string) (*scene.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := bmd.Parse(path, a.decoderKey)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	skeleton.ApplyBindPose(m)
	return BuildGroup(m), nil
}

// LoadTexture decodes the image file at path.
func (a *Assets) LoadTexture(ctx context.Context, path string) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return texture.Load(path)
}

// BuildGroup converts a decoded model into scene meshes. Quads become
// two triangles; triangles with an out-of-range position index are
// dropped, missing normals fall back to the face normal and missing
// texcoords to (0, 0).
func BuildGroup(m *bmd.Model) *scene.Group {
	g := scene.NewGroup(m.Name)
	mat := scene.NewStandardMaterial()
	for i := range m.Meshes {
		src := &m.Meshes[i]
		geo := &scene.Geometry{}
		for _, tri := range src.Tris {
			for _, c := range tri.Corners() {
				if !validIndices(tri.VI, c, len(src.Verts)) {
					continue
				}
				for _, k := range c {
					v := src.Verts[tri.VI[k]]
					geo.Positions = append(geo.Positions, mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})

					var n mgl64.Vec3
					if ni := int(tri.NI[k]); ni >= 0 && ni < len(src.Normals) {
						sn := src.Normals[ni]
						n = mgl64.Vec3{float64(sn[0]), float64(sn[1]), float64(sn[2])}
					}
					geo.Normals = append(geo.Normals, n)

					var uv mgl64.Vec2
					if ti := int(tri.TI[k]); ti >= 0 && ti < len(src.UVs) {
						uv = mgl64.Vec2{float64(src.UVs[ti][0]), float64(src.UVs[ti][1])}
					}
					geo.UVs = append(geo.UVs, uv)
				}
			}
		}
		if len(geo.Positions) == 0 {
			continue
		}
		g.Add(scene.NewMesh(src.TexPath, geo, mat))
	}
	return g
}

func validIndices(vi [4]int16, c [3]int, n int) bool {
	for _, k := range c {
		if idx := int(vi[k]); idx < 0 || idx >= n {
			return false
		}
	}
	return true
}
