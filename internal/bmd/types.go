package bmd

// Triangle holds polygon type and index quadruples into the vertex,
// normal and texcoord arrays of its mesh.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int16
	NI      [4]int16
	TI      [4]int16
}

// Corners returns the triangles covered by t as index triples into VI/NI/TI.
func (t Triangle) Corners() [][3]int {
	if t.Polygon == 4 {
		return [][3]int{{0, 1, 2}, {0, 2, 3}}
	}
	return [][3]int{{0, 1, 2}}
}

// Mesh holds geometry for one sub-mesh of a model.
type Mesh struct {
	Verts   [][3]float32 // positions, rewritten in place by bind-pose skinning
	Nodes   []int16      // bone index per vertex
	Normals [][3]float32
	UVs     [][2]float32
	Tris    []Triangle
	TexPath string // texture reference, slashes normalized
}

// Bone holds the bind pose of one skeleton bone.
type Bone struct {
	Name         string
	Parent       int
	IsDummy      bool
	BindPosition [3]float64
	BindRotation [3]float64 // Euler XYZ radians
}

// Model is a decoded mesh asset.
type Model struct {
	Name    string
	Version byte
	Meshes  []Mesh
	Bones   []Bone
}

// Supported container versions.
const (
	VersionPlain = 10 // unencrypted
	VersionXOR   = 12 // chained XOR
	VersionLEA   = 15 // LEA-256 ECB
)
