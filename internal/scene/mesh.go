package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"statue-viewer/internal/texture"
)

// Geometry is an unindexed triangle list: three corners per triangle.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3 // zero vectors fall back to the face normal
	UVs       []mgl64.Vec2
}

// Triangles returns the number of triangles.
func (g *Geometry) Triangles() int { return len(g.Positions) / 3 }

// Material describes how a surface is shaded.
type Material interface {
	// Albedo returns the base colour multiplier.
	Albedo() mgl64.Vec3
}

// StandardMaterial is a metal/rough physically based material.
type StandardMaterial struct {
	Color        mgl64.Vec3
	Metalness    float64
	Roughness    float64
	Reflectivity float64
	Map          *texture.Texture
}

// NewStandardMaterial returns a white dielectric with medium roughness.
func NewStandardMaterial() *StandardMaterial {
	return &StandardMaterial{
		Color:        mgl64.Vec3{1, 1, 1},
		Roughness:    1,
		Reflectivity: 0.5,
	}
}

func (m *StandardMaterial) Albedo() mgl64.Vec3 { return m.Color }

// Mesh is renderable geometry with a material.
type Mesh struct {
	Name          string
	Geometry      *Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool

	transform Transform
}

// NewMesh creates a mesh with an identity transform.
func NewMesh(name string, g *Geometry, m Material) *Mesh {
	return &Mesh{Name: name, Geometry: g, Material: m, transform: NewTransform()}
}

func (m *Mesh) Transform() *Transform { return &m.transform }

// Group is a transform node over meshes and nested groups.
type Group struct {
	Name     string
	Children []Object

	transform Transform
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name, transform: NewTransform()}
}

func (g *Group) Transform() *Transform { return &g.transform }

// Add appends a child.
func (g *Group) Add(o Object) { g.Children = append(g.Children, o) }

// Meshes calls f for every mesh under g.
func (g *Group) Meshes(f func(*Mesh)) {
	for _, c := range g.Children {
		switch n := c.(type) {
		case *Mesh:
			f(n)
		case *Group:
			n.Meshes(f)
		}
	}
}

func (g *Group) traverse(parent mgl64.Mat4, f func(*Mesh, mgl64.Mat4)) {
	world := parent.Mul4(g.transform.Matrix())
	for _, c := range g.Children {
		switch n := c.(type) {
		case *Mesh:
			f(n, world.Mul4(n.transform.Matrix()))
		case *Group:
			n.traverse(world, f)
		}
	}
}
