// Package scene holds the scene graph: camera, lights and meshes drawn
// together each frame.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Object is a node that can be attached to a Scene.
type Object interface {
	// Transform returns the node's local transform. It must not return nil.
	Transform() *Transform
}

// Transform is a position, Euler XYZ rotation and scale.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Matrix returns T·Rz·Ry·Rx·S.
func (t *Transform) Matrix() mgl64.Mat4 {
	r := mgl64.HomogRotate3DZ(t.Rotation[2]).
		Mul4(mgl64.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl64.HomogRotate3DX(t.Rotation[0]))
	return mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(r).
		Mul4(mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Scene is the root of the graph.
type Scene struct {
	Background mgl64.Vec3
	children   []Object
}

// New creates an empty scene.
func New() *Scene { return &Scene{} }

// Add attaches o to the root. Adding an object that is already
// attached is a no-op and returns false.
func (s *Scene) Add(o Object) bool {
	if s.Contains(o) {
		return false
	}
	s.children = append(s.children, o)
	return true
}

// Remove detaches o and reports whether it was attached.
func (s *Scene) Remove(o Object) bool {
	for i, c := range s.children {
		if c == o {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether o is attached to the root.
func (s *Scene) Contains(o Object) bool {
	for _, c := range s.children {
		if c == o {
			return true
		}
	}
	return false
}

// Children returns the attached objects in insertion order.
func (s *Scene) Children() []Object { return s.children }

// Lights returns the attached point lights.
func (s *Scene) Lights() []*PointLight {
	var ls []*PointLight
	for _, c := range s.children {
		if l, ok := c.(*PointLight); ok {
			ls = append(ls, l)
		}
	}
	return ls
}

// Ambient returns the summed ambient radiance (colour × intensity).
func (s *Scene) Ambient() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, c := range s.children {
		if a, ok := c.(*AmbientLight); ok {
			sum = sum.Add(a.Color.Mul(a.Intensity))
		}
	}
	return sum
}

// Traverse calls f for every mesh reachable from the root together with
// its world matrix.
func (s *Scene) Traverse(f func(m *Mesh, world mgl64.Mat4)) {
	for _, c := range s.children {
		switch n := c.(type) {
		case *Group:
			n.traverse(mgl64.Ident4(), f)
		case *Mesh:
			f(n, n.Transform().Matrix())
		}
	}
}
