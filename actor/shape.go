package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the closed set of collision shapes: *Box or *Mesh.
// The unexported marker keeps other packages from adding variants, so a type switch
// over the two cases is exhaustive.
type Shape interface {
	// Bounds returns the world-space AABB of the shape under transform
	Bounds(transform Transform) AABB
	isShape()
}

// Box is a box owned by its body, defined by half-extents in local space.
// With an identity rotation it collides as an AABB, otherwise as an oriented box.
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) isShape() {}

func (b *Box) Bounds(transform Transform) AABB {
	return NewAABBFromCenter(mgl64.Vec3{}, b.HalfExtents).Transformed(transform)
}

// Edges returns the 12 edges of the canonical box wireframe as corner index pairs into AABB.Corners
func (b *Box) Edges() [12][2]int {
	return boxEdges
}

var boxEdges = [12][2]int{
	// along X
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	// along Y
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	// along Z
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Mesh references static triangle geometry owned outside the engine
type Mesh struct {
	Data *MeshData
}

func (m *Mesh) isShape() {}

func (m *Mesh) Bounds(transform Transform) AABB {
	if m.Data == nil {
		return AABB{Min: transform.Position, Max: transform.Position}
	}

	return m.Data.Bounds.Transformed(transform)
}

// MeshData is an indexed triangle list in local space with its precomputed bounds
type MeshData struct {
	Vertices []mgl64.Vec3
	Indices  []uint32
	Bounds   AABB
}

// NewMeshData builds mesh data and computes its bounding box
func NewMeshData(vertices []mgl64.Vec3, indices []uint32) *MeshData {
	m := &MeshData{Vertices: vertices, Indices: indices}
	m.ComputeBounds()

	return m
}

// ComputeBounds recomputes Bounds from the vertices
func (m *MeshData) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = AABB{}
		return
	}

	min := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			min[axis] = math.Min(min[axis], v[axis])
			max[axis] = math.Max(max[axis], v[axis])
		}
	}

	m.Bounds = AABB{Min: min, Max: max}
}

// TriangleCount returns the number of complete index triples
func (m *MeshData) TriangleCount() int {
	if m == nil {
		return 0
	}

	return len(m.Indices) / 3
}

// Triangle returns the local vertices of triangle i.
// ok is false when an index points outside the vertex slice.
func (m *MeshData) Triangle(i int) (a, b, c mgl64.Vec3, ok bool) {
	ia, ib, ic := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	n := uint32(len(m.Vertices))
	if ia >= n || ib >= n || ic >= n {
		return a, b, c, false
	}

	return m.Vertices[ia], m.Vertices[ib], m.Vertices[ic], true
}
