// Package mesh is the indexed triangle mesh model the LOD pipeline builds
// clusters, quadrics and collapses over.
package mesh

import (
	"math"

	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// InvalidIndex marks a vertex or triangle slot as removed.
const InvalidIndex = ^uint32(0)

// InvalidVertex is the sentinel written into Vertices at a removed slot.
var InvalidVertex = vecmath.Vec3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32}

// Mesh is an indexed triangle mesh. Indices is a flat list of vertex
// indices, three per triangle. Normals and Colors are per-triangle,
// matching the face attributes carried by the original asset pipeline.
// A removed triangle has all three Indices set to InvalidIndex; a
// removed vertex is set to InvalidVertex. Both kinds of holes are
// closed by RemoveUnusedVertices and the triangle-compaction pass.
type Mesh struct {
	Name string

	Vertices []vecmath.Vec3
	Indices  []uint32
	Normals  []vecmath.Vec3
	Colors   []vecmath.Vec3

	MaterialID int
}

// NumVertices returns len(Vertices).
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// NumTriangles returns the triangle count implied by Indices.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// TriangleIndices returns the three vertex indices of triangle tri.
func (m *Mesh) TriangleIndices(tri int) (a, b, c uint32) {
	base := tri * 3
	return m.Indices[base], m.Indices[base+1], m.Indices[base+2]
}

// TriangleVertices returns the three vertex positions of triangle tri.
func (m *Mesh) TriangleVertices(tri int) (a, b, c vecmath.Vec3) {
	i0, i1, i2 := m.TriangleIndices(tri)
	return m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
}

// TriangleEdges returns the three canonical edges of triangle tri.
func (m *Mesh) TriangleEdges(tri int) (Edge, Edge, Edge) {
	i0, i1, i2 := m.TriangleIndices(tri)
	return NewEdge(i0, i1), NewEdge(i1, i2), NewEdge(i2, i0)
}

// IsTriangleRemoved reports whether triangle tri has been deleted.
func (m *Mesh) IsTriangleRemoved(tri int) bool {
	a, _, _ := m.TriangleIndices(tri)
	return a == InvalidIndex
}

// IsVertexRemoved reports whether vertex v has been deleted.
func (m *Mesh) IsVertexRemoved(v uint32) bool {
	return m.Vertices[v] == InvalidVertex
}

// RemoveTriangle marks triangle tri as removed.
func (m *Mesh) RemoveTriangle(tri int) {
	base := tri * 3
	m.Indices[base] = InvalidIndex
	m.Indices[base+1] = InvalidIndex
	m.Indices[base+2] = InvalidIndex
}

// ComputeNormals recomputes the per-triangle Normals slice from the
// current vertex positions. Degenerate triangles get the zero normal.
func (m *Mesh) ComputeNormals() {
	n := m.NumTriangles()
	if cap(m.Normals) < n {
		m.Normals = make([]vecmath.Vec3, n)
	} else {
		m.Normals = m.Normals[:n]
	}
	for tri := 0; tri < n; tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		a, b, c := m.TriangleVertices(tri)
		m.Normals[tri] = b.Sub(a).Cross(c.Sub(a)).Normalize()
	}
}

// Bounds returns the axis-aligned bounding box of all live vertices.
func (m *Mesh) Bounds() vecmath.AABB {
	box := vecmath.EmptyAABB()
	for _, v := range m.Vertices {
		if v == InvalidVertex {
			continue
		}
		box = box.Encapsulate(v)
	}
	return box
}
