package mesh

// VertexTriangles maps a vertex index to the list of triangle indices
// that currently reference it.
type VertexTriangles map[uint32][]int

// BuildVertexTriangleMap indexes every live triangle by each of its
// three vertices.
func (m *Mesh) BuildVertexTriangleMap() VertexTriangles {
	vt := make(VertexTriangles, len(m.Vertices))
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		i0, i1, i2 := m.TriangleIndices(tri)
		vt[i0] = append(vt[i0], tri)
		vt[i1] = append(vt[i1], tri)
		vt[i2] = append(vt[i2], tri)
	}
	return vt
}

// RemoveTriangleRef deletes tri from vertex v's triangle list.
func (vt VertexTriangles) RemoveTriangleRef(v uint32, tri int) {
	list := vt[v]
	for i, t := range list {
		if t == tri {
			vt[v] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// edgeUsage counts, for every edge in the mesh, how many live
// triangles reference it. An edge used by exactly one triangle lies
// on a boundary.
func (m *Mesh) edgeUsage() map[Edge]int {
	usage := make(map[Edge]int)
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		e0, e1, e2 := m.TriangleEdges(tri)
		usage[e0]++
		usage[e1]++
		usage[e2]++
	}
	return usage
}

// BoundaryVertices returns the set of vertices touched by an edge that
// is used by exactly one live triangle.
func (m *Mesh) BoundaryVertices() map[uint32]bool {
	boundary := make(map[uint32]bool)
	for e, count := range m.edgeUsage() {
		if count == 1 {
			boundary[e.A] = true
			boundary[e.B] = true
		}
	}
	return boundary
}
