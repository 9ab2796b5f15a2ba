package mesh

import "github.com/ashgrove-tools/nanite-lod/pkg/vecmath"

// MergeDuplicatedVertices coalesces boundary vertices (those incident
// to an edge used by exactly one triangle) within eps of each other,
// skipping a pairing that would duplicate an edge already present in
// the mesh. It repeats until no pair qualifies, then closes any
// remaining one-ring boundary polygon by fan triangulation. Interior
// vertices are never merged, so an already-stitched mesh is left
// topologically unchanged.
func (m *Mesh) MergeDuplicatedVertices(eps float32) {
	if eps <= 0 {
		return
	}
	for m.mergeBoundaryPass(eps) {
	}
	m.closeBoundaryLoops()
}

// mergeBoundaryPass performs one fixed-point iteration of boundary
// vertex welding, returning whether any merge happened.
func (m *Mesh) mergeBoundaryPass(eps float32) bool {
	boundary := m.BoundaryVertices()
	if len(boundary) < 2 {
		return false
	}
	existingEdges := m.edgeUsage()

	ids := make([]uint32, 0, len(boundary))
	for v := range boundary {
		ids = append(ids, v)
	}

	remap := make(map[uint32]uint32)
	merged := false

	for i := 0; i < len(ids); i++ {
		a := ids[i]
		if _, done := remap[a]; done {
			continue
		}
		if m.Vertices[a] == InvalidVertex {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b := ids[j]
			if _, done := remap[b]; done {
				continue
			}
			if m.Vertices[b] == InvalidVertex {
				continue
			}
			if a == b || m.Vertices[a].Distance(m.Vertices[b]) > eps {
				continue
			}
			if existingEdges[NewEdge(a, b)] > 0 {
				// Merging would collapse an edge that already connects
				// these two vertices through a live triangle.
				continue
			}
			remap[b] = a
			merged = true
		}
	}

	if !merged {
		return false
	}

	resolve := func(v uint32) uint32 {
		for {
			if to, ok := remap[v]; ok {
				v = to
				continue
			}
			return v
		}
	}

	for i, idx := range m.Indices {
		if idx == InvalidIndex {
			continue
		}
		m.Indices[i] = resolve(idx)
	}

	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		a, b, c := m.TriangleIndices(tri)
		if a == b || b == c || a == c {
			m.RemoveTriangle(tri)
		}
	}

	return true
}

// closeBoundaryLoops finds any remaining boundary edge loops and
// closes each by fan triangulation from its first vertex.
func (m *Mesh) closeBoundaryLoops() {
	usage := m.edgeUsage()
	adjacency := make(map[uint32][]uint32)
	for e, count := range usage {
		if count != 1 {
			continue
		}
		adjacency[e.A] = append(adjacency[e.A], e.B)
		adjacency[e.B] = append(adjacency[e.B], e.A)
	}

	visited := make(map[uint32]bool)
	for start := range adjacency {
		if visited[start] || len(adjacency[start]) != 2 {
			continue
		}
		loop := walkBoundaryLoop(start, adjacency, visited)
		if len(loop) < 3 {
			continue
		}
		m.fanTriangulate(loop)
	}
}

// walkBoundaryLoop follows boundary edges from start until it returns
// to start, marking every visited vertex. Returns nil if the boundary
// graph at start is not a simple closed loop.
func walkBoundaryLoop(start uint32, adjacency map[uint32][]uint32, visited map[uint32]bool) []uint32 {
	loop := []uint32{start}
	visited[start] = true
	prev := start
	cur := adjacency[start][0]

	for cur != start {
		if visited[cur] || len(adjacency[cur]) != 2 {
			return nil
		}
		visited[cur] = true
		loop = append(loop, cur)

		next := adjacency[cur][0]
		if next == prev {
			next = adjacency[cur][1]
		}
		prev = cur
		cur = next

		if len(loop) > len(adjacency)+1 {
			return nil
		}
	}
	return loop
}

// fanTriangulate closes a boundary loop by adding triangles fanning
// out from loop[0]. The new triangles carry the zero normal/color
// until the caller recomputes them.
func (m *Mesh) fanTriangulate(loop []uint32) {
	for i := 1; i < len(loop)-1; i++ {
		m.Indices = append(m.Indices, loop[0], loop[i], loop[i+1])
		if len(m.Normals) == m.NumTriangles()-1 {
			m.Normals = append(m.Normals, vecmath.Vec3{})
		}
		if len(m.Colors) == m.NumTriangles()-1 {
			m.Colors = append(m.Colors, vecmath.Vec3{})
		}
	}
}

// RemoveUnusedVertices drops every vertex with no referencing live
// triangle, compacting Vertices and rewriting Indices to match. It
// returns the old-index to new-index map (InvalidIndex for a dropped
// vertex) for callers that must translate references held elsewhere.
func (m *Mesh) RemoveUnusedVertices() []uint32 {
	used := make([]bool, len(m.Vertices))
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		i0, i1, i2 := m.TriangleIndices(tri)
		used[i0] = true
		used[i1] = true
		used[i2] = true
	}

	newIndex := make([]uint32, len(m.Vertices))
	compacted := m.Vertices[:0:0]
	for vi, keep := range used {
		if keep && m.Vertices[vi] != InvalidVertex {
			newIndex[vi] = uint32(len(compacted))
			compacted = append(compacted, m.Vertices[vi])
		} else {
			newIndex[vi] = InvalidIndex
		}
	}
	m.Vertices = compacted

	for i, idx := range m.Indices {
		if idx == InvalidIndex {
			continue
		}
		m.Indices[i] = newIndex[idx]
	}
	return newIndex
}
