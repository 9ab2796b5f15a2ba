package mesh

import "sort"

// ExtractUnconnectedMeshes splits m into its connected components under
// triangle-shares-an-edge adjacency, returning one Mesh per component
// sorted by descending vertex count. Two pieces touching at a single
// vertex ("bowtie" topology) are not edge-connected and come back as
// separate meshes. The input mesh is left untouched. A mesh with a
// single component returns a one-element slice holding an equivalent
// copy.
func (m *Mesh) ExtractUnconnectedMeshes() []*Mesh {
	n := m.NumTriangles()
	if n == 0 {
		return nil
	}

	et := m.buildEdgeTriangleMap()
	visited := make([]bool, n)
	components := make([][]int, 0)

	for start := 0; start < n; start++ {
		if visited[start] || m.IsTriangleRemoved(start) {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var comp []int

		for len(queue) > 0 {
			tri := queue[0]
			queue = queue[1:]
			comp = append(comp, tri)

			e0, e1, e2 := m.TriangleEdges(tri)
			for _, e := range [3]Edge{e0, e1, e2} {
				for _, neighbor := range et[e] {
					if !visited[neighbor] {
						visited[neighbor] = true
						queue = append(queue, neighbor)
					}
				}
			}
		}
		components = append(components, comp)
	}

	meshes := make([]*Mesh, 0, len(components))
	for _, comp := range components {
		meshes = append(meshes, m.submesh(comp))
	}

	sort.SliceStable(meshes, func(i, j int) bool {
		return meshes[i].NumVertices() > meshes[j].NumVertices()
	})
	return meshes
}

// buildEdgeTriangleMap maps each edge to the (non-removed) triangles
// that reference it, mirroring partition.buildAdjacencyGraph's
// edgeToTriangles construction.
func (m *Mesh) buildEdgeTriangleMap() map[Edge][]int {
	et := make(map[Edge][]int)
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		e0, e1, e2 := m.TriangleEdges(tri)
		for _, e := range [3]Edge{e0, e1, e2} {
			et[e] = append(et[e], tri)
		}
	}
	return et
}

// submesh builds a standalone Mesh containing only the given triangle
// indices, with vertices renumbered and compacted.
func (m *Mesh) submesh(triangles []int) *Mesh {
	out := &Mesh{Name: m.Name, MaterialID: m.MaterialID}
	remap := make(map[uint32]uint32)

	for _, tri := range triangles {
		i0, i1, i2 := m.TriangleIndices(tri)
		for _, idx := range [3]uint32{i0, i1, i2} {
			if _, ok := remap[idx]; !ok {
				remap[idx] = uint32(len(out.Vertices))
				out.Vertices = append(out.Vertices, m.Vertices[idx])
			}
		}
		out.Indices = append(out.Indices, remap[i0], remap[i1], remap[i2])
		if tri < len(m.Normals) {
			out.Normals = append(out.Normals, m.Normals[tri])
		}
		if tri < len(m.Colors) {
			out.Colors = append(out.Colors, m.Colors[tri])
		}
	}
	return out
}
