package mesh

import "sort"

// uniqueTriangleKey is a sorted copy of a triangle's three indices,
// used to detect triangles that reference the same three vertices
// regardless of winding.
type uniqueTriangleKey [3]uint32

func keyOf(a, b, c uint32) uniqueTriangleKey {
	k := uniqueTriangleKey{a, b, c}
	sort.Slice(k[:], func(i, j int) bool { return k[i] < k[j] })
	return k
}

// DeduplicateTriangles removes triangles that reference the same three
// vertices as an earlier, still-live triangle. Used by the simplifier's
// post-collapse organize pass, where a run of edge collapses can leave
// two distinct triangle slots describing the same face.
func (m *Mesh) DeduplicateTriangles() {
	seen := make(map[uniqueTriangleKey]bool)
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		a, b, c := m.TriangleIndices(tri)
		k := keyOf(a, b, c)
		if seen[k] {
			m.RemoveTriangle(tri)
			continue
		}
		seen[k] = true
	}
}

// Compact rewrites Indices/Normals/Colors to drop removed triangle
// slots and then removes unreferenced vertices, producing a tightly
// packed mesh with no holes.
func (m *Mesh) Compact() {
	m.CompactWithRemap()
}

// CompactWithRemap does what Compact does and additionally returns the
// old-slot to new-slot map for triangles (-1 for a dropped triangle)
// and vertices (InvalidIndex for a dropped vertex), for callers that
// hold triangle or vertex references into m from before compaction.
func (m *Mesh) CompactWithRemap() (triangleRemap []int, vertexRemap []uint32) {
	newIndices := make([]uint32, 0, len(m.Indices))
	triangleRemap = make([]int, m.NumTriangles())

	hasNormals := len(m.Normals) == m.NumTriangles()
	hasColors := len(m.Colors) == m.NumTriangles()

	keptNormals := m.Normals[:0:0]
	keptColors := m.Colors[:0:0]

	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			triangleRemap[tri] = -1
			continue
		}
		triangleRemap[tri] = len(newIndices) / 3
		i0, i1, i2 := m.TriangleIndices(tri)
		newIndices = append(newIndices, i0, i1, i2)
		if hasNormals {
			keptNormals = append(keptNormals, m.Normals[tri])
		}
		if hasColors {
			keptColors = append(keptColors, m.Colors[tri])
		}
	}

	m.Indices = newIndices
	if hasNormals {
		m.Normals = keptNormals
	}
	if hasColors {
		m.Colors = keptColors
	}

	vertexRemap = m.RemoveUnusedVertices()
	return triangleRemap, vertexRemap
}
