package simplify

import (
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/collapsequeue"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/quadric"
)

// commit applies an accepted collapse, following spec.md §4.3's
// lettered commit steps in order.
func (s *state) commit(best *collapsequeue.Collapse, keep, remove uint32, removed, updated []int) {
	target := vec3(best.Position)

	// a. Decrement valid-vertex/triangle counts.
	s.validVertices--
	s.validTriangles -= len(removed) // asserted == 2 by the caller

	// b. For every triangle touching remove, drop every queue entry on
	// an edge of that triangle.
	for _, tri := range s.vertTri[remove] {
		e0, e1, e2 := s.mesh.TriangleEdges(tri)
		s.queue.Erase(e0)
		s.queue.Erase(e1)
		s.queue.Erase(e2)
	}

	// d. Subtract old face quadrics over updatedAll (removed + updated)
	// before the vertex/triangle arrays are mutated.
	updatedAll := append(append([]int(nil), removed...), updated...)
	for _, tri := range updatedAll {
		a, b, c := s.mesh.TriangleVertices(tri)
		n, d := quadric.PlaneFromTriangle(a, b, c)
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		s.quadric[i0].RemovePlane(n, d)
		s.quadric[i1].RemovePlane(n, d)
		s.quadric[i2].RemovePlane(n, d)
	}

	// c. Merge vertToTri[remove] into vertToTri[keep]; drop removed
	// triangles from all three endpoints' entries; drop vertToTri[remove].
	merged := unionInts(s.vertTri[keep], s.vertTri[remove])
	merged = subtractInts(merged, removed)
	s.vertTri[keep] = merged
	delete(s.vertTri, remove)
	for _, tri := range removed {
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		s.vertTri.RemoveTriangleRef(i0, tri)
		s.vertTri.RemoveTriangleRef(i1, tri)
		s.vertTri.RemoveTriangleRef(i2, tri)
	}

	// e. Mutate vertex array.
	s.mesh.Vertices[keep] = target
	s.mesh.Vertices[remove] = mesh.InvalidVertex

	// f. Rewrite remove -> keep in every triangle that referenced remove.
	for _, tri := range updated {
		base := tri * 3
		for k := 0; k < 3; k++ {
			if s.mesh.Indices[base+k] == remove {
				s.mesh.Indices[base+k] = keep
			}
		}
	}

	// g. Overwrite removed triangles with the sentinel.
	for _, tri := range removed {
		s.mesh.RemoveTriangle(tri)
	}

	// h. Recompute normals for updated triangles.
	for _, tri := range updated {
		a, b, c := s.mesh.TriangleVertices(tri)
		n, _ := quadric.PlaneFromTriangle(a, b, c)
		if tri < len(s.mesh.Normals) {
			s.mesh.Normals[tri] = n
		}
	}

	// i. Add new face quadrics for the post-collapse state.
	for _, tri := range updated {
		a, b, c := s.mesh.TriangleVertices(tri)
		n, d := quadric.PlaneFromTriangle(a, b, c)
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		s.quadric[i0].AddPlane(n, d)
		s.quadric[i1].AddPlane(n, d)
		s.quadric[i2].AddPlane(n, d)
	}

	// j. Collect affected edges and reinsert whatever was still queued,
	// preserving phase.
	s.reinsertAffected(keep, updated)
}

// reinsertAffected gathers every edge of every triangle incident to
// any vertex of any triangle in updated (which, post-mutation, all
// reference keep or one of its neighbors), erases any queue entry on
// that edge to recover its phase, and reinserts it if it was present.
func (s *state) reinsertAffected(keep uint32, updated []int) {
	touchedVerts := make(map[uint32]bool)
	touchedVerts[keep] = true
	for _, tri := range updated {
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		touchedVerts[i0] = true
		touchedVerts[i1] = true
		touchedVerts[i2] = true
	}

	affected := make(map[mesh.Edge]bool)
	for v := range touchedVerts {
		for _, tri := range s.vertTri[v] {
			if s.mesh.IsTriangleRemoved(tri) {
				continue
			}
			e0, e1, e2 := s.mesh.TriangleEdges(tri)
			affected[e0] = true
			affected[e1] = true
			affected[e2] = true
		}
	}

	for e := range affected {
		phase := s.queue.Erase(e)
		if phase < 0 {
			continue
		}
		s.queue.Insert(e, phase)
	}
}
