package simplify

import (
	"sort"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

func vec3(p [3]float32) vecmath.Vec3 {
	return vecmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// passesFlipAndDegeneracy implements the flip-and-degeneracy guard
// (spec.md §4.3 step 6): every triangle in updated must keep its
// orientation (dot(oldNormal, newNormal) >= FlipThreshold) and must
// not collapse to near-zero area.
func (s *state) passesFlipAndDegeneracy(updated []int, keep, remove uint32, target [3]float32) bool {
	for _, tri := range updated {
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		p0 := s.substitutedVertex(i0, keep, remove, target)
		p1 := s.substitutedVertex(i1, keep, remove, target)
		p2 := s.substitutedVertex(i2, keep, remove, target)

		a := vec3(p0)
		b := vec3(p1)
		c := vec3(p2)
		cross := b.Sub(a).Cross(c.Sub(a))
		area := cross.Length() * 0.5
		if area < s.opts.MinTriangleArea {
			return false
		}
		newNormal := cross.Normalize()

		if tri >= len(s.mesh.Normals) {
			continue
		}
		oldNormal := s.mesh.Normals[tri]
		if oldNormal.Dot(newNormal) < s.opts.FlipThreshold {
			return false
		}
	}
	return true
}

// passesNonManifold implements the non-manifold guard (spec.md §4.3
// step 7): after substitution, no edge among the updated triangles
// may be shared by more than 2 triangles, and no two updated
// triangles may land on the same three vertices (a doubled face, as
// collapsing any edge of a closed tetrahedron would produce).
func (s *state) passesNonManifold(updated []int, keep, remove uint32) bool {
	usage := make(map[mesh.Edge]int)
	faces := make(map[[3]uint32]bool, len(updated))
	for _, tri := range updated {
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		v0 := resolveVertex(i0, keep, remove)
		v1 := resolveVertex(i1, keep, remove)
		v2 := resolveVertex(i2, keep, remove)

		face := [3]uint32{v0, v1, v2}
		sort.Slice(face[:], func(i, j int) bool { return face[i] < face[j] })
		if faces[face] {
			return false
		}
		faces[face] = true

		usage[mesh.NewEdge(v0, v1)]++
		usage[mesh.NewEdge(v1, v2)]++
		usage[mesh.NewEdge(v2, v0)]++
	}
	for _, count := range usage {
		if count > 2 {
			return false
		}
	}
	return true
}

func resolveVertex(idx, keep, remove uint32) uint32 {
	if idx == remove {
		return keep
	}
	return idx
}
