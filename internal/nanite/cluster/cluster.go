// Package cluster defines the triangle-subset unit that the
// partitioner, grouper, and hierarchy builder all operate on.
package cluster

import (
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// Cluster is an ordered subset of a mesh's triangles, with a
// precomputed bounding box. Following the arena+indices
// re-architecture, a Cluster holds no pointer into the Mesh it was
// built from; it is identified by the LOD index of its owning mesh,
// and the caller looks that mesh up in the hierarchy's arena before
// dereferencing Triangles.
type Cluster struct {
	LODIndex  int
	Triangles []int
	Bounds    vecmath.AABB
}

// New computes a Cluster's bounds by folding the AABB over every
// vertex referenced by the given triangles of m.
func New(lodIndex int, m *mesh.Mesh, triangles []int) Cluster {
	bounds := vecmath.EmptyAABB()
	for _, tri := range triangles {
		a, b, c := m.TriangleVertices(tri)
		bounds = bounds.Encapsulate(a).Encapsulate(b).Encapsulate(c)
	}
	return Cluster{
		LODIndex:  lodIndex,
		Triangles: append([]int(nil), triangles...),
		Bounds:    bounds,
	}
}

// Size returns the number of triangles in the cluster.
func (c Cluster) Size() int {
	return len(c.Triangles)
}
