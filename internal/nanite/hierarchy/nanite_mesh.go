package hierarchy

import "github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"

// NaniteMesh is the finished LOD artifact: an ordered sequence of LOD
// meshes from finest to coarsest, with a parallel sequence of node
// lists, one per LOD. NaniteMesh exclusively owns both arenas; a
// Cluster's LODIndex and a NaniteNode's ChildIndices are only valid
// relative to this structure.
type NaniteMesh struct {
	LODMeshes []*mesh.Mesh
	NodeLists [][]NaniteNode
	Stats     Stats
}

// RootLOD returns the index of the coarsest LOD level.
func (nm *NaniteMesh) RootLOD() int {
	return len(nm.LODMeshes) - 1
}

// Root returns the single root node at the coarsest level. Panics if
// the mesh has not been finalized (callers only observe a complete
// NaniteMesh).
func (nm *NaniteMesh) Root() NaniteNode {
	root := nm.NodeLists[nm.RootLOD()]
	return root[0]
}

// Stats collects per-level build statistics for observability; it
// changes no invariant of the algorithm, just reports on it.
type Stats struct {
	Levels []LevelStats
}

// LevelStats describes one LOD level's build outcome.
type LevelStats struct {
	LODIndex      int
	TriangleCount int
	ClusterCount  int
	VertexCount   int
}
