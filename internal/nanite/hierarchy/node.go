// Package hierarchy implements the LOD DAG builder (spec.md §4.5):
// the outer loop that partitions leaf clusters, then repeatedly
// groups, simplifies, and re-splits until a single root cluster
// remains.
package hierarchy

import (
	"github.com/google/uuid"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/cluster"
)

// NaniteNode is a node in the LOD DAG. Following the arena+indices
// re-architecture (spec.md §9), a node holds no parent back-pointer
// and no pointer to its children's structs: ChildIndices names
// positions in the node list one LOD level finer, which the caller
// (NaniteMesh) looks up. A node with no children is a leaf; a node
// that is not referenced as a child by any node in the next-coarser
// level is a root.
type NaniteNode struct {
	ID           uuid.UUID
	Cluster      cluster.Cluster
	ChildIndices []int
}

// NewNode creates a node from a finalized cluster with no children
// (a leaf).
func NewNode(c cluster.Cluster) NaniteNode {
	return NaniteNode{ID: uuid.New(), Cluster: c}
}

// NewParent creates a node from a finalized cluster that adopts the
// given child indices (positions in the next-finer LOD's node list).
func NewParent(c cluster.Cluster, childIndices []int) NaniteNode {
	return NaniteNode{ID: uuid.New(), Cluster: c, ChildIndices: append([]int(nil), childIndices...)}
}

// IsLeaf reports whether n has no children.
func (n NaniteNode) IsLeaf() bool {
	return len(n.ChildIndices) == 0
}
