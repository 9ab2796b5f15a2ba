// Package group implements the cluster grouper (spec.md §4.2):
// partitioning a set of sibling clusters into batches of up to G
// clusters, grouping topologically adjacent clusters together by
// partitioning the cluster-adjacency graph.
package group

import (
	"fmt"
	"math"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/cluster"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/graphpart"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
)

// Group holds the indices into the caller's cluster slice that belong
// to one group.
type Group struct {
	ClusterIndices []int
}

// Groups partitions clusters (all indexing into m) into
// ceil(N/maxSize) groups, exact-balance requested (imbalance 1.0).
// Following the later, all-pairs MergeClusters behavior (SPEC_FULL.md
// Open Questions), every pair of clusters sharing an edge is
// connected, with no cap at exactly-two-clusters-per-edge.
func Groups(m *mesh.Mesh, clusters []cluster.Cluster, maxSize int, p graphpart.Partitioner) ([]Group, error) {
	n := len(clusters)
	if n == 0 {
		return nil, nil
	}
	if maxSize < 2 {
		return nil, fmt.Errorf("group: maxSize must be >= 2, got %d", maxSize)
	}

	k := int(math.Ceil(float64(n) / float64(maxSize)))
	if k <= 1 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return []Group{{ClusterIndices: idx}}, nil
	}

	g := buildClusterAdjacencyGraph(m, clusters)
	result, err := p.Partition(g, graphpart.Options{K: k, UBVec: 1.0})
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}

	groups := make([]Group, k)
	for i := range groups {
		groups[i] = Group{}
	}
	for ci, partID := range result.Part {
		groups[partID].ClusterIndices = append(groups[partID].ClusterIndices, ci)
	}

	out := make([]Group, 0, k)
	for _, grp := range groups {
		if len(grp.ClusterIndices) > 0 {
			out = append(out, grp)
		}
	}
	return out, nil
}

// buildClusterAdjacencyGraph connects every pair of clusters that
// shares an edge, mapping each triangle edge to the owning cluster
// indices (multiplicity suppressed per cluster, per spec.md §4.2
// step 1), then, per the all-pairs MergeClusters resolution, wiring
// every sharing pair rather than only pairs sharing exactly one edge.
func buildClusterAdjacencyGraph(m *mesh.Mesh, clusters []cluster.Cluster) *graphpart.Graph {
	edgeToClusters := make(map[mesh.Edge]map[int]bool)
	for ci, c := range clusters {
		seen := make(map[mesh.Edge]bool)
		for _, tri := range c.Triangles {
			e0, e1, e2 := m.TriangleEdges(tri)
			for _, e := range [3]mesh.Edge{e0, e1, e2} {
				if seen[e] {
					continue
				}
				seen[e] = true
				if edgeToClusters[e] == nil {
					edgeToClusters[e] = make(map[int]bool)
				}
				edgeToClusters[e][ci] = true
			}
		}
	}

	type pair struct{ a, b int }
	shareCount := make(map[pair]int32)
	for _, owners := range edgeToClusters {
		if len(owners) < 2 {
			continue
		}
		ids := make([]int, 0, len(owners))
		for ci := range owners {
			ids = append(ids, ci)
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := ids[i], ids[j]
				if a > b {
					a, b = b, a
				}
				shareCount[pair{a, b}]++
			}
		}
	}

	n := len(clusters)
	adjacency := make([][]int32, n)
	weights := make([][]int32, n)
	for pr, count := range shareCount {
		adjacency[pr.a] = append(adjacency[pr.a], int32(pr.b))
		weights[pr.a] = append(weights[pr.a], count)
		adjacency[pr.b] = append(adjacency[pr.b], int32(pr.a))
		weights[pr.b] = append(weights[pr.b], count)
	}

	xadj := make([]int32, n+1)
	var adjncy, adjwgt []int32
	for ci := 0; ci < n; ci++ {
		xadj[ci] = int32(len(adjncy))
		adjncy = append(adjncy, adjacency[ci]...)
		adjwgt = append(adjwgt, weights[ci]...)
	}
	xadj[n] = int32(len(adjncy))

	return &graphpart.Graph{Xadj: xadj, Adjncy: adjncy, EdgeWeight: adjwgt}
}
