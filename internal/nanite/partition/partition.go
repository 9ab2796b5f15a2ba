// Package partition implements the mesh partitioner (spec.md §4.1):
// splitting a mesh, or a subset of its triangles, into K topologically
// contiguous, area-balanced clusters via an abstract k-way graph
// partitioner.
package partition

import (
	"fmt"
	"math"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/cluster"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/graphpart"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
)

// weightScale is the fixed-point encoding factor applied to
// area/length before casting to int32, per the Open Questions
// resolution in SPEC_FULL.md.
const weightScale = 10000.0

// Options configures a partition request.
type Options struct {
	K         int     // target part count, K >= 1
	Imbalance float64 // allowed vertex-weight imbalance ratio, u >= 1.0
}

// Partition splits the triangles of m named by subset (nil means all
// triangles of m) into opts.K clusters. If opts.K == 1 it returns a
// single cluster covering subset without invoking the external
// partitioner. On partitioner failure it returns a nil slice and the
// error, which callers are expected to treat as an empty level rather
// than a fatal condition (spec.md §7, PartitionerFailure).
func Partition(lodIndex int, m *mesh.Mesh, subset []int, opts Options, p graphpart.Partitioner) ([]cluster.Cluster, error) {
	if opts.K <= 0 {
		return nil, fmt.Errorf("partition: invalid K=%d", opts.K)
	}
	triangles := subset
	if triangles == nil {
		triangles = allTriangles(m)
	}
	if len(triangles) == 0 {
		return nil, nil
	}

	if opts.K == 1 {
		return []cluster.Cluster{cluster.New(lodIndex, m, triangles)}, nil
	}

	g, localToGlobal := buildAdjacencyGraph(m, triangles)
	result, err := p.Partition(g, graphpart.Options{K: opts.K, UBVec: opts.Imbalance})
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}

	byPart := make([][]int, opts.K)
	for local, partID := range result.Part {
		byPart[partID] = append(byPart[partID], localToGlobal[local])
	}

	clusters := make([]cluster.Cluster, 0, opts.K)
	for _, tris := range byPart {
		if len(tris) == 0 {
			continue
		}
		clusters = append(clusters, cluster.New(lodIndex, m, tris))
	}
	return clusters, nil
}

func allTriangles(m *mesh.Mesh) []int {
	out := make([]int, 0, m.NumTriangles())
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			out = append(out, tri)
		}
	}
	return out
}

// buildAdjacencyGraph builds the triangle-adjacency CSR graph over
// triangles: two triangles are connected once per shared edge (an
// edge shared by k>2 triangles contributes all k*(k-1)/2 pairs,
// deliberately not assuming manifoldness). Node weights are
// fixed-point-encoded triangle area; edge weights are fixed-point
// encoded shared-edge length. Returns the graph plus a local-index to
// global-triangle-index map.
func buildAdjacencyGraph(m *mesh.Mesh, triangles []int) (*graphpart.Graph, []int) {
	globalToLocal := make(map[int]int32, len(triangles))
	for local, tri := range triangles {
		globalToLocal[tri] = int32(local)
	}

	edgeToTriangles := make(map[mesh.Edge][]int32)
	for local, tri := range triangles {
		e0, e1, e2 := m.TriangleEdges(tri)
		for _, e := range [3]mesh.Edge{e0, e1, e2} {
			edgeToTriangles[e] = append(edgeToTriangles[e], int32(local))
		}
	}

	type pair struct{ a, b int32 }
	edgeWeightByPair := make(map[pair]int32)
	for e, tris := range edgeToTriangles {
		if len(tris) < 2 {
			continue
		}
		w := encodeWeight(edgeLength(m, e))
		for i := 0; i < len(tris); i++ {
			for j := i + 1; j < len(tris); j++ {
				a, b := tris[i], tris[j]
				if a > b {
					a, b = b, a
				}
				key := pair{a, b}
				if existing, ok := edgeWeightByPair[key]; !ok || w > existing {
					edgeWeightByPair[key] = w
				}
			}
		}
	}

	adjacency := make([][]int32, len(triangles))
	adjacencyWeights := make([][]int32, len(triangles))
	for pr, w := range edgeWeightByPair {
		adjacency[pr.a] = append(adjacency[pr.a], pr.b)
		adjacencyWeights[pr.a] = append(adjacencyWeights[pr.a], w)
		adjacency[pr.b] = append(adjacency[pr.b], pr.a)
		adjacencyWeights[pr.b] = append(adjacencyWeights[pr.b], w)
	}

	xadj := make([]int32, len(triangles)+1)
	var adjncy, adjwgt []int32
	vwgt := make([]int32, len(triangles))

	for local, tri := range triangles {
		xadj[local] = int32(len(adjncy))
		adjncy = append(adjncy, adjacency[local]...)
		adjwgt = append(adjwgt, adjacencyWeights[local]...)
		vwgt[local] = encodeWeight(triangleArea(m, tri))
	}
	xadj[len(triangles)] = int32(len(adjncy))

	return &graphpart.Graph{
		Xadj:         xadj,
		Adjncy:       adjncy,
		VertexWeight: vwgt,
		EdgeWeight:   adjwgt,
	}, triangles
}

// encodeWeight applies the fixed-point encoding w = round(w*10000),
// clamped to [1, math.MaxInt32] so zero-length edges and degenerate
// triangles never produce a zero or negative weight.
func encodeWeight(w float32) int32 {
	scaled := math.Round(float64(w) * weightScale)
	if scaled < 1 {
		return 1
	}
	if scaled > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(scaled)
}

func triangleArea(m *mesh.Mesh, tri int) float32 {
	a, b, c := m.TriangleVertices(tri)
	return b.Sub(a).Cross(c.Sub(a)).Length() * 0.5
}

func edgeLength(m *mesh.Mesh, e mesh.Edge) float32 {
	return m.Vertices[e.A].Distance(m.Vertices[e.B])
}
