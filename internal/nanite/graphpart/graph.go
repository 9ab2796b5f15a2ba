// Package graphpart is the abstract k-way graph partitioning
// capability described in spec.md's external-interfaces section: CSR
// adjacency, one balance constraint, vertex/edge weights, and an
// imbalance bound. No library in the example pack wraps METIS or an
// equivalent solver, so Default implements a balanced greedy
// region-growing heuristic behind the same interface a real METIS
// binding would satisfy.
package graphpart

import "errors"

// ErrPartitionFailed is returned when the partitioner cannot produce
// an assignment, mirroring a non-OK status from an external solver.
var ErrPartitionFailed = errors.New("graphpart: partition failed")

// Graph is a CSR (compressed sparse row) adjacency graph with one
// balance constraint (ncon=1): Xadj has N+1 entries, Adjncy lists each
// vertex's neighbors contiguously, VertexWeight and EdgeWeight are
// parallel to Adjncy's vertex count and entry count respectively and
// may be nil to mean uniform weight 1.
type Graph struct {
	Xadj         []int32
	Adjncy       []int32
	VertexWeight []int32
	EdgeWeight   []int32
}

// NumVertices returns N, the vertex count implied by Xadj.
func (g *Graph) NumVertices() int {
	if len(g.Xadj) == 0 {
		return 0
	}
	return len(g.Xadj) - 1
}

// Neighbors returns the adjacency slice for vertex v.
func (g *Graph) Neighbors(v int) []int32 {
	return g.Adjncy[g.Xadj[v]:g.Xadj[v+1]]
}

// EdgeWeights returns the edge-weight slice parallel to Neighbors(v).
func (g *Graph) EdgeWeights(v int) []int32 {
	if g.EdgeWeight == nil {
		return nil
	}
	return g.EdgeWeight[g.Xadj[v]:g.Xadj[v+1]]
}

// weightOf returns the vertex weight of v, defaulting to 1 when
// VertexWeight is nil.
func (g *Graph) weightOf(v int) int32 {
	if g.VertexWeight == nil {
		return 1
	}
	return g.VertexWeight[v]
}
