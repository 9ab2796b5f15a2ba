// Package collapsequeue is the keyed priority structure that ranks
// candidate edge collapses for the QEM simplifier: insert, erase by
// edge, and peek-min, backed by a container/heap indexed by edge so
// erase and reinsertion are both logarithmic.
package collapsequeue

import (
	"container/heap"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
)

// Builder composes the Collapse for an edge from the caller's mesh,
// quadric snapshot, and fixed-vertex set. It reports ok=false when
// both endpoints of edge are fixed, in which case Insert is a no-op.
type Builder func(edge mesh.Edge, phase int) (c *Collapse, ok bool)

// Queue is a keyed priority queue over Collapses, ordered ascending by
// (phase, error, length, edge). The edge-to-element map is kept
// consistent with the heap on every mutation; no edge key ever points
// at a stale handle.
type Queue struct {
	heap   collapseHeap
	byEdge map[mesh.Edge]*Collapse
	build  Builder
}

// New creates an empty queue that uses build to compose collapses
// from bare edges on Insert.
func New(build Builder) *Queue {
	return &Queue{build: build, byEdge: make(map[mesh.Edge]*Collapse)}
}

// Reserve pre-sizes the internal structures for an expected element
// count, avoiding rehash churn during the simplifier's initial fill.
func (q *Queue) Reserve(n int) {
	if n <= 0 {
		return
	}
	grown := make(map[mesh.Edge]*Collapse, n)
	for k, v := range q.byEdge {
		grown[k] = v
	}
	q.byEdge = grown
	if cap(q.heap) < n {
		grownHeap := make(collapseHeap, len(q.heap), n)
		copy(grownHeap, q.heap)
		q.heap = grownHeap
	}
}

// Insert composes a Collapse for edge via the queue's Builder and
// inserts it. It is a no-op if the builder reports both endpoints
// fixed. Returns whether an element was inserted.
func (q *Queue) Insert(edge mesh.Edge, phase int) bool {
	c, ok := q.build(edge, phase)
	if !ok {
		return false
	}
	return q.InsertCollapse(c)
}

// InsertCollapse inserts a pre-built Collapse, recording the
// edge-to-element mapping. A prior element with the same edge key, if
// any, is evicted first so no edge maps to more than one heap slot.
func (q *Queue) InsertCollapse(c *Collapse) bool {
	if old, exists := q.byEdge[c.Edge]; exists {
		heap.Remove(&q.heap, old.index)
	}
	heap.Push(&q.heap, c)
	q.byEdge[c.Edge] = c
	return true
}

// Erase removes the element keyed by edge, returning its phase, or -1
// if no element with that edge is present.
func (q *Queue) Erase(edge mesh.Edge) int {
	c, ok := q.byEdge[edge]
	if !ok {
		return -1
	}
	heap.Remove(&q.heap, c.index)
	delete(q.byEdge, edge)
	return c.Phase
}

// PeekMin returns the current minimum element without removing it.
func (q *Queue) PeekMin() (*Collapse, bool) {
	if len(q.heap) == 0 {
		return nil, false
	}
	return q.heap[0], true
}

// Size returns the number of elements currently queued.
func (q *Queue) Size() int {
	return len(q.heap)
}
