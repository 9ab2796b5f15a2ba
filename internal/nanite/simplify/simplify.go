// Package simplify implements the priority-queue-driven QEM
// edge-collapse simplifier (spec.md §4.3): reduces a mesh to a target
// triangle count while preserving orientation and manifoldness.
package simplify

import (
	"math"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/collapsequeue"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/quadric"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// Options configures a simplification run. The zero value is not
// valid; use DefaultOptions.
type Options struct {
	// FlipThreshold is the minimum dot(oldNormal, newNormal) to accept
	// a collapse. The source's empirical default is 0.1, stricter than
	// the mathematically natural 0.0 to avoid near-degenerate slivers.
	FlipThreshold float32
	// MinTriangleArea rejects collapses that would leave a
	// near-degenerate triangle behind.
	MinTriangleArea float32
	// Organize requests sentinel removal and triangle deduplication on
	// the output. When false, the working copy is returned with
	// INVALID_VERTEX/INVALID_TRIANGLE sentinels in place so triangle
	// indices stay stable, as the hierarchy builder requires between
	// levels.
	Organize bool
}

// DefaultOptions returns the source's empirical defaults.
func DefaultOptions() Options {
	return Options{
		FlipThreshold:   0.1,
		MinTriangleArea: 1e-6,
		Organize:        true,
	}
}

// Result is the outcome of a simplification run.
type Result struct {
	Mesh               *mesh.Mesh
	ValidTriangleCount int
	// RejectedGuards counts collapses the flip/degeneracy or
	// non-manifold guard turned down, for the caller to log at Debug.
	RejectedGuards int
}

// Simplify reduces m to a working copy with at most target valid
// triangles, iteratively collapsing the lowest-error interior edge.
// m itself is never mutated. Fewer than 3 triangles, or a mesh with
// no interior (non-boundary) edge, is returned unchanged per
// spec.md's DegenerateInput error kind: no error, just a no-op.
func Simplify(m *mesh.Mesh, target int, opts Options) Result {
	work := cloneMesh(m)
	work.ComputeNormals()

	liveTriangles := countLive(work)
	if liveTriangles < 3 {
		return finish(work, opts)
	}

	s := &state{
		mesh:    work,
		opts:    opts,
		quadric: make([]quadric.Quadric, len(work.Vertices)),
		vertTri: work.BuildVertexTriangleMap(),
		fixed:   work.BoundaryVertices(),
	}
	s.validTriangles = liveTriangles
	s.validVertices = work.NumVertices()

	s.initQuadrics()
	s.queue = collapsequeue.New(s.buildCollapse)
	s.queue.Reserve(2*s.countEdges() + 1)
	s.seedQueue()

	s.run(target)

	res := finish(work, opts)
	res.RejectedGuards = s.rejectedGuards
	return res
}

func countLive(m *mesh.Mesh) int {
	valid := 0
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			valid++
		}
	}
	return valid
}

func finish(m *mesh.Mesh, opts Options) Result {
	valid := countLive(m)
	if opts.Organize {
		m.DeduplicateTriangles()
		m.Compact()
		valid = m.NumTriangles()
	}
	return Result{Mesh: m, ValidTriangleCount: valid}
}

func cloneMesh(m *mesh.Mesh) *mesh.Mesh {
	out := &mesh.Mesh{
		Name:       m.Name,
		MaterialID: m.MaterialID,
		Vertices:   append([]vecmath.Vec3(nil), m.Vertices...),
		Indices:    append([]uint32(nil), m.Indices...),
	}
	if m.Normals != nil {
		out.Normals = append([]vecmath.Vec3(nil), m.Normals...)
	}
	if m.Colors != nil {
		out.Colors = append([]vecmath.Vec3(nil), m.Colors...)
	}
	return out
}

// state holds the scratch structures of one simplification run: the
// CollapseQueue and the vertex-to-triangle map are thread-local to
// this invocation, per spec.md §5.
type state struct {
	mesh    *mesh.Mesh
	opts    Options
	quadric []quadric.Quadric
	vertTri mesh.VertexTriangles
	fixed   map[uint32]bool
	queue   *collapsequeue.Queue

	validTriangles int
	validVertices  int
	rejectedGuards int
}

func (s *state) initQuadrics() {
	for tri := 0; tri < s.mesh.NumTriangles(); tri++ {
		if s.mesh.IsTriangleRemoved(tri) {
			continue
		}
		a, b, c := s.mesh.TriangleVertices(tri)
		n, d := quadric.PlaneFromTriangle(a, b, c)
		i0, i1, i2 := s.mesh.TriangleIndices(tri)
		s.quadric[i0].AddPlane(n, d)
		s.quadric[i1].AddPlane(n, d)
		s.quadric[i2].AddPlane(n, d)
	}
}

func (s *state) countEdges() int {
	count := 0
	seen := make(map[mesh.Edge]bool)
	for tri := 0; tri < s.mesh.NumTriangles(); tri++ {
		if s.mesh.IsTriangleRemoved(tri) {
			continue
		}
		e0, e1, e2 := s.mesh.TriangleEdges(tri)
		for _, e := range [3]mesh.Edge{e0, e1, e2} {
			if !seen[e] {
				seen[e] = true
				count++
			}
		}
	}
	return count
}

func (s *state) seedQueue() {
	seen := make(map[mesh.Edge]bool)
	for tri := 0; tri < s.mesh.NumTriangles(); tri++ {
		if s.mesh.IsTriangleRemoved(tri) {
			continue
		}
		e0, e1, e2 := s.mesh.TriangleEdges(tri)
		for _, e := range [3]mesh.Edge{e0, e1, e2} {
			if seen[e] {
				continue
			}
			seen[e] = true
			s.queue.Insert(e, 0)
		}
	}
}

// buildCollapse is the collapsequeue.Builder for this run: composes a
// Collapse from the current quadric snapshot, vertex positions, and
// fixed set, per spec.md §4.3's "Collapse computation for edge (a,b)".
func (s *state) buildCollapse(edge mesh.Edge, phase int) (*collapsequeue.Collapse, bool) {
	a, b := edge.A, edge.B
	fixA, fixB := s.fixed[a], s.fixed[b]
	if fixA && fixB {
		return nil, false
	}

	qab := s.quadric[a].Add(s.quadric[b])
	target := s.optimalPosition(qab, a, b, fixA, fixB)

	return &collapsequeue.Collapse{
		Edge:     edge,
		Position: [3]float32{target.X, target.Y, target.Z},
		Error:    qab.Evaluate(target),
		Length:   s.mesh.Vertices[a].Distance(s.mesh.Vertices[b]),
		FixA:     fixA,
		FixB:     fixB,
		Phase:    phase,
	}, true
}

// optimalPosition implements the branching order from
// original_source's Collapse::FindOptimalPosition: fixed-A first,
// then fixed-B, then the invertible solve, then the midpoint
// fallback.
func (s *state) optimalPosition(qab quadric.Quadric, a, b uint32, fixA, fixB bool) vecmath.Vec3 {
	switch {
	case fixA:
		return s.mesh.Vertices[a]
	case fixB:
		return s.mesh.Vertices[b]
	}

	upper := qab.Q.Upper3x3()
	det := upper.Determinant()
	if math.Abs(float64(det)) > 1e-6 {
		rhs := vecmath.Vec3{X: -qab.Q.At(0, 3), Y: -qab.Q.At(1, 3), Z: -qab.Q.At(2, 3)}
		return upper.Solve(rhs, det)
	}
	return s.mesh.Vertices[a].Add(s.mesh.Vertices[b]).Scale(0.5)
}
