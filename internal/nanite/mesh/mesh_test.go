package mesh

import (
	"testing"

	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

func quad() *Mesh {
	// Two triangles forming a unit quad in the XY plane.
	return &Mesh{
		Vertices: []vecmath.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestTriangleAccessors(t *testing.T) {
	m := quad()
	if got := m.NumTriangles(); got != 2 {
		t.Fatalf("NumTriangles() = %d, want 2", got)
	}
	a, b, c := m.TriangleIndices(1)
	if a != 0 || b != 2 || c != 3 {
		t.Errorf("TriangleIndices(1) = %d,%d,%d, want 0,2,3", a, b, c)
	}
	e0, e1, e2 := m.TriangleEdges(0)
	if e0 != NewEdge(0, 1) || e1 != NewEdge(1, 2) || e2 != NewEdge(2, 0) {
		t.Errorf("TriangleEdges(0) = %v,%v,%v", e0, e1, e2)
	}
}

func TestRemoveTriangle(t *testing.T) {
	m := quad()
	m.RemoveTriangle(0)
	if !m.IsTriangleRemoved(0) {
		t.Fatal("triangle 0 should be removed")
	}
	if m.IsTriangleRemoved(1) {
		t.Fatal("triangle 1 should still be live")
	}
}

func TestComputeNormals(t *testing.T) {
	m := quad()
	m.ComputeNormals()
	if len(m.Normals) != 2 {
		t.Fatalf("expected 2 normals, got %d", len(m.Normals))
	}
	want := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	if !m.Normals[0].Equal(want) {
		t.Errorf("Normals[0] = %v, want %v", m.Normals[0], want)
	}
}

func TestBoundaryVertices(t *testing.T) {
	m := quad()
	boundary := m.BoundaryVertices()
	// Every vertex of a two-triangle quad lies on the outer boundary;
	// only the diagonal edge (0,2) is shared by both triangles.
	for _, v := range []uint32{0, 1, 2, 3} {
		if !boundary[v] {
			t.Errorf("expected vertex %d to be on boundary", v)
		}
	}
}

func TestMergeDuplicatedVertices(t *testing.T) {
	m := &Mesh{
		Vertices: []vecmath.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 1e-7, Y: 1e-7, Z: 0}, // near-duplicate of vertex 0
		},
		Indices: []uint32{0, 1, 2, 3, 1, 2},
	}
	m.MergeDuplicatedVertices(1e-4)

	a3, _, _ := m.TriangleIndices(1)
	a0, _, _ := m.TriangleIndices(0)
	if a3 != a0 {
		t.Errorf("expected vertex 3 to merge onto vertex 0's representative, got %d vs %d", a3, a0)
	}
}

func TestRemoveUnusedVertices(t *testing.T) {
	m := quad()
	m.RemoveTriangle(1) // drops references to vertex 3
	m.RemoveUnusedVertices()

	if m.NumVertices() != 3 {
		t.Fatalf("expected 3 remaining vertices, got %d", m.NumVertices())
	}
	a, b, c := m.TriangleIndices(0)
	if int(a) >= m.NumVertices() || int(b) >= m.NumVertices() || int(c) >= m.NumVertices() {
		t.Fatalf("triangle 0 references out-of-range vertex after compaction: %d,%d,%d", a, b, c)
	}
}

func TestExtractUnconnectedMeshes(t *testing.T) {
	// A 2-triangle quad (4 verts) plus an isolated triangle (3 verts),
	// sharing no vertices.
	m := &Mesh{
		Vertices: []vecmath.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 10, Y: 10, Z: 0}, {X: 11, Y: 10, Z: 0}, {X: 11, Y: 11, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6},
	}

	parts := m.ExtractUnconnectedMeshes()
	if len(parts) != 2 {
		t.Fatalf("expected 2 components, got %d", len(parts))
	}
	if parts[0].NumVertices() != 4 || parts[1].NumVertices() != 3 {
		t.Fatalf("expected components sorted by descending vertex count, got %d then %d",
			parts[0].NumVertices(), parts[1].NumVertices())
	}
}

// TestExtractUnconnectedMeshesBowtie checks that two triangle fans
// touching at exactly one shared vertex (no shared edge) are treated
// as separate components, not fused by vertex-only adjacency.
func TestExtractUnconnectedMeshesBowtie(t *testing.T) {
	m := &Mesh{
		Vertices: []vecmath.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
			{X: -1, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 3, 4},
	}

	parts := m.ExtractUnconnectedMeshes()
	if len(parts) != 2 {
		t.Fatalf("expected 2 components for triangles sharing only a vertex, got %d", len(parts))
	}
	for _, p := range parts {
		if p.NumVertices() != 3 || p.NumTriangles() != 1 {
			t.Fatalf("expected each component to be a lone triangle, got %d verts %d tris",
				p.NumVertices(), p.NumTriangles())
		}
	}
}

func TestDeduplicateTriangles(t *testing.T) {
	m := &Mesh{
		Vertices: []vecmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		Indices:  []uint32{0, 1, 2, 1, 2, 0},
	}
	m.DeduplicateTriangles()
	live := 0
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("expected 1 live triangle after dedup, got %d", live)
	}
}

func TestEdgeCanonicalization(t *testing.T) {
	if NewEdge(5, 2) != NewEdge(2, 5) {
		t.Fatal("NewEdge should canonicalize regardless of argument order")
	}
	e := NewEdge(2, 5)
	if e.Other(2) != 5 || e.Other(5) != 2 {
		t.Errorf("Edge.Other returned wrong endpoint")
	}
}
