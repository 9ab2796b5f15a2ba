package partition

import (
	"testing"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/graphpart"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// grid builds an n x n triangulated quad mesh (2*n*n triangles).
func grid(n int) *mesh.Mesh {
	m := &mesh.Mesh{}
	idx := func(x, y int) uint32 { return uint32(y*(n+1) + x) }
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.Vertices = append(m.Vertices, vecmath.Vec3{X: float32(x), Y: float32(y), Z: 0})
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}

func TestPartitionK1ReturnsSingleCluster(t *testing.T) {
	m := grid(4)
	clusters, err := Partition(0, m, nil, Options{K: 1, Imbalance: 1.0}, graphpart.Default{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Size() != m.NumTriangles() {
		t.Errorf("cluster size = %d, want %d", clusters[0].Size(), m.NumTriangles())
	}
}

func TestPartitionCoversAllTriangles(t *testing.T) {
	m := grid(10)
	clusters, err := Partition(0, m, nil, Options{K: 8, Imbalance: 1.1}, graphpart.Default{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for _, c := range clusters {
		for _, tri := range c.Triangles {
			if seen[tri] {
				t.Fatalf("triangle %d assigned to more than one cluster", tri)
			}
			seen[tri] = true
		}
	}
	if len(seen) != m.NumTriangles() {
		t.Fatalf("covered %d triangles, want %d", len(seen), m.NumTriangles())
	}
}

func TestPartitionClusterBoundsEnclosesTriangles(t *testing.T) {
	m := grid(6)
	clusters, err := Partition(0, m, nil, Options{K: 4, Imbalance: 1.1}, graphpart.Default{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range clusters {
		for _, tri := range c.Triangles {
			a, b, cc := m.TriangleVertices(tri)
			for _, v := range [3]vecmath.Vec3{a, b, cc} {
				if !c.Bounds.Contains(v) {
					t.Fatalf("cluster bounds do not contain vertex %v", v)
				}
			}
		}
	}
}

func TestPartitionInvalidKErrors(t *testing.T) {
	m := grid(2)
	if _, err := Partition(0, m, nil, Options{K: 0, Imbalance: 1.0}, graphpart.Default{}); err == nil {
		t.Fatal("expected error for K=0")
	}
}

func TestEncodeWeightClampsToPositive(t *testing.T) {
	if w := encodeWeight(0); w != 1 {
		t.Errorf("encodeWeight(0) = %d, want 1", w)
	}
	if w := encodeWeight(1); w != int32(weightScale) {
		t.Errorf("encodeWeight(1) = %d, want %d", w, int32(weightScale))
	}
}
