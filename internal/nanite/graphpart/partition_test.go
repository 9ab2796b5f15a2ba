package graphpart

import "testing"

// chain builds a CSR graph of n vertices in a path 0-1-2-...-(n-1),
// uniform weights.
func chain(n int) *Graph {
	xadj := make([]int32, n+1)
	var adjncy []int32
	for v := 0; v < n; v++ {
		xadj[v] = int32(len(adjncy))
		if v > 0 {
			adjncy = append(adjncy, int32(v-1))
		}
		if v < n-1 {
			adjncy = append(adjncy, int32(v+1))
		}
	}
	xadj[n] = int32(len(adjncy))
	return &Graph{Xadj: xadj, Adjncy: adjncy}
}

func TestPartitionK1(t *testing.T) {
	g := chain(10)
	res, err := Default{}.Partition(g, Options{K: 1, UBVec: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range res.Part {
		if p != 0 {
			t.Fatalf("expected all vertices in part 0, got %d", p)
		}
	}
}

func TestPartitionCoversAllVertices(t *testing.T) {
	g := chain(100)
	res, err := Default{}.Partition(g, Options{K: 5, UBVec: 1.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Part) != 100 {
		t.Fatalf("Part length = %d, want 100", len(res.Part))
	}
	for _, p := range res.Part {
		if p < 0 || p >= 5 {
			t.Fatalf("part id %d out of range [0,5)", p)
		}
	}
}

func TestPartitionBalance(t *testing.T) {
	g := chain(1000)
	res, err := Default{}.Partition(g, Options{K: 10, UBVec: 1.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := make([]int, 10)
	for _, p := range res.Part {
		counts[p]++
	}
	for _, c := range counts {
		if c < 50 || c > 150 {
			t.Errorf("part size %d outside plausible balanced range", c)
		}
	}
}

func TestPartitionZeroKFails(t *testing.T) {
	g := chain(10)
	if _, err := (Default{}).Partition(g, Options{K: 0, UBVec: 1.0}); err == nil {
		t.Fatal("expected error for K=0")
	}
}

func TestCutWeightZeroForSinglePart(t *testing.T) {
	g := chain(10)
	res, err := Default{}.Partition(g, Options{K: 1, UBVec: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cut != 0 {
		t.Errorf("Cut = %d, want 0 when K=1", res.Cut)
	}
}
