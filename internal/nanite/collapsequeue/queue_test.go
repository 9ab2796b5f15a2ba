package collapsequeue

import (
	"testing"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
)

func trivialBuilder(fixed map[uint32]bool) Builder {
	return func(edge mesh.Edge, phase int) (*Collapse, bool) {
		if fixed[edge.A] && fixed[edge.B] {
			return nil, false
		}
		return &Collapse{
			Edge:  edge,
			Error: float32(edge.A) + float32(edge.B),
			Phase: phase,
		}, true
	}
}

func TestInsertAndPeekMin(t *testing.T) {
	q := New(trivialBuilder(nil))
	q.Insert(mesh.NewEdge(3, 4), 0)
	q.Insert(mesh.NewEdge(0, 1), 0)
	q.Insert(mesh.NewEdge(1, 2), 0)

	min, ok := q.PeekMin()
	if !ok {
		t.Fatal("expected a minimum element")
	}
	if min.Edge != mesh.NewEdge(0, 1) {
		t.Errorf("PeekMin edge = %v, want (0,1)", min.Edge)
	}
	if q.Size() != 3 {
		t.Errorf("Size() = %d, want 3", q.Size())
	}
}

func TestInsertBothFixedIsNoop(t *testing.T) {
	fixed := map[uint32]bool{0: true, 1: true}
	q := New(trivialBuilder(fixed))

	inserted := q.Insert(mesh.NewEdge(0, 1), 0)
	if inserted {
		t.Fatal("expected no-op insert when both endpoints fixed")
	}
	if q.Size() != 0 {
		t.Errorf("Size() = %d, want 0", q.Size())
	}
}

func TestErase(t *testing.T) {
	q := New(trivialBuilder(nil))
	q.Insert(mesh.NewEdge(0, 1), 2)
	q.Insert(mesh.NewEdge(5, 6), 0)

	phase := q.Erase(mesh.NewEdge(0, 1))
	if phase != 2 {
		t.Errorf("Erase phase = %d, want 2", phase)
	}
	if q.Size() != 1 {
		t.Errorf("Size() = %d, want 1", q.Size())
	}

	if got := q.Erase(mesh.NewEdge(9, 9)); got != -1 {
		t.Errorf("Erase of absent edge = %d, want -1", got)
	}
}

func TestPhaseOrderingBeforeError(t *testing.T) {
	q := New(trivialBuilder(nil))
	// Higher error but lower phase must still come first.
	q.InsertCollapse(&Collapse{Edge: mesh.NewEdge(9, 9), Error: 100, Phase: 0})
	q.InsertCollapse(&Collapse{Edge: mesh.NewEdge(1, 1), Error: 1, Phase: 1})

	min, _ := q.PeekMin()
	if min.Phase != 0 {
		t.Errorf("expected phase-0 element to sort first, got phase %d", min.Phase)
	}
}

func TestReinsertPreservesEdgeUniqueness(t *testing.T) {
	q := New(trivialBuilder(nil))
	q.InsertCollapse(&Collapse{Edge: mesh.NewEdge(0, 1), Error: 5, Phase: 0})
	q.InsertCollapse(&Collapse{Edge: mesh.NewEdge(0, 1), Error: 1, Phase: 1})

	if q.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after reinsert of same edge", q.Size())
	}
	min, _ := q.PeekMin()
	if min.Phase != 1 {
		t.Errorf("expected the latest insert to win, got phase %d", min.Phase)
	}
}

func TestQueueMonotonicity(t *testing.T) {
	q := New(trivialBuilder(nil))
	edges := []mesh.Edge{
		mesh.NewEdge(5, 6), mesh.NewEdge(0, 9), mesh.NewEdge(2, 3), mesh.NewEdge(1, 1),
	}
	for _, e := range edges {
		q.Insert(e, 0)
	}

	var popped []*Collapse
	for q.Size() > 0 {
		min, _ := q.PeekMin()
		popped = append(popped, min)
		q.Erase(min.Edge)
	}

	for i := 1; i < len(popped); i++ {
		if popped[i-1].Error > popped[i].Error {
			t.Fatalf("popped out of order: %v before %v", popped[i-1], popped[i])
		}
	}
}
