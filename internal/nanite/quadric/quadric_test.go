package quadric

import (
	"math"
	"testing"

	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

func TestPlaneFromTriangle(t *testing.T) {
	a := vecmath.Vec3{X: 0, Y: 0, Z: 0}
	b := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	c := vecmath.Vec3{X: 0, Y: 1, Z: 0}

	n, d := PlaneFromTriangle(a, b, c)
	want := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	if !n.Equal(want) {
		t.Fatalf("normal = %v, want %v", n, want)
	}
	if d != 0 {
		t.Errorf("d = %f, want 0 for a plane through the origin", d)
	}
}

func TestEvaluateZeroOnPlane(t *testing.T) {
	a := vecmath.Vec3{X: 0, Y: 0, Z: 0}
	b := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	c := vecmath.Vec3{X: 0, Y: 1, Z: 0}

	var q Quadric
	n, d := PlaneFromTriangle(a, b, c)
	q.AddPlane(n, d)

	onPlane := vecmath.Vec3{X: 0.5, Y: 0.5, Z: 0}
	if err := q.Evaluate(onPlane); math.Abs(float64(err)) > 1e-5 {
		t.Errorf("expected near-zero error on plane, got %f", err)
	}

	off := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	if err := q.Evaluate(off); err <= 0 {
		t.Errorf("expected positive error off plane, got %f", err)
	}
}

func TestAddPlaneRemovePlaneInverse(t *testing.T) {
	n := vecmath.Vec3{X: 0, Y: 1, Z: 0}
	var q Quadric
	q.AddPlane(n, 1.5)
	q.RemovePlane(n, 1.5)

	var zero Quadric
	if q.Q != zero.Q {
		t.Errorf("RemovePlane did not invert AddPlane: %v", q.Q)
	}
}

func TestAdd(t *testing.T) {
	var a, b Quadric
	n1 := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	n2 := vecmath.Vec3{X: 0, Y: 1, Z: 0}
	a.AddPlane(n1, 0)
	b.AddPlane(n2, 0)

	sum := a.Add(b)
	var want Quadric
	want.AddPlane(n1, 0)
	want.AddPlane(n2, 0)
	if sum.Q != want.Q {
		t.Errorf("Add mismatch: got %v, want %v", sum.Q, want.Q)
	}
}
