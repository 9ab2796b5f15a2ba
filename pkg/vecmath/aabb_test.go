package vecmath

import (
	"math"
	"testing"
)

func TestEmptyAABB(t *testing.T) {
	b := EmptyAABB()
	if !math.IsInf(float64(b.Min.X), 1) || !math.IsInf(float64(b.Max.X), -1) {
		t.Errorf("EmptyAABB() = %v, want +inf min, -inf max", b)
	}
}

func TestAABB_Encapsulate(t *testing.T) {
	b := EmptyAABB()
	b = b.Encapsulate(Vec3{X: 1, Y: -2, Z: 3})
	b = b.Encapsulate(Vec3{X: -1, Y: 2, Z: 1})
	want := AABB{Min: Vec3{X: -1, Y: -2, Z: 1}, Max: Vec3{X: 1, Y: 2, Z: 3}}
	if b != want {
		t.Errorf("Encapsulate() = %v, want %v", b, want)
	}
}

func TestAABB_Union(t *testing.T) {
	a := AABB{Min: Vec3{X: 0, Y: 0, Z: 0}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	b := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	got := a.Union(b)
	want := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	if got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}
