package vecmath

import "math"

// AABB is an axis-aligned bounding box. The empty box has Min at +inf
// and Max at -inf so that the first Encapsulate call establishes real
// bounds without a special case.
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns the empty-box sentinel.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns Max - Min.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Encapsulate grows the box to include point.
func (b AABB) Encapsulate(point Vec3) AABB {
	return AABB{Min: Min(b.Min, point), Max: Max(b.Max, point)}
}

// Union grows the box to include other.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: Min(b.Min, other.Min), Max: Max(b.Max, other.Max)}
}

// Contains reports whether point lies within the box, inclusive.
func (b AABB) Contains(point Vec3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}
