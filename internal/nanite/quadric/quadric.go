// Package quadric implements the Garland-Heckbert quadric error metric
// used to rank and resolve edge collapses during simplification.
package quadric

import "github.com/ashgrove-tools/nanite-lod/pkg/vecmath"

// Quadric accumulates the sum of squared distances to a set of planes,
// represented as the symmetric 4x4 matrix Q = sum(p*p^T) over each
// plane's homogeneous equation p = (nx, ny, nz, d).
type Quadric struct {
	Q vecmath.Mat4
}

// AddPlane folds the plane with unit normal n and offset d into the
// quadric. d satisfies n.Dot(pointOnPlane) + d == 0.
func (q *Quadric) AddPlane(n vecmath.Vec3, d float32) {
	q.Q.AddOuter([4]float32{n.X, n.Y, n.Z, d})
}

// RemovePlane is the inverse of AddPlane, used when a triangle's
// contribution must be backed out before its normal is recomputed.
func (q *Quadric) RemovePlane(n vecmath.Vec3, d float32) {
	q.Q.SubOuter([4]float32{n.X, n.Y, n.Z, d})
}

// Add returns the quadric formed by summing q and other, the quadric
// of two merged vertices.
func (q Quadric) Add(other Quadric) Quadric {
	return Quadric{Q: q.Q.Add(other.Q)}
}

// Evaluate returns the quadric error v^T*Q*v at the point v, the cost
// of collapsing onto v.
func (q Quadric) Evaluate(v vecmath.Vec3) float32 {
	return q.Q.Evaluate([4]float32{v.X, v.Y, v.Z, 1})
}

// PlaneFromTriangle builds the homogeneous plane equation (n, d) of
// the triangle a,b,c, where n is the normalized face normal.
func PlaneFromTriangle(a, b, c vecmath.Vec3) (n vecmath.Vec3, d float32) {
	n = b.Sub(a).Cross(c.Sub(a)).Normalize()
	d = -n.Dot(a)
	return n, d
}
