package vecmath

// Mat3 is a row-major 3x3 matrix, used to solve for the optimal collapse
// target position from the upper-left block of a summed quadric.
type Mat3 [9]float32

// At returns the entry at (row, col), 0-indexed.
func (m Mat3) At(row, col int) float32 {
	return m[row*3+col]
}

// Set writes the entry at (row, col).
func (m *Mat3) Set(row, col int, v float32) {
	m[row*3+col] = v
}

// Determinant returns the determinant of m.
func (m Mat3) Determinant() float32 {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Solve returns x such that m*x = b, using the closed-form 3x3 inverse
// over the already-computed determinant. The caller is expected to have
// checked that det is numerically invertible (simplify's collapse-position
// computation follows the |det| > 1e-6 threshold from the spec).
func (m Mat3) Solve(b Vec3, det float32) Vec3 {
	a, bb, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e, f := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	g, h, i := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	inv := 1.0 / det
	inverse := Mat3{
		(e*i - f*h) * inv, (c*h - bb*i) * inv, (bb*f - c*e) * inv,
		(f*g - d*i) * inv, (a*i - c*g) * inv, (c*d - a*f) * inv,
		(d*h - e*g) * inv, (bb*g - a*h) * inv, (a*e - bb*d) * inv,
	}

	return Vec3{
		inverse.At(0, 0)*b.X + inverse.At(0, 1)*b.Y + inverse.At(0, 2)*b.Z,
		inverse.At(1, 0)*b.X + inverse.At(1, 1)*b.Y + inverse.At(1, 2)*b.Z,
		inverse.At(2, 0)*b.X + inverse.At(2, 1)*b.Y + inverse.At(2, 2)*b.Z,
	}
}
