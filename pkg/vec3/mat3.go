package vec3

import "math"

// Mat3 is a 3×3 matrix in row-major order, used for frame rotations.
type Mat3 [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// MulVec returns m · v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns the matrix product m · o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Transpose returns the transpose of m. For rotation matrices this is
// the inverse.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// RotX returns the frame rotation about the +X axis by angle radians:
// applied to a vector it yields that vector's coordinates in a frame
// rotated by angle about X.
func RotX(angle float64) Mat3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// RotZ returns the frame rotation about the +Z axis by angle radians.
func RotZ(angle float64) Mat3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}
