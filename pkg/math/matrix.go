package math

import "github.com/chewxy/math32"

// Matrix is a 4x4 matrix stored row-major.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Translation lives in the last row (m12, m13, m14) and points are row
// vectors transformed as v*M. The memory layout is what OpenGL expects with
// transpose=false, so a Matrix uploads as-is.
type Matrix [16]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MultiplyMatrices returns a*b.
func MultiplyMatrices(a, b Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		r := row * 4
		for col := 0; col < 4; col++ {
			out[r+col] = a[r+0]*b[col+0] +
				a[r+1]*b[col+4] +
				a[r+2]*b[col+8] +
				a[r+3]*b[col+12]
		}
	}
	return out
}

// Scale appends a scale to m (m = m*S).
func Scale(m *Matrix, x, y, z float32) {
	s := Identity()
	s[0] = x
	s[5] = y
	s[10] = z
	*m = MultiplyMatrices(*m, s)
}

// Translate appends a translation to m (m = m*T).
func Translate(m *Matrix, x, y, z float32) {
	t := Identity()
	t[12] = x
	t[13] = y
	t[14] = z
	*m = MultiplyMatrices(*m, t)
}

// RotateAboutX appends a rotation about the X axis to m.
// angle is in radians.
func RotateAboutX(m *Matrix, angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	r := Identity()
	r[5] = c
	r[6] = -s
	r[9] = s
	r[10] = c
	*m = MultiplyMatrices(*m, r)
}

// RotateAboutY appends a rotation about the Y axis to m.
// angle is in radians.
func RotateAboutY(m *Matrix, angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	r := Identity()
	r[0] = c
	r[8] = s
	r[2] = -s
	r[10] = c
	*m = MultiplyMatrices(*m, r)
}

// RotateAboutZ appends a rotation about the Z axis to m.
// angle is in radians.
func RotateAboutZ(m *Matrix, angle float32) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	r := Identity()
	r[0] = c
	r[1] = -s
	r[4] = s
	r[5] = c
	*m = MultiplyMatrices(*m, r)
}

// CreateProjection returns a perspective projection matrix.
// fovY is the vertical field of view in degrees, aspect is width/height.
// near == far produces Inf/NaN entries.
func CreateProjection(fovY, aspect, near, far float32) Matrix {
	yScale := Cotangent(DegreesToRadians(fovY / 2))
	xScale := yScale / aspect
	length := far - near

	var out Matrix
	out[0] = xScale
	out[5] = yScale
	out[10] = -((far + near) / length)
	out[11] = -1
	out[14] = -((2 * near * far) / length)
	return out
}

// CreateOrthographic returns an orthographic projection matrix for the
// box [left,right] x [bottom,top] x [near,far].
func CreateOrthographic(left, right, bottom, top, near, far float32) Matrix {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)

	return Matrix{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// TransformPoint transforms p as the row vector (p, 1) * m, dividing by w
// when it is neither 0 nor 1.
func (m Matrix) TransformPoint(p [3]float32) [3]float32 {
	x := p[0]*m[0] + p[1]*m[4] + p[2]*m[8] + m[12]
	y := p[0]*m[1] + p[1]*m[5] + p[2]*m[9] + m[13]
	z := p[0]*m[2] + p[1]*m[6] + p[2]*m[10] + m[14]
	w := p[0]*m[3] + p[1]*m[7] + p[2]*m[11] + m[15]
	if w != 0 && w != 1 {
		return [3]float32{x / w, y / w, z / w}
	}
	return [3]float32{x, y, z}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Matrix) Ptr() *float32 {
	return &m[0]
}

// Cotangent returns 1/tan(angle), angle in radians.
func Cotangent(angle float32) float32 {
	return 1 / math32.Tan(angle)
}

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(degrees float32) float32 {
	return degrees * (math32.Pi / 180)
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(radians float32) float32 {
	return radians * (180 / math32.Pi)
}
