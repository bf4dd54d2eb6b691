package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if !near(got[i], want[i]) {
			t.Errorf("%s[%d] = %f, want %f\ngot:  %v\nwant: %v", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func sample() Matrix {
	return Matrix{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
}

func TestIdentityIsTwoSided(t *testing.T) {
	x := sample()
	assertMatrix(t, "I*X", MultiplyMatrices(Identity(), x), x)
	assertMatrix(t, "X*I", MultiplyMatrices(x, Identity()), x)
}

func TestMultiplyMatricesRowMajor(t *testing.T) {
	a := sample()
	b := Matrix{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 0,
		1, 1, 1, 1,
	}
	got := MultiplyMatrices(a, b)

	// Row 0 of a is (1,2,3,4); column 0 of b is (2,0,0,1).
	if got[0] != 1*2+4*1 {
		t.Errorf("C[0,0] = %f, want 6", got[0])
	}
	// Row 3 of a is (13,14,15,16); column 2 of b is (0,0,4,1).
	if got[14] != 15*4+16 {
		t.Errorf("C[3,2] = %f, want 76", got[14])
	}
}

// mgl32 stores column-major, so our a*b has the same memory as mgl's b*a.
func TestMultiplyMatricesAgainstMathGL(t *testing.T) {
	a := sample()
	b := Identity()
	RotateAboutY(&b, 0.7)
	Translate(&b, 3, -2, 5)

	got := MultiplyMatrices(a, b)
	want := Matrix(mgl32.Mat4(b).Mul4(mgl32.Mat4(a)))
	assertMatrix(t, "a*b", got, want)
}

func TestTranslateRoundTrip(t *testing.T) {
	m := Identity()
	Translate(&m, 1, 2, 3)
	Translate(&m, -1, -2, -3)
	assertMatrix(t, "T*T^-1", m, Identity())
}

func TestTranslateLastRow(t *testing.T) {
	m := Identity()
	Translate(&m, 5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	assertMatrix(t, "translate", m, Matrix(mgl32.Translate3D(5, 10, 15)))
}

func TestScaleDiagonal(t *testing.T) {
	m := Identity()
	Scale(&m, 2, 3, 4)
	if m[0] != 2 || m[5] != 3 || m[10] != 4 || m[15] != 1 {
		t.Errorf("Scale diagonal: got (%f, %f, %f, %f)", m[0], m[5], m[10], m[15])
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	for name, rotate := range map[string]func(*Matrix, float32){
		"x": RotateAboutX,
		"y": RotateAboutY,
		"z": RotateAboutZ,
	} {
		m := Identity()
		rotate(&m, 0)
		assertMatrix(t, "rotate "+name, m, Identity())
	}
}

func TestRotationElements(t *testing.T) {
	const angle = 0.4

	y := Identity()
	RotateAboutY(&y, angle)
	assertMatrix(t, "rotate y", y, Matrix(mgl32.HomogRotate3DY(angle)))

	// X and Z use the opposite sign convention from mgl32.
	x := Identity()
	RotateAboutX(&x, angle)
	assertMatrix(t, "rotate x", x, Matrix(mgl32.HomogRotate3DX(-angle)))

	z := Identity()
	RotateAboutZ(&z, angle)
	assertMatrix(t, "rotate z", z, Matrix(mgl32.HomogRotate3DZ(-angle)))
}

func TestCompositionOrder(t *testing.T) {
	// I*T*R*S: the vertex is translated, then rotated, then scaled.
	m := Identity()
	Translate(&m, 0, -1.5, 0)
	RotateAboutY(&m, DegreesToRadians(90))
	Scale(&m, 0.1, 0.1, 0.1)

	got := m.TransformPoint([3]float32{1, 0, 0})
	want := [3]float32{0, -0.15, -0.1}
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("TransformPoint = %v, want %v", got, want)
		}
	}
}

func TestCreateProjection(t *testing.T) {
	m := CreateProjection(60, 1.0, 0.1, 200.0)

	if m[11] != -1 {
		t.Errorf("m[11] = %f, want -1", m[11])
	}
	if m[0] != m[5] {
		t.Errorf("square aspect: m[0] = %f, m[5] = %f", m[0], m[5])
	}
	if m[15] != 0 {
		t.Errorf("m[15] = %f, want 0", m[15])
	}
	assertMatrix(t, "projection", m, Matrix(mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 200)))
}

func TestCreateProjectionAspect(t *testing.T) {
	m := CreateProjection(60, 2.0, 0.1, 200.0)
	if !near(m[0]*2, m[5]) {
		t.Errorf("xScale = %f, yScale = %f, want xScale = yScale/2", m[0], m[5])
	}
}

func TestCreateOrthographic(t *testing.T) {
	m := CreateOrthographic(-10, 10, -5, 5, 1, 50)
	assertMatrix(t, "ortho", m, Matrix(mgl32.Ortho(-10, 10, -5, 5, 1, 50)))

	// The near plane centre maps to NDC depth -1.
	p := m.TransformPoint([3]float32{0, 0, -1})
	if !near(p[2], -1) {
		t.Errorf("near plane depth = %f, want -1", p[2])
	}
}

func TestDegreesRadians(t *testing.T) {
	if !near(DegreesToRadians(180), math32.Pi) {
		t.Errorf("DegreesToRadians(180) = %f", DegreesToRadians(180))
	}
	if !near(RadiansToDegrees(math32.Pi/2), 90) {
		t.Errorf("RadiansToDegrees(pi/2) = %f", RadiansToDegrees(math32.Pi/2))
	}
	if !near(Cotangent(math32.Pi/4), 1) {
		t.Errorf("Cotangent(pi/4) = %f", Cotangent(math32.Pi/4))
	}
}
