package camera

import (
	"testing"

	"github.com/chewxy/math32"
)

func near(a, b [3]float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > 1e-4 {
			return false
		}
	}
	return true
}

func TestViewMatrixMovesCameraToOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Yaw = 30
	cfg.Pitch = -15
	c := New(cfg)

	got := c.ViewMatrix().TransformPoint(c.Position())
	if !near(got, [3]float32{}) {
		t.Errorf("camera position maps to %v, want origin", got)
	}
}

func TestDefaultViewMatchesTranslation(t *testing.T) {
	v := New(DefaultConfig()).ViewMatrix()
	if v[12] != 0 || v[13] != -3 || v[14] != -40 {
		t.Errorf("view translation = (%f, %f, %f), want (0, -3, -40)", v[12], v[13], v[14])
	}
}

func TestDefaultCameraSeesOrigin(t *testing.T) {
	c := New(DefaultConfig())
	view := c.ViewMatrix()
	proj := c.Projection(800.0 / 600.0)

	eye := view.TransformPoint([3]float32{0, 0, 0})
	if eye[2] >= 0 {
		t.Fatalf("origin is behind the camera: %v", eye)
	}
	clip := proj.TransformPoint(eye)
	for i, v := range clip {
		if v < -1 || v > 1 {
			t.Errorf("origin NDC[%d] = %f, outside [-1, 1]", i, v)
		}
	}
}

func TestProjectionAspect(t *testing.T) {
	c := New(DefaultConfig())
	p := c.Projection(2)
	if math32.Abs(p[0]*2-p[5]) > 1e-5 {
		t.Errorf("xScale = %f, yScale = %f", p[0], p[5])
	}
	if q := c.Projection(0); q[0] != q[5] {
		t.Error("non-positive aspect should fall back to 1")
	}
}
