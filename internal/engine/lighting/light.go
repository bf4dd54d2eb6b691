// Package lighting describes the single shadow-casting light.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Config describes the light. Direction points from the scene towards the
// light and does not need to be normalized.
type Config struct {
	Direction [3]float32
	Distance  float32 // light distance from the origin along Direction
	HalfSize  float32 // half extent of the orthographic frustum
	Near      float32
	Far       float32
	Color     [3]float32
	Ambient   [3]float32
}

// DefaultConfig returns the viewer's light: a white light above and to the
// side, sized to cover the default ground plane.
func DefaultConfig() Config {
	return Config{
		Direction: [3]float32{0.5, 1.0, 0.3},
		Distance:  25,
		HalfSize:  22,
		Near:      0.1,
		Far:       60,
		Color:     [3]float32{1, 1, 1},
		Ambient:   [3]float32{0.2, 0.2, 0.25},
	}
}

// Light holds the orthographic projection and view used to render the depth
// target, plus the colours the main pass shades with.
type Light struct {
	Projection math.Matrix
	View       math.Matrix
	Color      [3]float32
	Ambient    [3]float32
}

// New builds the light. The view rotates the world so Direction lines up with
// +Z, then pushes it Distance units away:
//
//	View = I · RotY(yaw) · RotX(pitch) · T(0, 0, -Distance)
func New(cfg Config) *Light {
	yaw, pitch := Angles(cfg.Direction)

	view := math.Identity()
	math.RotateAboutY(&view, yaw)
	math.RotateAboutX(&view, pitch)
	math.Translate(&view, 0, 0, -cfg.Distance)

	h := cfg.HalfSize
	return &Light{
		Projection: math.CreateOrthographic(-h, h, -h, h, cfg.Near, cfg.Far),
		View:       view,
		Color:      cfg.Color,
		Ambient:    cfg.Ambient,
	}
}

// LightSpace returns the combined matrix that takes world positions into the
// light's clip space (projection·view in shader order).
func (l *Light) LightSpace() math.Matrix {
	return math.MultiplyMatrices(l.View, l.Projection)
}

// Direction returns the unit vector towards the light, read back from the
// view's rotation.
func (l *Light) Direction() [3]float32 {
	m := l.View
	return math.Vec3{X: m[2], Y: m[6], Z: m[10]}.Normalize().Array()
}

// Angles returns the yaw and pitch (radians) whose rotations turn dir onto +Z.
// A straight-down light has pitch -pi/2 and yaw 0.
func Angles(dir [3]float32) (yaw, pitch float32) {
	d := math.V3(dir).Normalize()
	if d == (math.Vec3{}) {
		d = math.Vec3{Y: 1}
	}
	pitch = -math32.Asin(clamp(d.Y, -1, 1))
	if math32.Abs(d.X) < 1e-6 && math32.Abs(d.Z) < 1e-6 {
		return 0, pitch
	}
	return math32.Atan2(-d.X, d.Z), pitch
}

// FitBounds sizes cfg's frustum so every point of b is inside it, keeping
// the direction and colours.
func FitBounds(cfg Config, b mesh.Bounds) Config {
	var radius float32
	for _, x := range [2]float32{b.Min[0], b.Max[0]} {
		for _, y := range [2]float32{b.Min[1], b.Max[1]} {
			for _, z := range [2]float32{b.Min[2], b.Max[2]} {
				radius = max(radius, math32.Sqrt(x*x+y*y+z*z))
			}
		}
	}
	if radius == 0 {
		return cfg
	}

	padding := radius * 0.1
	cfg.HalfSize = radius + padding
	cfg.Distance = radius * 2
	cfg.Near = 0.1
	cfg.Far = cfg.Distance + radius + padding
	return cfg
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
