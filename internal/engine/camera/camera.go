// Package camera provides the viewer's fixed camera.
package camera

import (
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Config positions the camera. Yaw and Pitch are in degrees; with both zero
// the camera looks down -Z.
type Config struct {
	Position [3]float32
	Yaw      float32
	Pitch    float32
	FOV      float32 // vertical field of view, degrees
	Near     float32
	Far      float32
}

// DefaultConfig returns a camera 40 units back and 3 units up.
func DefaultConfig() Config {
	return Config{
		Position: [3]float32{0, 3, 40},
		FOV:      60,
		Near:     0.1,
		Far:      200,
	}
}

// Camera is a fixed pose with a perspective lens.
type Camera struct {
	cfg  Config
	view math.Matrix
}

// New builds the camera. The view moves the world so the camera sits at the
// origin, then turns it by yaw and pitch.
func New(cfg Config) *Camera {
	view := math.Identity()
	math.Translate(&view, -cfg.Position[0], -cfg.Position[1], -cfg.Position[2])
	math.RotateAboutY(&view, math.DegreesToRadians(cfg.Yaw))
	math.RotateAboutX(&view, math.DegreesToRadians(cfg.Pitch))
	return &Camera{cfg: cfg, view: view}
}

// Position returns the camera position in world space.
func (c *Camera) Position() [3]float32 {
	return c.cfg.Position
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math.Matrix {
	return c.view
}

// Projection returns the perspective matrix for a viewport of the given
// aspect ratio (width/height).
func (c *Camera) Projection(aspect float32) math.Matrix {
	if aspect <= 0 {
		aspect = 1
	}
	return math.CreateProjection(c.cfg.FOV, aspect, c.cfg.Near, c.cfg.Far)
}
