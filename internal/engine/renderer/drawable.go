package renderer

import (
	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// TransformFunc returns a drawable's model matrix for the current rotation
// angle (radians).
type TransformFunc func(angle float32) math.Matrix

// Material is the surface description of a drawable.
type Material struct {
	Color       [3]float32
	TexturePath string // optional; empty means untextured
}

// DrawableSpec declares one object to render. Drawables are drawn in
// declaration order.
type DrawableSpec struct {
	Name      string
	Mesh      *mesh.Mesh
	Transform TransformFunc
	Material  Material
}

// Drawable is a DrawableSpec after upload.
type Drawable struct {
	name      string
	buffers   gpu.MeshBuffers
	texture   gpu.Handle // 0 when untextured
	color     [3]float32
	transform TransformFunc
}

// Name returns the drawable's name.
func (d *Drawable) Name() string { return d.name }

// Textured reports whether a texture was uploaded for the drawable.
func (d *Drawable) Textured() bool { return d.texture != 0 }

// Model evaluates the drawable's transform.
func (d *Drawable) Model(angle float32) math.Matrix {
	if d.transform == nil {
		return math.Identity()
	}
	return d.transform(angle)
}

// Static returns a transform that ignores the angle.
func Static(m math.Matrix) TransformFunc {
	return func(float32) math.Matrix { return m }
}

// Spin returns a transform that translates, rotates about Y by the angle,
// then scales uniformly:
//
//	M = I · T(offset) · RotY(angle) · S(scale)
func Spin(offset [3]float32, scale float32) TransformFunc {
	return func(angle float32) math.Matrix {
		m := math.Identity()
		math.Translate(&m, offset[0], offset[1], offset[2])
		math.RotateAboutY(&m, angle)
		math.Scale(&m, scale, scale, scale)
		return m
	}
}
