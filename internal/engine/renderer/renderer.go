package renderer

import (
	"fmt"

	"github.com/Faultbox/shadowmesh/internal/engine/camera"
	"github.com/Faultbox/shadowmesh/internal/engine/lighting"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Renderer draws one frame: the shadow pass, then the main pass, over the
// drawables of a Context.
type Renderer struct {
	ctx        *Context
	light      *lighting.Light
	camera     *camera.Camera
	shadowPass *ShadowPass
	mainPass   *MainPass

	projection math.Matrix
	models     []math.Matrix
}

// New returns a renderer. The context stays owned by the caller.
func New(ctx *Context, light *lighting.Light, cam *camera.Camera) *Renderer {
	return &Renderer{
		ctx:        ctx,
		light:      light,
		camera:     cam,
		shadowPass: NewShadowPass(ctx),
		mainPass:   NewMainPass(ctx),
		projection: cam.Projection(ctx.Aspect()),
		models:     make([]math.Matrix, len(ctx.Drawables())),
	}
}

// Resize updates the viewport and the camera projection.
func (r *Renderer) Resize(width, height int) {
	r.ctx.Resize(width, height)
	r.projection = r.camera.Projection(r.ctx.Aspect())
}

// RenderFrame renders the scene with the model rotated by angle (radians).
// The light-space matrix is computed once and handed to both passes.
func (r *Renderer) RenderFrame(angle float32) error {
	lightSpace := r.light.LightSpace()

	for i, d := range r.ctx.Drawables() {
		r.models[i] = d.Model(angle)
	}

	if err := r.shadowPass.Begin(&lightSpace); err != nil {
		return fmt.Errorf("shadow pass: %w", err)
	}
	for i, d := range r.ctx.Drawables() {
		if err := r.shadowPass.Draw(d, &r.models[i]); err != nil {
			return fmt.Errorf("shadow pass: %w", err)
		}
	}
	if err := r.shadowPass.End(); err != nil {
		return fmt.Errorf("shadow pass: %w", err)
	}

	r.mainPass.Render(&Frame{
		View:       r.camera.ViewMatrix(),
		Projection: r.projection,
		LightSpace: lightSpace,
		LightDir:   r.light.Direction(),
		LightColor: r.light.Color,
		Ambient:    r.light.Ambient,
		ViewPos:    r.camera.Position(),
	}, r.models)
	return nil
}
