package renderer

import (
	"errors"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/shader"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// ErrPassState is returned when a pass method is called out of order.
var ErrPassState = errors.New("render pass used out of order")

// ShadowPass renders drawables into the shadow map. Calls must follow
// Begin, Draw*, End.
type ShadowPass struct {
	ctx    *Context
	active bool
}

// NewShadowPass returns a shadow pass over ctx.
func NewShadowPass(ctx *Context) *ShadowPass {
	return &ShadowPass{ctx: ctx}
}

// Begin binds the shadow map and the depth program and uploads the
// light-space matrix.
func (p *ShadowPass) Begin(lightSpace *math.Matrix) error {
	if p.active {
		return ErrPassState
	}
	p.active = true

	p.ctx.shadowMap.Bind()
	p.ctx.depth.Use()
	p.ctx.depth.SetMatrix(shader.LightSpaceMatrix, lightSpace)
	return nil
}

// Draw renders d with the given model matrix.
func (p *ShadowPass) Draw(d *Drawable, model *math.Matrix) error {
	if !p.active {
		return ErrPassState
	}
	p.ctx.depth.SetMatrix(shader.ModelMatrix, model)
	p.ctx.dev.DrawMesh(d.buffers)
	return nil
}

// End restores the window framebuffer, viewport and back-face culling.
func (p *ShadowPass) End() error {
	if !p.active {
		return ErrPassState
	}
	p.active = false

	w, h := p.ctx.Size()
	p.ctx.shadowMap.Unbind(w, h)
	return nil
}

// Frame holds the per-frame inputs of the main pass.
type Frame struct {
	View       math.Matrix
	Projection math.Matrix
	LightSpace math.Matrix
	LightDir   [3]float32
	LightColor [3]float32
	Ambient    [3]float32
	ViewPos    [3]float32
}

// MainPass renders the lit scene to the window framebuffer.
type MainPass struct {
	ctx *Context
}

// NewMainPass returns a main pass over ctx.
func NewMainPass(ctx *Context) *MainPass {
	return &MainPass{ctx: ctx}
}

// Render clears the window and draws every drawable in order. models[i] is
// the model matrix of ctx.Drawables()[i].
func (p *MainPass) Render(f *Frame, models []math.Matrix) {
	c := p.ctx
	w, h := c.Size()

	c.dev.BindFramebuffer(0)
	c.dev.Viewport(0, 0, w, h)
	c.dev.SetClearColor(c.clearColor[0], c.clearColor[1], c.clearColor[2])
	c.dev.Clear(gpu.ClearColor | gpu.ClearDepth)
	c.dev.EnableDepthTest()
	c.dev.EnableCulling(gpu.CullBack)

	prog := c.lit
	prog.Use()
	c.shadowMap.BindTexture(shadowMapUnit)
	prog.SetInt(shader.ShadowMap, shadowMapUnit)
	prog.SetInt(shader.BaseColor, baseColorUnit)

	for i, d := range c.drawables {
		prog.SetMatrix(shader.ModelMatrix, &models[i])
		prog.SetMatrix(shader.ViewMatrix, &f.View)
		prog.SetMatrix(shader.ProjectionMatrix, &f.Projection)
		prog.SetMatrix(shader.LightSpaceMatrix, &f.LightSpace)

		if d.texture != 0 {
			c.dev.BindTexture(baseColorUnit, d.texture)
			prog.SetInt(shader.UseTexture, 1)
		} else {
			prog.SetInt(shader.UseTexture, 0)
		}

		prog.SetVec3(shader.LightDir, f.LightDir)
		prog.SetVec3(shader.LightColor, f.LightColor)
		prog.SetVec3(shader.AmbientColor, f.Ambient)
		prog.SetVec3(shader.MaterialColor, d.color)
		prog.SetVec3(shader.ViewPos, f.ViewPos)

		c.dev.DrawMesh(d.buffers)
	}
}
