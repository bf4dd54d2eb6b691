// Package renderer draws the scene with a depth-from-light pass followed by
// a lit pass that samples the resulting shadow map.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/shader"
	"github.com/Faultbox/shadowmesh/internal/engine/shadow"
	"github.com/Faultbox/shadowmesh/internal/engine/texture"
	"github.com/Faultbox/shadowmesh/internal/logger"
)

// Texture units used by the lit program.
const (
	baseColorUnit = 0
	shadowMapUnit = 1
)

// Options configures a Context.
type Options struct {
	Width, Height    int
	ShadowResolution int32
	ClearColor       [3]float32
	MaxTextureSize   int // 0 keeps textures at full size
}

// Context owns every GPU resource the passes use: both programs, the shadow
// map and the uploaded drawables. Create it with NewContext and release it
// with Close.
type Context struct {
	dev        gpu.Device
	log        *zap.Logger
	depth      *shader.Program
	lit        *shader.Program
	shadowMap  *shadow.Map
	drawables  []*Drawable
	width      int32
	height     int32
	clearColor [3]float32
	closed     bool
}

// NewContext links the programs, creates the shadow map and uploads every
// drawable. Any failure releases whatever was already created. A texture
// that cannot be loaded is not an error: the drawable renders untextured.
func NewContext(dev gpu.Device, opts Options, specs []DrawableSpec) (ctx *Context, err error) {
	c := &Context{
		dev:        dev,
		log:        logger.Named("renderer"),
		width:      int32(max(opts.Width, 1)),
		height:     int32(max(opts.Height, 1)),
		clearColor: opts.ClearColor,
	}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	if c.depth, err = shader.NewDepth(dev); err != nil {
		return nil, err
	}
	if c.lit, err = shader.NewLit(dev); err != nil {
		return nil, err
	}
	if c.shadowMap, err = shadow.NewMap(dev, opts.ShadowResolution); err != nil {
		return nil, err
	}

	for _, spec := range specs {
		d, err := c.upload(spec, opts.MaxTextureSize)
		if err != nil {
			return nil, fmt.Errorf("drawable %q: %w", spec.Name, err)
		}
		c.drawables = append(c.drawables, d)
	}

	c.log.Info("render context ready",
		zap.Int("drawables", len(c.drawables)),
		zap.Int32("shadow_resolution", c.shadowMap.Resolution()),
		zap.Int32("width", c.width),
		zap.Int32("height", c.height),
	)
	return c, nil
}

func (c *Context) upload(spec DrawableSpec, maxTextureSize int) (*Drawable, error) {
	if spec.Mesh == nil || len(spec.Mesh.Indices) == 0 {
		return nil, errors.New("mesh has no triangles")
	}
	if err := spec.Mesh.Validate(); err != nil {
		return nil, err
	}

	buffers, err := c.dev.UploadMesh(spec.Mesh)
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	d := &Drawable{
		name:      spec.Name,
		buffers:   buffers,
		color:     spec.Material.Color,
		transform: spec.Transform,
	}

	if path := spec.Material.TexturePath; path != "" {
		d.texture = c.loadTexture(path, maxTextureSize)
	}
	return d, nil
}

// loadTexture returns 0 when the texture cannot be used.
func (c *Context) loadTexture(path string, maxSize int) gpu.Handle {
	img, err := texture.Load(path)
	if err != nil {
		c.log.Warn("texture unavailable, rendering untextured", zap.String("path", path), zap.Error(err))
		return 0
	}
	img = texture.FlipVertical(texture.Fit(img, maxSize))

	tex, err := c.dev.UploadTexture(img)
	if err != nil {
		c.log.Warn("texture upload failed, rendering untextured", zap.String("path", path), zap.Error(err))
		return 0
	}
	c.log.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return tex
}

// Drawables returns the uploaded drawables in declaration order.
func (c *Context) Drawables() []*Drawable {
	return c.drawables
}

// Size returns the on-screen viewport size.
func (c *Context) Size() (width, height int32) {
	return c.width, c.height
}

// Aspect returns width/height of the on-screen viewport.
func (c *Context) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// Resize records the new on-screen size. Zero sizes (minimised windows) are
// clamped to 1.
func (c *Context) Resize(width, height int) {
	c.width = int32(max(width, 1))
	c.height = int32(max(height, 1))
	c.log.Debug("context resized", zap.Int32("width", c.width), zap.Int32("height", c.height))
}

// Close releases every GPU resource. It is safe to call more than once.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true

	for _, d := range c.drawables {
		c.dev.DeleteMesh(d.buffers)
		if d.texture != 0 {
			c.dev.DeleteTexture(d.texture)
		}
	}
	c.drawables = nil

	if c.shadowMap != nil {
		c.shadowMap.Destroy()
	}
	if c.lit != nil {
		c.lit.Delete()
	}
	if c.depth != nil {
		c.depth.Delete()
	}
	c.log.Debug("render context closed")
}
