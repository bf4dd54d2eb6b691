// Package shadow provides the depth target rendered from the light.
package shadow

import (
	"fmt"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
)

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 2048

// Map is a square depth-only render target sampled with sampler2DShadow.
type Map struct {
	dev    gpu.Device
	target gpu.DepthTarget
}

// NewMap creates a shadow map. A non-positive resolution selects
// DefaultResolution.
func NewMap(dev gpu.Device, resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	target, err := dev.CreateDepthTarget(resolution)
	if err != nil {
		return nil, fmt.Errorf("shadow map %dx%d: %w", resolution, resolution, err)
	}
	return &Map{dev: dev, target: target}, nil
}

// Resolution returns the width (and height) of the target.
func (sm *Map) Resolution() int32 {
	return sm.target.Resolution
}

// Bind redirects rendering into the depth target: viewport set to the target
// size, depth cleared, front faces culled to keep surfaces from shadowing
// themselves.
func (sm *Map) Bind() {
	sm.dev.BindFramebuffer(sm.target.FBO)
	sm.dev.Viewport(0, 0, sm.target.Resolution, sm.target.Resolution)
	sm.dev.Clear(gpu.ClearDepth)
	sm.dev.EnableDepthTest()
	sm.dev.EnableCulling(gpu.CullFront)
}

// Unbind returns to the window framebuffer with the given viewport and
// back-face culling.
func (sm *Map) Unbind(width, height int32) {
	sm.dev.BindFramebuffer(0)
	sm.dev.Viewport(0, 0, width, height)
	sm.dev.EnableCulling(gpu.CullBack)
}

// BindTexture binds the depth texture to a zero-based texture unit.
func (sm *Map) BindTexture(unit uint32) {
	sm.dev.BindTexture(unit, sm.target.Texture)
}

// Destroy releases the target. Safe to call more than once.
func (sm *Map) Destroy() {
	if !sm.IsValid() {
		return
	}
	sm.dev.DeleteDepthTarget(sm.target)
	sm.target = gpu.DepthTarget{}
}

// IsValid reports whether the map still owns a target.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.target.FBO != 0 && sm.target.Texture != 0
}
