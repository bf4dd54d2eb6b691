// Package shader links GPU programs and caches their uniform locations.
package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/shader/shaders"
	"github.com/Faultbox/shadowmesh/internal/logger"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Uniform names a shader binding.
type Uniform int

const (
	ModelMatrix Uniform = iota
	ViewMatrix
	ProjectionMatrix
	LightSpaceMatrix
	LightDir
	LightColor
	AmbientColor
	MaterialColor
	ViewPos
	BaseColor
	ShadowMap
	UseTexture

	numUniforms
)

var uniformNames = [numUniforms]string{
	ModelMatrix:      "ModelMatrix",
	ViewMatrix:       "ViewMatrix",
	ProjectionMatrix: "ProjectionMatrix",
	LightSpaceMatrix: "LightSpaceMatrix",
	LightDir:         "LightDir",
	LightColor:       "LightColor",
	AmbientColor:     "AmbientColor",
	MaterialColor:    "MaterialColor",
	ViewPos:          "ViewPos",
	BaseColor:        "BaseColor",
	ShadowMap:        "ShadowMap",
	UseTexture:       "UseTexture",
}

func (u Uniform) String() string {
	if u < 0 || u >= numUniforms {
		return fmt.Sprintf("Uniform(%d)", int(u))
	}
	return uniformNames[u]
}

// Uniforms each program is expected to expose.
var (
	DepthUniforms = []Uniform{ModelMatrix, LightSpaceMatrix}
	LitUniforms   = []Uniform{
		ModelMatrix, ViewMatrix, ProjectionMatrix, LightSpaceMatrix,
		LightDir, LightColor, AmbientColor, MaterialColor, ViewPos,
		BaseColor, ShadowMap, UseTexture,
	}
)

// Program is a linked program with its uniform locations resolved once.
// Uniforms the program does not expose have location -1; uploads to them are
// dropped by the driver.
type Program struct {
	dev  gpu.Device
	name string
	id   gpu.Handle
	locs [numUniforms]int32
}

// Link compiles and links a program, then resolves the given uniforms. A
// uniform that does not resolve is logged once here and never again.
func Link(dev gpu.Device, name, vertexSrc, fragmentSrc string, uniforms []Uniform) (*Program, error) {
	id, err := dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}

	p := &Program{dev: dev, name: name, id: id}
	for i := range p.locs {
		p.locs[i] = -1
	}
	for _, u := range uniforms {
		loc := dev.UniformLocation(id, u.String())
		if loc < 0 {
			logger.Warn("uniform not found",
				zap.String("program", name),
				zap.Stringer("uniform", u),
			)
		}
		p.locs[u] = loc
	}

	logger.Debug("program linked", zap.String("program", name), zap.Uint32("id", uint32(id)))
	return p, nil
}

// NewDepth links the depth-only program used by the shadow pass.
func NewDepth(dev gpu.Device) (*Program, error) {
	return Link(dev, "depth", shaders.DepthVertexShader, shaders.DepthFragmentShader, DepthUniforms)
}

// NewLit links the lit program used by the main pass.
func NewLit(dev gpu.Device) (*Program, error) {
	return Link(dev, "lit", shaders.LitVertexShader, shaders.LitFragmentShader, LitUniforms)
}

// Name returns the program's diagnostic name.
func (p *Program) Name() string { return p.name }

// ID returns the API handle.
func (p *Program) ID() gpu.Handle { return p.id }

// Location returns the cached location of u, or -1.
func (p *Program) Location(u Uniform) int32 { return p.locs[u] }

// Use makes p the current program.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

func (p *Program) SetMatrix(u Uniform, m *math.Matrix) {
	p.dev.UniformMatrix4(p.locs[u], m)
}

func (p *Program) SetVec3(u Uniform, v [3]float32) {
	p.dev.Uniform3f(p.locs[u], v)
}

func (p *Program) SetInt(u Uniform, v int32) {
	p.dev.Uniform1i(p.locs[u], v)
}

// Delete releases the program. Safe to call more than once.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
