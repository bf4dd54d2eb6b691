// Package gpu is the thin command layer between the render passes and the
// graphics API. The passes only talk to a Device, so their call order can be
// checked without a GL context (see gputest).
package gpu

import (
	"image"

	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Handle is an API object name. Zero is the null handle.
type Handle uint32

// MeshBuffers are the uploaded buffers of one mesh.
type MeshBuffers struct {
	VAO, VBO, EBO Handle
	IndexCount    int32
}

// DepthTarget is an off-screen framebuffer with a single depth texture.
type DepthTarget struct {
	FBO        Handle
	Texture    Handle
	Resolution int32
}

// Face selects which faces are culled.
type Face int

const (
	CullBack Face = iota
	CullFront
)

func (f Face) String() string {
	if f == CullFront {
		return "front"
	}
	return "back"
}

// Clear buffer bits.
const (
	ClearColor uint32 = 1 << iota
	ClearDepth
)

// Device issues graphics commands. All methods must be called from the
// thread that owns the context.
type Device interface {
	// Programs
	CreateProgram(vertexSrc, fragmentSrc string) (Handle, error)
	UniformLocation(program Handle, name string) int32
	UseProgram(program Handle)
	DeleteProgram(program Handle)

	// Uniforms. Location -1 is silently ignored.
	UniformMatrix4(location int32, m *math.Matrix)
	Uniform3f(location int32, v [3]float32)
	Uniform1i(location int32, v int32)

	// Geometry
	UploadMesh(m *mesh.Mesh) (MeshBuffers, error)
	DrawMesh(b MeshBuffers)
	DeleteMesh(b MeshBuffers)

	// Textures. unit is zero-based.
	UploadTexture(img *image.RGBA) (Handle, error)
	BindTexture(unit uint32, tex Handle)
	DeleteTexture(tex Handle)

	// Framebuffers
	CreateDepthTarget(resolution int32) (DepthTarget, error)
	BindFramebuffer(fbo Handle)
	DeleteDepthTarget(t DepthTarget)

	// State
	Viewport(x, y, width, height int32)
	SetClearColor(r, g, b float32)
	Clear(mask uint32)
	EnableDepthTest()
	EnableCulling(face Face)
}
