// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"errors"
	"image"

	"github.com/Faultbox/shadowmesh/internal/engine/gpu"
	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// Recorded operation names.
const (
	OpCreateProgram     = "CreateProgram"
	OpUniformLocation   = "UniformLocation"
	OpUseProgram        = "UseProgram"
	OpDeleteProgram     = "DeleteProgram"
	OpUniformMatrix4    = "UniformMatrix4"
	OpUniform3f         = "Uniform3f"
	OpUniform1i         = "Uniform1i"
	OpUploadMesh        = "UploadMesh"
	OpDrawMesh          = "DrawMesh"
	OpDeleteMesh        = "DeleteMesh"
	OpUploadTexture     = "UploadTexture"
	OpBindTexture       = "BindTexture"
	OpDeleteTexture     = "DeleteTexture"
	OpCreateDepthTarget = "CreateDepthTarget"
	OpBindFramebuffer   = "BindFramebuffer"
	OpDeleteDepthTarget = "DeleteDepthTarget"
	OpViewport          = "Viewport"
	OpSetClearColor     = "SetClearColor"
	OpClear             = "Clear"
	OpEnableDepthTest   = "EnableDepthTest"
	OpEnableCulling     = "EnableCulling"
)

// ErrInjected is returned by operations a test asked to fail.
var ErrInjected = errors.New("injected failure")

// Call is one recorded command. Only the fields relevant to Op are set.
type Call struct {
	Op      string
	Program gpu.Handle // program in use when the call was made
	Uniform string     // uniform name for uniform uploads ("" for location -1)
	Handle  gpu.Handle
	Unit    uint32
	Matrix  math.Matrix
	Vec     [3]float32
	Int     int32
	Face    gpu.Face
	Rect    [4]int32
	Mask    uint32
}

// Recorder implements gpu.Device by recording every call. Handles are
// allocated sequentially from 1.
type Recorder struct {
	Calls []Call

	// MissingUniforms resolve to location -1.
	MissingUniforms map[string]bool
	// FailProgram makes the n-th CreateProgram call (1-based) fail.
	FailProgram int
	// FailMeshUpload makes every UploadMesh call fail.
	FailMeshUpload bool
	// FailDepthTarget makes CreateDepthTarget fail.
	FailDepthTarget bool

	next     gpu.Handle
	programs int
	current  gpu.Handle
	names    map[int32]string
	nextLoc  int32
	live     map[gpu.Handle]string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		MissingUniforms: make(map[string]bool),
		names:           make(map[int32]string),
		live:            make(map[gpu.Handle]string),
	}
}

func (r *Recorder) alloc(kind string) gpu.Handle {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) free(h gpu.Handle) {
	delete(r.live, h)
}

func (r *Recorder) record(c Call) {
	c.Program = r.current
	r.Calls = append(r.Calls, c)
}

// Live returns the number of handles created and not yet deleted.
func (r *Recorder) Live() int {
	return len(r.live)
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the calls with the given op.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	return len(r.Filter(op))
}

// Reset drops recorded calls but keeps handles and uniform locations.
func (r *Recorder) Reset() {
	r.Calls = nil
}

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string) (gpu.Handle, error) {
	r.programs++
	if r.programs == r.FailProgram {
		r.record(Call{Op: OpCreateProgram})
		return 0, ErrInjected
	}
	h := r.alloc("program")
	r.record(Call{Op: OpCreateProgram, Handle: h})
	return h, nil
}

func (r *Recorder) UniformLocation(program gpu.Handle, name string) int32 {
	r.record(Call{Op: OpUniformLocation, Handle: program, Uniform: name})
	if r.MissingUniforms[name] {
		return -1
	}
	loc := r.nextLoc
	r.nextLoc++
	r.names[loc] = name
	return loc
}

func (r *Recorder) UseProgram(program gpu.Handle) {
	r.current = program
	r.record(Call{Op: OpUseProgram, Handle: program})
}

func (r *Recorder) DeleteProgram(program gpu.Handle) {
	r.free(program)
	r.record(Call{Op: OpDeleteProgram, Handle: program})
}

func (r *Recorder) UniformMatrix4(location int32, m *math.Matrix) {
	r.record(Call{Op: OpUniformMatrix4, Uniform: r.nameOf(location), Matrix: *m})
}

func (r *Recorder) Uniform3f(location int32, v [3]float32) {
	r.record(Call{Op: OpUniform3f, Uniform: r.nameOf(location), Vec: v})
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.record(Call{Op: OpUniform1i, Uniform: r.nameOf(location), Int: v})
}

func (r *Recorder) nameOf(location int32) string {
	if location < 0 {
		return ""
	}
	return r.names[location]
}

func (r *Recorder) UploadMesh(m *mesh.Mesh) (gpu.MeshBuffers, error) {
	if r.FailMeshUpload {
		return gpu.MeshBuffers{}, ErrInjected
	}
	b := gpu.MeshBuffers{
		VAO:        r.alloc("vao"),
		VBO:        r.alloc("vbo"),
		EBO:        r.alloc("ebo"),
		IndexCount: int32(len(m.Indices)),
	}
	r.record(Call{Op: OpUploadMesh, Handle: b.VAO})
	return b, nil
}

func (r *Recorder) DrawMesh(b gpu.MeshBuffers) {
	r.record(Call{Op: OpDrawMesh, Handle: b.VAO, Int: b.IndexCount})
}

func (r *Recorder) DeleteMesh(b gpu.MeshBuffers) {
	r.free(b.VAO)
	r.free(b.VBO)
	r.free(b.EBO)
	r.record(Call{Op: OpDeleteMesh, Handle: b.VAO})
}

func (r *Recorder) UploadTexture(img *image.RGBA) (gpu.Handle, error) {
	h := r.alloc("texture")
	r.record(Call{Op: OpUploadTexture, Handle: h})
	return h, nil
}

func (r *Recorder) BindTexture(unit uint32, tex gpu.Handle) {
	r.record(Call{Op: OpBindTexture, Unit: unit, Handle: tex})
}

func (r *Recorder) DeleteTexture(tex gpu.Handle) {
	r.free(tex)
	r.record(Call{Op: OpDeleteTexture, Handle: tex})
}

func (r *Recorder) CreateDepthTarget(resolution int32) (gpu.DepthTarget, error) {
	if r.FailDepthTarget {
		return gpu.DepthTarget{}, ErrInjected
	}
	t := gpu.DepthTarget{
		FBO:        r.alloc("framebuffer"),
		Texture:    r.alloc("depth texture"),
		Resolution: resolution,
	}
	r.record(Call{Op: OpCreateDepthTarget, Handle: t.FBO, Int: resolution})
	return t, nil
}

func (r *Recorder) BindFramebuffer(fbo gpu.Handle) {
	r.record(Call{Op: OpBindFramebuffer, Handle: fbo})
}

func (r *Recorder) DeleteDepthTarget(t gpu.DepthTarget) {
	r.free(t.FBO)
	r.free(t.Texture)
	r.record(Call{Op: OpDeleteDepthTarget, Handle: t.FBO})
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record(Call{Op: OpViewport, Rect: [4]int32{x, y, width, height}})
}

func (r *Recorder) SetClearColor(red, green, blue float32) {
	r.record(Call{Op: OpSetClearColor, Vec: [3]float32{red, green, blue}})
}

func (r *Recorder) Clear(mask uint32) {
	r.record(Call{Op: OpClear, Mask: mask})
}

func (r *Recorder) EnableDepthTest() {
	r.record(Call{Op: OpEnableDepthTest})
}

func (r *Recorder) EnableCulling(face gpu.Face) {
	r.record(Call{Op: OpEnableCulling, Face: face})
}

var _ gpu.Device = (*Recorder)(nil)
