package gpu

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/engine/mesh"
	"github.com/Faultbox/shadowmesh/internal/logger"
	"github.com/Faultbox/shadowmesh/pkg/math"
)

// vertexSize is the byte stride of mesh.Vertex.
const vertexSize = int32(unsafe.Sizeof(mesh.Vertex{}))

// ErrIncompleteFramebuffer is returned when a depth target cannot be built.
var ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")

// OpenGL is the Device backed by the current OpenGL 4.1 core context.
type OpenGL struct{}

// NewOpenGL loads the GL function pointers. It must be called after the
// window has made its context current.
func NewOpenGL() (*OpenGL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.DepthFunc(gl.LESS)
	return &OpenGL{}, nil
}

// CreateProgram compiles both stages and links them.
func (*OpenGL) CreateProgram(vertexSrc, fragmentSrc string) (Handle, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	return Handle(program), nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, gl.GoStr(&log[0]))
	}

	return shader, nil
}

func (*OpenGL) UniformLocation(program Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (*OpenGL) UseProgram(program Handle) {
	gl.UseProgram(uint32(program))
}

func (*OpenGL) DeleteProgram(program Handle) {
	if program != 0 {
		gl.DeleteProgram(uint32(program))
	}
}

// UniformMatrix4 uploads m without transposing; the row-major,
// translation-in-last-row layout already matches GL's column-major order.
func (*OpenGL) UniformMatrix4(location int32, m *math.Matrix) {
	gl.UniformMatrix4fv(location, 1, false, m.Ptr())
}

func (*OpenGL) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (*OpenGL) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

// UploadMesh creates a VAO with interleaved position/normal/texcoord
// attributes at locations 0, 1 and 2.
func (*OpenGL) UploadMesh(m *mesh.Mesh) (MeshBuffers, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return MeshBuffers{}, errors.New("empty mesh")
	}

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexSize), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexSize, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	return MeshBuffers{
		VAO:        Handle(vao),
		VBO:        Handle(vbo),
		EBO:        Handle(ebo),
		IndexCount: int32(len(m.Indices)),
	}, nil
}

func (*OpenGL) DrawMesh(b MeshBuffers) {
	gl.BindVertexArray(uint32(b.VAO))
	gl.DrawElements(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (*OpenGL) DeleteMesh(b MeshBuffers) {
	if b.VAO != 0 {
		vao := uint32(b.VAO)
		gl.DeleteVertexArrays(1, &vao)
	}
	for _, h := range []Handle{b.VBO, b.EBO} {
		if h != 0 {
			buf := uint32(h)
			gl.DeleteBuffers(1, &buf)
		}
	}
}

// UploadTexture creates a mipmapped, repeating RGBA8 texture.
func (*OpenGL) UploadTexture(img *image.RGBA) (Handle, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, errors.New("empty image")
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[img.PixOffset(b.Min.X, b.Min.Y)]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return Handle(tex), nil
}

func (*OpenGL) BindTexture(unit uint32, tex Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (*OpenGL) DeleteTexture(tex Handle) {
	if tex != 0 {
		t := uint32(tex)
		gl.DeleteTextures(1, &t)
	}
}

// CreateDepthTarget builds a square DEPTH_COMPONENT24 target set up for
// sampler2DShadow lookups. Samples outside the light frustum read as lit.
func (*OpenGL) CreateDepthTarget(resolution int32) (DepthTarget, error) {
	var fbo, tex uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, tex, 0)

	// Depth only
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteTextures(1, &tex)
		return DepthTarget{}, fmt.Errorf("%w: status 0x%x", ErrIncompleteFramebuffer, status)
	}

	return DepthTarget{FBO: Handle(fbo), Texture: Handle(tex), Resolution: resolution}, nil
}

// BindFramebuffer binds fbo; 0 is the window's framebuffer.
func (*OpenGL) BindFramebuffer(fbo Handle) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fbo))
}

func (*OpenGL) DeleteDepthTarget(t DepthTarget) {
	if t.FBO != 0 {
		fbo := uint32(t.FBO)
		gl.DeleteFramebuffers(1, &fbo)
	}
	if t.Texture != 0 {
		tex := uint32(t.Texture)
		gl.DeleteTextures(1, &tex)
	}
}

func (*OpenGL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*OpenGL) SetClearColor(r, g, b float32) {
	gl.ClearColor(r, g, b, 1.0)
}

func (*OpenGL) Clear(mask uint32) {
	var bits uint32
	if mask&ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (*OpenGL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (*OpenGL) EnableCulling(face Face) {
	gl.Enable(gl.CULL_FACE)
	if face == CullFront {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
}

var _ Device = (*OpenGL)(nil)
