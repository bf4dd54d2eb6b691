// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DepthVertexShader transforms positions into light space for the shadow pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader writes depth only.
//
//go:embed depth.frag
var DepthFragmentShader string

// LitVertexShader is the vertex shader for the shaded main pass.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader applies ambient, diffuse and specular lighting attenuated
// by the shadow map.
//
//go:embed lit.frag
var LitFragmentShader string
