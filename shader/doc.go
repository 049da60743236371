// Package shader holds the text shaders shared by every backend.
//
// The WGSL source is the reference: HAL backends consume it directly and
// Translate turns it into SPIR-V, GLSL, HLSL or MSL through gogpu/naga.
// The OpenGL backend uses the hand-written GLSL 330 pair, which follows
// the same vertex layout and the same solid-quad convention:
//
//	location 0  position  vec2
//	location 1  uv        vec2  (uv.x < 0 draws at full coverage)
//	location 2  color     vec4
package shader
