package glyphlab

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 float32 matrix stored column-major, matching the memory
// layout of WGSL mat4x4<f32> and glUniformMatrix4fv with transpose=false.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection mapping the box
// [left,right] x [bottom,top] x [near,far] to OpenGL clip space.
//
// The z range is irrelevant for 2D drawing; all vertices have z = 0.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// Screen returns the projection used for a framebuffer of the given size:
// Ortho(0, width, 0, height, -1, 1).
func Screen(width, height int) Mat4 {
	return Ortho(0, float32(width), 0, float32(height), -1, 1)
}

// Apply transforms the point (x, y, 0, 1) and returns clip-space x and y.
func (m Mat4) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[4]*p.Y + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[13],
	}
}

// Bytes returns the matrix as 64 little-endian bytes, column-major.
func (m Mat4) Bytes() []byte {
	buf := make([]byte, 64)
	for i, f := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
