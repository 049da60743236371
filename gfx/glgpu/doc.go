// Package glgpu implements gfx.GraphicsBackend on OpenGL 4.1 core through
// go-gl, registered as "gl".
//
// The OpenGL context belongs to the window, so the backend needs a
// gfx.GLTarget and does its bring-up in CreateSurface once the context is
// current. Draw calls execute immediately; Present swaps buffers. Every
// step checks glGetError and reports the first error as *status.GLError.
//
// go-gl and GLFW need cgo, so the backend exists only in cgo builds.
// Binaries built with CGO_ENABLED=0 carry the HAL backends instead.
//
// When built with debug enabled on a 4.3 or KHR_debug context, driver
// messages are forwarded to the glyphlab logger.
package glgpu
