// Package window opens a native window and exposes it as a gfx.Target.
//
// The implementation depends on how the binary is built:
//
//   - With cgo, windows come from GLFW 3.3 on every platform. APIOpenGL
//     windows carry an OpenGL 4.1 core context for the "gl" backend.
//   - Without cgo on Linux, windows are plain Xlib windows opened through
//     libX11 at run time. This is the build the HAL backends need, since
//     their Vulkan and GLES loaders refuse cgo on Linux and macOS.
//     APIOpenGL is rejected.
//   - Without cgo elsewhere, New returns ErrUnsupported.
//
// Windows must be driven from the main thread. Call runtime.LockOSThread
// from an init function in package main, then create the window, poll
// events and render from main.
//
// A window created with APINone has no client API context and is meant for
// the HAL backends, which create their own surface from NativeHandle.
package window
