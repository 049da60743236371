// Package halgpu implements gfx.GraphicsBackend on the gogpu/wgpu
// hardware abstraction layer.
//
// Importing the package registers one backend per HAL compiled for the
// platform: "vulkan" and "software" everywhere, "gles" on Linux and
// Windows, "dx12" on Windows and "metal" on macOS. The HAL loaders use
// goffi, which cannot be linked into cgo binaries on Linux and macOS, so
// there the variants are registered only when building with
// CGO_ENABLED=0.
//
// Bring-up follows the usual WebGPU order: instance, adapter (discrete,
// then integrated, then whatever is left), device and queue, surface
// configured for BGRA8Unorm with FIFO presentation. Headless targets get an
// offscreen color texture instead of a surface.
//
// A frame acquires the surface image in BeginFrame, collects Draw calls in
// a CPU-side list and records the render pass in Present. Vertex data
// for the whole frame is uploaded once; a change of projection inside a
// frame splits the pass so each run sees its own uniform. Headless
// frames can be read back with ReadPixels.
package halgpu
