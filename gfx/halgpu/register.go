package halgpu

import (
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gputypes"
)

// The wgpu HAL loaders for Vulkan, GLES and Metal call into the system
// libraries through goffi, which refuses to link into cgo binaries on
// Linux and macOS. There the variants are registered only in
// CGO_ENABLED=0 builds; cgo builds get the "gl" backend instead.

// register adds a HAL variant to the gfx registry under name.
func register(name string, variant gputypes.Backend) {
	gfx.Register(name, func() gfx.GraphicsBackend {
		return New(name, variant)
	})
}
