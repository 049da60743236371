//go:build !cgo || windows

package halgpu

import (
	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/wgpu/hal/software"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	register("vulkan", gputypes.BackendVulkan)
	register("software", gputypes.BackendEmpty)
}
