package halgpu

import (
	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/wgpu/hal/dx12"
	_ "github.com/gogpu/wgpu/hal/gles"
)

func init() {
	register("dx12", gputypes.BackendDX12)
	register("gles", gputypes.BackendGL)
}
