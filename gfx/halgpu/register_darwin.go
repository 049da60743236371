//go:build darwin && !cgo

package halgpu

import (
	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/wgpu/hal/metal"
)

func init() {
	register("metal", gputypes.BackendMetal)
}
