//go:build linux && !cgo

package halgpu

import (
	"github.com/gogpu/gputypes"

	_ "github.com/gogpu/wgpu/hal/gles"
)

func init() {
	register("gles", gputypes.BackendGL)
}
