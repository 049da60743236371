//go:build cgo

package main

import (
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/gfx/glgpu"
)

// openBackend returns the named backend. The GL backend gets debug output
// when verbose is set.
func openBackend(name string, verbose bool) (gfx.GraphicsBackend, error) {
	if name == "gl" && verbose {
		return glgpu.New(glgpu.WithDebug()), nil
	}
	return gfx.Open(name)
}
