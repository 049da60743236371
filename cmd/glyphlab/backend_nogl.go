//go:build !cgo

package main

import "github.com/gogpu/glyphlab/gfx"

// openBackend returns the named backend. Builds without cgo have no GL
// backend, so verbose changes nothing here.
func openBackend(name string, _ bool) (gfx.GraphicsBackend, error) {
	return gfx.Open(name)
}
