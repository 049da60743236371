//go:build linux && wayland && cgo

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the wl_display* and wl_surface*.
func (w *Window) NativeHandle() (display, window uintptr) {
	if w.win == nil {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(glfw.GetWaylandDisplay())), uintptr(unsafe.Pointer(w.win.GetWaylandWindow()))
}
