//go:build linux && !wayland && cgo

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the X11 Display* and Window.
func (w *Window) NativeHandle() (display, window uintptr) {
	if w.win == nil {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(glfw.GetX11Display())), uintptr(w.win.GetX11Window())
}
