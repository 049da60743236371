//go:build windows && cgo

package window

import "unsafe"

// NativeHandle returns a zero display and the HWND.
func (w *Window) NativeHandle() (display, window uintptr) {
	if w.win == nil {
		return 0, 0
	}
	return 0, uintptr(unsafe.Pointer(w.win.GetWin32Window()))
}
