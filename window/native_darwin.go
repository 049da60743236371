//go:build darwin && cgo

package window

// NativeHandle returns a zero display and the NSWindow*.
func (w *Window) NativeHandle() (display, window uintptr) {
	if w.win == nil {
		return 0, 0
	}
	return 0, uintptr(w.win.GetCocoaWindow())
}
