//go:build !cgo && !linux

package window

import (
	"errors"

	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gpucontext"
)

// ErrUnsupported is returned by New in builds that carry no window system.
var ErrUnsupported = errors.New("window: no window system in this build (rebuild with CGO_ENABLED=1)")

// Window is never created in builds without cgo outside Linux. Its zero
// value behaves as a closed window.
type Window struct {
	events

	cfg Config
}

var (
	_ gfx.GLTarget              = (*Window)(nil)
	_ gpucontext.WindowProvider = (*Window)(nil)
	_ gpucontext.EventSource    = (*Window)(nil)
)

// New validates cfg and returns ErrUnsupported.
func New(cfg Config) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

// Config returns the configuration the window was created with.
func (w *Window) Config() Config { return w.cfg }

// FramebufferSize returns 0, 0.
func (w *Window) FramebufferSize() (width, height int) { return 0, 0 }

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (width, height int) { return 0, 0 }

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 { return 1 }

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() {}

// NativeHandle returns zero handles.
func (w *Window) NativeHandle() (display, window uintptr) { return 0, 0 }

// ShouldClose always reports true.
func (w *Window) ShouldClose() bool { return true }

// SetShouldClose does nothing.
func (w *Window) SetShouldClose(bool) {}

// PollEvents does nothing.
func (w *Window) PollEvents() {}

// MakeContextCurrent does nothing.
func (w *Window) MakeContextCurrent() {}

// SwapBuffers does nothing.
func (w *Window) SwapBuffers() {}

// Close does nothing.
func (w *Window) Close() {}
