//go:build linux && !cgo

package window

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gpucontext"
)

var (
	// ErrNoDisplay is returned when no X server can be reached.
	ErrNoDisplay = errors.New("window: cannot open X display (is DISPLAY set?)")

	// ErrNoOpenGL is returned for APIOpenGL windows in binaries built
	// without cgo, which carry no OpenGL loader.
	ErrNoOpenGL = errors.New("window: OpenGL windows need a cgo build")
)

// Window is a plain Xlib window driven through libX11 without cgo. It has
// no client API context; the HAL backends create their surface from
// NativeHandle. It satisfies gfx.Target, gpucontext.WindowProvider and
// gpucontext.EventSource.
type Window struct {
	xstate

	cfg     Config
	display uintptr
	win     uintptr
}

var (
	_ gfx.GLTarget              = (*Window)(nil)
	_ gpucontext.WindowProvider = (*Window)(nil)
	_ gpucontext.EventSource    = (*Window)(nil)
)

// New connects to the X server named by $DISPLAY and creates a window. It
// locks the calling goroutine to its OS thread.
func New(cfg Config) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.API == APIOpenGL {
		return nil, ErrNoOpenGL
	}
	if err := loadXlib(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()

	var display uintptr
	var name unsafe.Pointer
	if err := xOpenDisplay.call(unsafe.Pointer(&display), unsafe.Pointer(&name)); err != nil {
		return nil, err
	}
	if display == 0 {
		return nil, ErrNoDisplay
	}

	var screen int32
	var root, black uintptr
	_ = xDefaultScreen.call(unsafe.Pointer(&screen), unsafe.Pointer(&display))
	_ = xRootWindow.call(unsafe.Pointer(&root), unsafe.Pointer(&display), unsafe.Pointer(&screen))
	_ = xBlackPixel.call(unsafe.Pointer(&black), unsafe.Pointer(&display), unsafe.Pointer(&screen))

	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		var dw, dh int32
		_ = xDisplayWidth.call(unsafe.Pointer(&dw), unsafe.Pointer(&display), unsafe.Pointer(&screen))
		_ = xDisplayHeight.call(unsafe.Pointer(&dh), unsafe.Pointer(&display), unsafe.Pointer(&screen))
		if dw > 0 && dh > 0 {
			width, height = int(dw), int(dh)
		}
	}

	var x, y int32
	w32, h32 := uint32(width), uint32(height) //nolint:gosec // validated positive
	var borderWidth uint32
	var win uintptr
	err := xCreateSimpleWindow.call(unsafe.Pointer(&win),
		unsafe.Pointer(&display), unsafe.Pointer(&root),
		unsafe.Pointer(&x), unsafe.Pointer(&y),
		unsafe.Pointer(&w32), unsafe.Pointer(&h32), unsafe.Pointer(&borderWidth),
		unsafe.Pointer(&black), unsafe.Pointer(&black))
	if err != nil || win == 0 {
		_ = xCloseDisplay.call(nil, unsafe.Pointer(&display))
		if err == nil {
			err = errors.New("window: XCreateSimpleWindow failed")
		}
		return nil, err
	}

	w := &Window{cfg: cfg, display: display, win: win}
	w.width, w.height = width, height
	w.lookup = w.lookupKey

	w.storeName(cfg.Title)
	mask := uintptr(xEventMask)
	_ = xSelectInput.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&w.win), unsafe.Pointer(&mask))

	w.wmDelete = w.atom("WM_DELETE_WINDOW")
	if w.wmDelete != 0 {
		protocols := [1]uintptr{w.wmDelete}
		p := unsafe.Pointer(&protocols[0])
		count := int32(1)
		_ = xSetWMProtocols.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&w.win), unsafe.Pointer(&p), unsafe.Pointer(&count))
	}
	if cfg.Fullscreen {
		w.requestFullscreen()
	}
	if !cfg.Hidden {
		_ = xMapWindow.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&w.win))
	}
	w.flush()

	glyphlab.Logger().Info("window: created",
		"title", cfg.Title, "width", width, "height", height, "api", cfg.API, "fullscreen", cfg.Fullscreen)
	return w, nil
}

func (w *Window) atom(name string) uintptr {
	cname := cstring(name)
	p := unsafe.Pointer(&cname[0])
	var onlyIfExists int32
	var a uintptr
	if err := xInternAtom.call(unsafe.Pointer(&a), unsafe.Pointer(&w.display), unsafe.Pointer(&p), unsafe.Pointer(&onlyIfExists)); err != nil {
		glyphlab.Logger().Warn("window: intern atom failed", "atom", name, "err", err)
		return 0
	}
	return a
}

func (w *Window) storeName(title string) {
	ctitle := cstring(title)
	p := unsafe.Pointer(&ctitle[0])
	_ = xStoreName.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&w.win), unsafe.Pointer(&p))
}

// requestFullscreen sets _NET_WM_STATE before the window is mapped, which
// EWMH window managers honor as the initial state.
func (w *Window) requestFullscreen() {
	state, full := w.atom("_NET_WM_STATE"), w.atom("_NET_WM_STATE_FULLSCREEN")
	if state == 0 || full == 0 {
		return
	}
	const xaAtom, propModeReplace = 4, 0
	typ := uintptr(xaAtom)
	format, mode, n := int32(32), int32(propModeReplace), int32(1)
	data := [1]uintptr{full}
	p := unsafe.Pointer(&data[0])
	_ = xChangeProperty.call(nil,
		unsafe.Pointer(&w.display), unsafe.Pointer(&w.win),
		unsafe.Pointer(&state), unsafe.Pointer(&typ),
		unsafe.Pointer(&format), unsafe.Pointer(&mode),
		unsafe.Pointer(&p), unsafe.Pointer(&n))
}

func (w *Window) flush() {
	_ = xFlush.call(nil, unsafe.Pointer(&w.display))
}

// lookupKey resolves the unshifted keysym and the Latin-1 text of a key
// event.
func (w *Window) lookupKey(ev *xevent) (uint64, string) {
	evp := unsafe.Pointer(ev)
	var index int32
	var sym uintptr
	_ = xLookupKeysym.call(unsafe.Pointer(&sym), unsafe.Pointer(&evp), unsafe.Pointer(&index))

	var buf [32]byte
	bufp := unsafe.Pointer(&buf[0])
	size := int32(len(buf))
	var none unsafe.Pointer
	var n int32
	_ = xLookupString.call(unsafe.Pointer(&n),
		unsafe.Pointer(&evp), unsafe.Pointer(&bufp), unsafe.Pointer(&size),
		unsafe.Pointer(&none), unsafe.Pointer(&none))
	if n < 0 || int(n) > len(buf) {
		n = 0
	}
	return uint64(sym), latin1(buf[:n])
}

// Config returns the configuration the window was created with.
func (w *Window) Config() Config { return w.cfg }

// FramebufferSize returns the drawable size in pixels, as last reported
// by the X server.
func (w *Window) FramebufferSize() (width, height int) {
	if w.display == 0 {
		return 0, 0
	}
	return w.width, w.height
}

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (width, height int) { return w.FramebufferSize() }

// ScaleFactor implements gpucontext.WindowProvider. The core protocol has
// no per-window scale, so it is always 1.
func (w *Window) ScaleFactor() float64 { return 1 }

// RequestRedraw implements gpucontext.WindowProvider. PollEvents never
// blocks, so there is no loop to wake.
func (w *Window) RequestRedraw() {}

// NativeHandle returns the Xlib Display* and Window.
func (w *Window) NativeHandle() (display, window uintptr) {
	if w.display == 0 {
		return 0, 0
	}
	return w.display, w.win
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.display == 0 || w.closing }

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(v bool) { w.closing = v }

// PollEvents drains the event queue without blocking and runs the
// callbacks.
func (w *Window) PollEvents() {
	if w.display == 0 {
		return
	}
	for {
		var n int32
		if err := xPending.call(unsafe.Pointer(&n), unsafe.Pointer(&w.display)); err != nil || n <= 0 {
			return
		}
		for range n {
			var ev xevent
			evp := unsafe.Pointer(&ev)
			if err := xNextEvent.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&evp)); err != nil {
				glyphlab.Logger().Warn("window: XNextEvent failed", "err", err)
				return
			}
			w.handle(&ev)
		}
	}
}

// MakeContextCurrent does nothing; Xlib windows carry no OpenGL context.
func (w *Window) MakeContextCurrent() {}

// SwapBuffers does nothing; Xlib windows carry no OpenGL context.
func (w *Window) SwapBuffers() {}

// Close destroys the window and closes the display connection. It is
// idempotent.
func (w *Window) Close() {
	if w.display == 0 {
		return
	}
	if !w.destroyed {
		_ = xDestroyWindow.call(nil, unsafe.Pointer(&w.display), unsafe.Pointer(&w.win))
	}
	_ = xCloseDisplay.call(nil, unsafe.Pointer(&w.display))
	w.display, w.win = 0, 0
	glyphlab.Logger().Info("window: closed", "title", w.cfg.Title)
}
