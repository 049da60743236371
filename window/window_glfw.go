//go:build cgo

package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gpucontext"
)

// ErrNoMonitor is returned when a fullscreen window is requested and no
// monitor is connected.
var ErrNoMonitor = errors.New("window: no monitor for fullscreen")

// Window is a GLFW window. It satisfies gfx.GLTarget,
// gpucontext.WindowProvider and gpucontext.EventSource.
type Window struct {
	events

	win *glfw.Window
	cfg Config
}

var (
	_ gfx.GLTarget              = (*Window)(nil)
	_ gpucontext.WindowProvider = (*Window)(nil)
	_ gpucontext.EventSource    = (*Window)(nil)
)

// New initializes GLFW and creates a window. It locks the calling
// goroutine to its OS thread.
func New(cfg Config) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	switch cfg.API {
	case APIOpenGL:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		if cfg.Debug {
			glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
		}
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		var err error
		if width, height, err = fullscreenSize(monitor, width, height); err != nil {
			glfw.Terminate()
			return nil, err
		}
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}
	w := &Window{win: win, cfg: cfg}
	if cfg.API == APIOpenGL {
		win.MakeContextCurrent()
		glfw.SwapInterval(1)
	}
	w.installCallbacks()

	fw, fh := win.GetFramebufferSize()
	glyphlab.Logger().Info("window: created",
		"title", cfg.Title, "width", fw, "height", fh, "api", cfg.API, "fullscreen", cfg.Fullscreen)
	return w, nil
}

// fullscreenSize returns the current video mode of monitor, or the
// requested size when the mode is unknown.
func fullscreenSize(monitor *glfw.Monitor, width, height int) (int, int, error) {
	if monitor == nil {
		return 0, 0, ErrNoMonitor
	}
	if mode := monitor.GetVideoMode(); mode != nil {
		return mode.Width, mode.Height, nil
	}
	return width, height, nil
}

func (w *Window) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k, m := mapKey(key), mapMods(mods)
		switch action {
		case glfw.Press, glfw.Repeat:
			if action == glfw.Press && k == gpucontext.KeyEscape {
				w.win.SetShouldClose(true)
			}
			w.emitKey(true, k, m)
		case glfw.Release:
			w.emitKey(false, k, m)
		}
	})
	w.win.SetCharCallback(func(_ *glfw.Window, r rune) {
		w.emitText(string(r))
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.emitMouseMove(x, y)
	})
	w.win.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := mapButton(button)
		if !ok {
			return
		}
		x, y := gw.GetCursorPos()
		w.emitButton(action != glfw.Release, b, x, y)
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.emitScroll(dx, dy)
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		glyphlab.Logger().Debug("window: framebuffer resized", "width", width, "height", height)
		w.emitResize(width, height)
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.emitFocus(focused)
	})
}

// Config returns the configuration the window was created with.
func (w *Window) Config() Config { return w.cfg }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// Size implements gpucontext.WindowProvider. It returns the framebuffer
// size in pixels.
func (w *Window) Size() (width, height int) { return w.FramebufferSize() }

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 {
	if w.win == nil {
		return 1
	}
	x, _ := w.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// RequestRedraw implements gpucontext.WindowProvider by waking the event
// loop.
func (w *Window) RequestRedraw() {
	if w.win != nil {
		glfw.PostEmptyEvent()
	}
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win == nil || w.win.ShouldClose() }

// SetShouldClose sets the close flag.
func (w *Window) SetShouldClose(v bool) {
	if w.win != nil {
		w.win.SetShouldClose(v)
	}
}

// PollEvents processes pending events and runs the callbacks.
func (w *Window) PollEvents() {
	if w.win != nil {
		glfw.PollEvents()
	}
}

// MakeContextCurrent makes the window's OpenGL context current. It does
// nothing for APINone windows.
func (w *Window) MakeContextCurrent() {
	if w.win != nil && w.cfg.API == APIOpenGL {
		w.win.MakeContextCurrent()
	}
}

// SwapBuffers presents the OpenGL back buffer. It does nothing for APINone
// windows.
func (w *Window) SwapBuffers() {
	if w.win != nil && w.cfg.API == APIOpenGL {
		w.win.SwapBuffers()
	}
}

// Close destroys the window and terminates GLFW. It is idempotent.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	glyphlab.Logger().Info("window: closed", "title", w.cfg.Title)
}
