package gfx

import (
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/gpucontext"
)

// GraphicsBackend is a native graphics API.
//
// Methods are called from the thread that owns the window. A backend
// draws into one surface at a time; Draw calls between BeginFrame and
// Present are recorded in order and submitted by Present.
type GraphicsBackend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Init selects an adapter and creates the device and immediate queue.
	Init() error

	// CreateSurface attaches a presentable surface to target at the given
	// framebuffer size. Headless targets get an offscreen color texture.
	CreateSurface(target Target, width, height int) error

	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int) error

	// CreateTexture allocates a zero-initialized single-channel coverage
	// texture.
	CreateTexture(width, height int) (Texture, error)

	// BeginFrame acquires the next surface image and clears it.
	BeginFrame(clear glyphlab.Color) error

	// Draw records the batch as a triangle list sampling tex. A nil tex
	// binds a blank texture, which is enough for solid quads.
	Draw(batch *glyphlab.Batch, tex Texture, projection glyphlab.Mat4) error

	// Present submits the recorded work and presents the surface image.
	Present() error

	// Adapter describes the adapter selected by Init.
	Adapter() gpucontext.AdapterInfo

	// Close waits for the device to go idle and releases every object in
	// reverse creation order. Close is idempotent.
	Close()
}

// Texture is a single-channel coverage texture owned by a backend.
// It satisfies text.Texture so atlases can upload into it directly.
type Texture interface {
	Size() (width, height int)
	WriteRegion(x, y, width, height int, pix []byte) error
	Destroy()
}

// Target is what a surface is created for.
type Target interface {
	// NativeHandle returns the platform display connection and window
	// handle (X11 Display* and Window, wl_display* and wl_surface*,
	// 0 and HWND, 0 and NSWindow*).
	NativeHandle() (display, window uintptr)

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// GLTarget is a Target that owns an OpenGL context.
type GLTarget interface {
	Target
	MakeContextCurrent()
	SwapBuffers()
}

// Headless is an offscreen Target of a fixed size.
type Headless struct {
	Width, Height int
}

// NativeHandle returns zero handles.
func (Headless) NativeHandle() (display, window uintptr) { return 0, 0 }

// FramebufferSize returns the configured size.
func (h Headless) FramebufferSize() (width, height int) { return h.Width, h.Height }

// IsHeadless reports whether t has no native window.
func IsHeadless(t Target) bool {
	if _, ok := t.(Headless); ok {
		return true
	}
	if _, ok := t.(*Headless); ok {
		return true
	}
	_, w := t.NativeHandle()
	return w == 0
}
