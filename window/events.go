package window

import "github.com/gogpu/gpucontext"

// events holds the registered input callbacks. Both window implementations
// embed it, so the gpucontext.EventSource methods live here once.
type events struct {
	keyPress   []func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease []func(gpucontext.Key, gpucontext.Modifiers)
	textInput  []func(string)
	mouseMove  []func(x, y float64)
	mouseDown  []func(gpucontext.MouseButton, float64, float64)
	mouseUp    []func(gpucontext.MouseButton, float64, float64)
	scroll     []func(dx, dy float64)
	resize     []func(width, height int)
	focus      []func(bool)
}

func (e *events) emitKey(pressed bool, k gpucontext.Key, m gpucontext.Modifiers) {
	fns := e.keyRelease
	if pressed {
		fns = e.keyPress
	}
	for _, fn := range fns {
		fn(k, m)
	}
}

func (e *events) emitText(s string) {
	for _, fn := range e.textInput {
		fn(s)
	}
}

func (e *events) emitMouseMove(x, y float64) {
	for _, fn := range e.mouseMove {
		fn(x, y)
	}
}

func (e *events) emitButton(pressed bool, b gpucontext.MouseButton, x, y float64) {
	fns := e.mouseUp
	if pressed {
		fns = e.mouseDown
	}
	for _, fn := range fns {
		fn(b, x, y)
	}
}

func (e *events) emitScroll(dx, dy float64) {
	for _, fn := range e.scroll {
		fn(dx, dy)
	}
}

func (e *events) emitResize(width, height int) {
	for _, fn := range e.resize {
		fn(width, height)
	}
}

func (e *events) emitFocus(focused bool) {
	for _, fn := range e.focus {
		fn(focused)
	}
}

// OnKeyPress implements gpucontext.EventSource. Repeats are reported as
// presses.
func (e *events) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	e.keyPress = append(e.keyPress, fn)
}

// OnKeyRelease implements gpucontext.EventSource.
func (e *events) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	e.keyRelease = append(e.keyRelease, fn)
}

// OnTextInput implements gpucontext.EventSource.
func (e *events) OnTextInput(fn func(string)) { e.textInput = append(e.textInput, fn) }

// OnMouseMove implements gpucontext.EventSource.
func (e *events) OnMouseMove(fn func(x, y float64)) { e.mouseMove = append(e.mouseMove, fn) }

// OnMousePress implements gpucontext.EventSource.
func (e *events) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	e.mouseDown = append(e.mouseDown, fn)
}

// OnMouseRelease implements gpucontext.EventSource.
func (e *events) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	e.mouseUp = append(e.mouseUp, fn)
}

// OnScroll implements gpucontext.EventSource.
func (e *events) OnScroll(fn func(dx, dy float64)) { e.scroll = append(e.scroll, fn) }

// OnResize implements gpucontext.EventSource. Sizes are framebuffer pixels.
func (e *events) OnResize(fn func(width, height int)) { e.resize = append(e.resize, fn) }

// OnFocus implements gpucontext.EventSource.
func (e *events) OnFocus(fn func(bool)) { e.focus = append(e.focus, fn) }

// Neither GLFW 3.3 nor the core Xlib protocol deliver IME composition
// events.

// OnIMECompositionStart implements gpucontext.EventSource. It is never
// called.
func (e *events) OnIMECompositionStart(func()) {}

// OnIMECompositionUpdate implements gpucontext.EventSource. It is never
// called.
func (e *events) OnIMECompositionUpdate(func(gpucontext.IMEState)) {}

// OnIMECompositionEnd implements gpucontext.EventSource. It is never
// called.
func (e *events) OnIMECompositionEnd(func(string)) {}
