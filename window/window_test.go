package window

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Title == "" || cfg.API != APINone {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if _, err := New(Config{Width: 0, Height: 10}); err == nil {
		t.Error("New with zero width succeeded")
	}
}

func TestClosedWindow(t *testing.T) {
	var w Window
	if !w.ShouldClose() {
		t.Error("ShouldClose on closed window = false")
	}
	if wd, ht := w.FramebufferSize(); wd != 0 || ht != 0 {
		t.Errorf("FramebufferSize = %dx%d", wd, ht)
	}
	if d, h := w.NativeHandle(); d != 0 || h != 0 {
		t.Errorf("NativeHandle = %d, %d", d, h)
	}
	if got := w.ScaleFactor(); got != 1 {
		t.Errorf("ScaleFactor = %v", got)
	}
	w.Close()
	w.SwapBuffers()
	w.MakeContextCurrent()
}

func TestAPIString(t *testing.T) {
	for api, want := range map[API]string{APINone: "none", APIOpenGL: "opengl", API(7): "API(7)"} {
		if got := api.String(); got != want {
			t.Errorf("API(%d).String() = %q, want %q", int(api), got, want)
		}
	}
}

func TestEventsFanOut(t *testing.T) {
	var e events
	var presses, releases, resizes int
	for range 2 {
		e.OnKeyPress(func(gpucontext.Key, gpucontext.Modifiers) { presses++ })
		e.OnResize(func(int, int) { resizes++ })
	}
	e.OnKeyRelease(func(gpucontext.Key, gpucontext.Modifiers) { releases++ })

	e.emitKey(true, gpucontext.KeyA, 0)
	e.emitKey(false, gpucontext.KeyA, 0)
	e.emitResize(10, 10)
	e.emitScroll(0, 1) // no listeners

	if presses != 2 || releases != 1 || resizes != 2 {
		t.Errorf("presses, releases, resizes = %d, %d, %d; want 2, 1, 2", presses, releases, resizes)
	}
}
