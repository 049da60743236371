package halgpu

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/text"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/google/go-cmp/cmp"
)

// window is a Target with a non-zero window handle.
type window struct{ w, h int }

func (window) NativeHandle() (uintptr, uintptr) { return 1, 2 }
func (t window) FramebufferSize() (int, int)    { return t.w, t.h }

// cpuTexture is a gfx.Texture that lives in system memory.
type cpuTexture struct {
	*text.ImageTexture
}

func (cpuTexture) Destroy() {}

func newNoop(t *testing.T, opts ...Option) *Backend {
	t.Helper()
	b := NewWithAPI("noop", noop.API{}, opts...)
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func newHeadless(t *testing.T, w, h int) *Backend {
	t.Helper()
	b := newNoop(t)
	if err := b.CreateSurface(gfx.Headless{Width: w, Height: h}, w, h); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	return b
}

func readBuffer(t *testing.T, b *Backend, buf hal.Buffer, size int) []byte {
	t.Helper()
	m, err := b.Device().MapBuffer(buf, 0, uint64(size))
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	return slices.Clone(unsafe.Slice((*byte)(m.Ptr), size))
}

func TestInit(t *testing.T) {
	b := newNoop(t)
	if b.Device() == nil || b.Queue() == nil {
		t.Fatal("Init() did not open a device")
	}
	want := gpucontext.AdapterInfo{Name: "Noop Adapter", Type: gpucontext.AdapterTypeUnknown}
	if diff := cmp.Diff(want, b.Adapter()); diff != "" {
		t.Errorf("Adapter() mismatch (-want +got):\n%s", diff)
	}
	if b.pipe == nil || b.blank == nil || b.uniformBuf == nil {
		t.Error("Init() did not create the pipeline objects")
	}
}

func TestInitUnknownVariant(t *testing.T) {
	b := New("missing", gputypes.Backend(99))
	defer b.Close()
	err := b.Init()
	if !errors.Is(err, hal.ErrBackendNotFound) {
		t.Fatalf("Init() error = %v, want %v", err, hal.ErrBackendNotFound)
	}
	var se *gfx.StepError
	if !errors.As(err, &se) || se.Step != "get backend" {
		t.Errorf("Init() error = %#v, want step %q", err, "get backend")
	}
}

func TestSelectAdapter(t *testing.T) {
	adapter := func(name string, dt gputypes.DeviceType) hal.ExposedAdapter {
		return hal.ExposedAdapter{Info: gputypes.AdapterInfo{Name: name, DeviceType: dt}}
	}
	all := []hal.ExposedAdapter{
		adapter("cpu", gputypes.DeviceTypeCPU),
		adapter("igpu", gputypes.DeviceTypeIntegratedGPU),
		adapter("dgpu", gputypes.DeviceTypeDiscreteGPU),
	}
	tests := []struct {
		name     string
		adapters []hal.ExposedAdapter
		index    int
		want     string
		wantErr  bool
	}{
		{"discrete first", all, -1, "dgpu", false},
		{"integrated next", all[:2], -1, "igpu", false},
		{"fallback", all[:1], -1, "cpu", false},
		{"forced index", all, 1, "igpu", false},
		{"index out of range", all, 3, "", true},
		{"none", nil, -1, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectAdapter(tt.adapters, tt.index)
			if tt.wantErr {
				if !errors.Is(err, gfx.ErrNoAdapter) {
					t.Errorf("selectAdapter() error = %v, want %v", err, gfx.ErrNoAdapter)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectAdapter() error = %v", err)
			}
			if got.Info.Name != tt.want {
				t.Errorf("selectAdapter() = %q, want %q", got.Info.Name, tt.want)
			}
		})
	}
}

func TestAdapterInfo(t *testing.T) {
	tests := []struct {
		in   gputypes.DeviceType
		want gpucontext.AdapterType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucontext.AdapterTypeDiscrete},
		{gputypes.DeviceTypeIntegratedGPU, gpucontext.AdapterTypeIntegrated},
		{gputypes.DeviceTypeCPU, gpucontext.AdapterTypeSoftware},
		{gputypes.DeviceTypeOther, gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		got := adapterInfo(gputypes.AdapterInfo{Name: "x", DeviceType: tt.in})
		if got.Type != tt.want || got.Name != "x" {
			t.Errorf("adapterInfo(%v) = %+v, want type %v", tt.in, got, tt.want)
		}
	}
}

func TestPickFormat(t *testing.T) {
	bgra, rgba := gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm
	if got := pickFormat([]gputypes.TextureFormat{rgba, bgra}, bgra); got != bgra {
		t.Errorf("pickFormat(supported) = %v, want %v", got, bgra)
	}
	if got := pickFormat([]gputypes.TextureFormat{rgba}, bgra); got != rgba {
		t.Errorf("pickFormat(unsupported) = %v, want %v", got, rgba)
	}
	if got := pickFormat(nil, bgra); got != bgra {
		t.Errorf("pickFormat(nil) = %v, want %v", got, bgra)
	}
}

func TestCreateSurfaceBeforeInit(t *testing.T) {
	b := NewWithAPI("noop", noop.API{})
	defer b.Close()
	if err := b.CreateSurface(gfx.Headless{Width: 8, Height: 8}, 8, 8); !errors.Is(err, gfx.ErrNotInitialized) {
		t.Errorf("CreateSurface() error = %v, want %v", err, gfx.ErrNotInitialized)
	}
}

func TestWindowSurface(t *testing.T) {
	b := newNoop(t)
	if err := b.CreateSurface(window{320, 200}, 320, 200); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	if b.surface == nil || b.offscreen != nil {
		t.Fatal("CreateSurface(window) did not create a surface")
	}
	if b.format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want BGRA8Unorm", b.format)
	}

	if err := b.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if b.pipe.format != b.format {
		t.Errorf("pipeline format = %v, want %v", b.pipe.format, b.format)
	}

	if err := b.Resize(640, 400); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if b.width != 640 || b.height != 400 {
		t.Errorf("size after Resize = %dx%d, want 640x400", b.width, b.height)
	}
	if _, err := b.ReadPixels(); !errors.Is(err, gfx.ErrUnsupportedTarget) {
		t.Errorf("ReadPixels(window) error = %v, want %v", err, gfx.ErrUnsupportedTarget)
	}
}

func TestResizeErrors(t *testing.T) {
	b := newNoop(t)
	if err := b.Resize(10, 10); !errors.Is(err, gfx.ErrNoSurface) {
		t.Errorf("Resize(no surface) error = %v, want %v", err, gfx.ErrNoSurface)
	}
	if err := b.CreateSurface(gfx.Headless{Width: 8, Height: 8}, 8, 8); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	if err := b.Resize(0, 10); !errors.Is(err, gfx.ErrInvalidSize) {
		t.Errorf("Resize(0, 10) error = %v, want %v", err, gfx.ErrInvalidSize)
	}
	if err := b.Resize(16, 4); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if b.offscreen == nil || b.width != 16 || b.height != 4 {
		t.Errorf("offscreen after Resize = %dx%d", b.width, b.height)
	}
}

func TestFrameUploads(t *testing.T) {
	b := newHeadless(t, 64, 32)
	tex, err := b.CreateTexture(16, 16)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := tex.WriteRegion(0, 0, 2, 2, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteRegion() error = %v", err)
	}

	var batch glyphlab.Batch
	batch.Quad(1, 2, 3, 4, glyphlab.White)
	proj := glyphlab.Screen(64, 32)

	if err := b.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := b.Draw(&batch, tex, proj); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := b.Draw(&batch, tex, proj); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := b.Draw(&batch, nil, proj); err != nil {
		t.Fatalf("Draw(nil) error = %v", err)
	}

	want := []drawCall{
		{tex: tex.(*Texture), projection: proj, first: 0, count: 12},
		{tex: b.blank, projection: proj, first: 12, count: 6},
	}
	if diff := cmp.Diff(want, b.frame.draws, cmp.AllowUnexported(drawCall{}), cmp.Comparer(func(x, y *Texture) bool { return x == y })); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}

	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if b.frame != nil {
		t.Error("Present() left the frame open")
	}

	data := batch.Bytes()
	wantVerts := slices.Concat(data, data, data)
	if got := readBuffer(t, b, b.vertexBuf, len(wantVerts)); !slices.Equal(got, wantVerts) {
		t.Error("vertex buffer does not hold the frame's vertices")
	}
	if got := readBuffer(t, b, b.uniformBuf, uniformSize); !slices.Equal(got, proj.Bytes()) {
		t.Error("uniform buffer does not hold the projection")
	}
	if b.lastSubmit == 0 {
		t.Error("Present() did not submit")
	}
}

func TestFrameErrors(t *testing.T) {
	b := newHeadless(t, 32, 32)
	var batch glyphlab.Batch
	batch.Quad(0, 0, 1, 1, glyphlab.White)

	if err := b.Draw(&batch, nil, glyphlab.Identity4()); !errors.Is(err, gfx.ErrNotInFrame) {
		t.Errorf("Draw() outside frame error = %v, want %v", err, gfx.ErrNotInFrame)
	}
	if err := b.Present(); !errors.Is(err, gfx.ErrNotInFrame) {
		t.Errorf("Present() outside frame error = %v, want %v", err, gfx.ErrNotInFrame)
	}

	if err := b.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := b.BeginFrame(glyphlab.Black); err == nil {
		t.Error("BeginFrame() twice succeeded")
	}
	if err := b.Draw(&batch, cpuTexture{text.NewImageTexture(4, 4)}, glyphlab.Identity4()); !errors.Is(err, gfx.ErrForeignTexture) {
		t.Errorf("Draw(foreign) error = %v, want %v", err, gfx.ErrForeignTexture)
	}

	other := newHeadless(t, 8, 8)
	otherTex, err := other.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := b.Draw(&batch, otherTex, glyphlab.Identity4()); !errors.Is(err, gfx.ErrForeignTexture) {
		t.Errorf("Draw(other backend) error = %v, want %v", err, gfx.ErrForeignTexture)
	}

	tex, err := b.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	tex.Destroy()
	tex.Destroy()
	if err := b.Draw(&batch, tex, glyphlab.Identity4()); err == nil {
		t.Error("Draw(destroyed) succeeded")
	}
	if err := tex.WriteRegion(0, 0, 1, 1, []byte{1}); err == nil {
		t.Error("WriteRegion(destroyed) succeeded")
	}
	if err := b.Draw(&glyphlab.Batch{}, nil, glyphlab.Identity4()); err != nil {
		t.Errorf("Draw(empty) error = %v", err)
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
}

func TestTextureDestroyRetiresFrame(t *testing.T) {
	b := newHeadless(t, 8, 8)
	var batch glyphlab.Batch
	batch.Quad(0, 0, 1, 1, glyphlab.White)

	frame := func(tex gfx.Texture) {
		t.Helper()
		if err := b.BeginFrame(glyphlab.Black); err != nil {
			t.Fatalf("BeginFrame() error = %v", err)
		}
		if err := b.Draw(&batch, tex, glyphlab.Identity4()); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
	}

	// Destroyed while its draw is recorded: released on the next frame.
	tex, err := b.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	own := tex.(*Texture)
	frame(tex)
	tex.Destroy()
	if own.texture == nil {
		t.Fatal("Destroy() during a frame released the texture immediately")
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	frame(nil)
	if own.texture != nil || len(b.dead) != 0 {
		t.Error("BeginFrame() did not release the deferred texture")
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	// Destroyed after Present: the submission is retired first.
	tex, err = b.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	frame(tex)
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if len(b.inflight) == 0 {
		t.Fatal("Present() left nothing in flight")
	}
	tex.Destroy()
	if len(b.inflight) != 0 {
		t.Error("Destroy() did not retire the outstanding submission")
	}
	if tex.(*Texture).texture != nil {
		t.Error("Destroy() outside a frame did not release the texture")
	}
}

func TestMaxVertices(t *testing.T) {
	b := newNoop(t, WithMaxVertices(6))
	if err := b.CreateSurface(gfx.Headless{Width: 8, Height: 8}, 8, 8); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	var batch glyphlab.Batch
	batch.Quad(0, 0, 1, 1, glyphlab.White)
	if err := b.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := b.Draw(&batch, nil, glyphlab.Identity4()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if err := b.Draw(&batch, nil, glyphlab.Identity4()); err == nil {
		t.Error("Draw() past the vertex cap succeeded")
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
}

func TestSplitPasses(t *testing.T) {
	a, c := glyphlab.Identity4(), glyphlab.Screen(10, 10)
	draws := []drawCall{
		{projection: a, count: 1},
		{projection: a, count: 2},
		{projection: c, count: 3},
		{projection: a, count: 4},
	}
	var got [][]uint32
	for _, pass := range splitPasses(draws) {
		var counts []uint32
		for _, d := range pass {
			counts = append(counts, d.count)
		}
		got = append(got, counts)
	}
	want := [][]uint32{{1, 2}, {3}, {4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitPasses() mismatch (-want +got):\n%s", diff)
	}
	if got := splitPasses(nil); len(got) != 0 {
		t.Errorf("splitPasses(nil) = %v, want none", got)
	}
}

func TestTextureRegionChecked(t *testing.T) {
	b := newHeadless(t, 8, 8)
	tex, err := b.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	var re *text.RegionError
	if err := tex.WriteRegion(2, 2, 4, 4, make([]byte, 16)); !errors.As(err, &re) {
		t.Errorf("WriteRegion(out of bounds) error = %v, want *text.RegionError", err)
	}
	if _, err := b.CreateTexture(0, 4); !errors.Is(err, gfx.ErrInvalidSize) {
		t.Errorf("CreateTexture(0, 4) error = %v, want %v", err, gfx.ErrInvalidSize)
	}
}

func TestReadPixels(t *testing.T) {
	b := newHeadless(t, 5, 3)
	img, err := b.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != 5 || got.Y != 3 {
		t.Errorf("ReadPixels() size = %v, want 5x3", got)
	}
}

func TestClose(t *testing.T) {
	b := NewWithAPI("noop", noop.API{})
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := b.CreateSurface(window{8, 8}, 8, 8); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	tex, err := b.CreateTexture(4, 4)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := b.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}

	b.Close()
	b.Close()

	if b.device != nil || b.surface != nil || b.instance != nil || b.pipe != nil {
		t.Error("Close() left objects alive")
	}
	if tex.(*Texture).texture != nil {
		t.Error("Close() did not destroy textures")
	}
	if err := b.BeginFrame(glyphlab.Black); !errors.Is(err, gfx.ErrClosed) {
		t.Errorf("BeginFrame() after Close error = %v, want %v", err, gfx.ErrClosed)
	}
	if err := b.Init(); !errors.Is(err, gfx.ErrClosed) {
		t.Errorf("Init() after Close error = %v, want %v", err, gfx.ErrClosed)
	}
}

// provider shares a noop device the way an application framework would.
type provider struct {
	device hal.Device
	queue  hal.Queue
}

func (p *provider) Device() gpucontext.Device             { return nil }
func (p *provider) Queue() gpucontext.Queue               { return nil }
func (p *provider) Adapter() gpucontext.Adapter           { return nil }
func (p *provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (p *provider) HalDevice() any                        { return p.device }
func (p *provider) HalQueue() any                         { return p.queue }

func (p *provider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "shared", Type: gpucontext.AdapterTypeIntegrated}
}

func TestSetDeviceProvider(t *testing.T) {
	host := newNoop(t)
	b := NewWithAPI("shared", noop.API{})
	defer b.Close()

	if err := b.SetDeviceProvider(&provider{device: host.Device(), queue: host.Queue()}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if b.Device() != host.Device() || !b.external {
		t.Error("Init() replaced the shared device")
	}
	want := gpucontext.AdapterInfo{Name: "shared", Type: gpucontext.AdapterTypeIntegrated}
	if diff := cmp.Diff(want, b.Adapter()); diff != "" {
		t.Errorf("Adapter() mismatch (-want +got):\n%s", diff)
	}
	if err := b.CreateSurface(gfx.Headless{Width: 4, Height: 4}, 4, 4); err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	if b.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want the provider's RGBA8Unorm", b.format)
	}

	if err := b.SetDeviceProvider(&provider{}); err == nil {
		t.Error("SetDeviceProvider() with nil HAL objects succeeded")
	}
}

// instanceProvider also shares the instance its device came from.
type instanceProvider struct {
	provider
	instance hal.Instance
}

func (p *instanceProvider) HalInstance() any { return p.instance }

func TestSetDeviceProviderWindowTarget(t *testing.T) {
	host := newNoop(t)

	headless := NewWithAPI("shared", noop.API{})
	defer headless.Close()
	if err := headless.SetDeviceProvider(&provider{device: host.Device(), queue: host.Queue()}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	if err := headless.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	err := headless.CreateSurface(window{8, 8}, 8, 8)
	if !errors.Is(err, gfx.ErrUnsupportedTarget) {
		t.Errorf("CreateSurface(window) without instance error = %v, want %v", err, gfx.ErrUnsupportedTarget)
	}
	if err := headless.CreateSurface(gfx.Headless{Width: 8, Height: 8}, 8, 8); err != nil {
		t.Errorf("CreateSurface(headless) error = %v", err)
	}

	shared := NewWithAPI("shared", noop.API{})
	if err := shared.SetDeviceProvider(&instanceProvider{
		provider: provider{device: host.Device(), queue: host.Queue()},
		instance: host.instance,
	}); err != nil {
		t.Fatalf("SetDeviceProvider() error = %v", err)
	}
	if err := shared.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := shared.CreateSurface(window{8, 8}, 8, 8); err != nil {
		t.Fatalf("CreateSurface(window) with instance error = %v", err)
	}
	if err := shared.BeginFrame(glyphlab.Black); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := shared.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	shared.Close()
	if host.instance == nil || host.device == nil {
		t.Error("closing the sharing backend released the host's objects")
	}
}

func TestContextWithAtlas(t *testing.T) {
	ctx, err := gfx.NewContext(NewWithAPI("noop", noop.API{}), gfx.Headless{Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	src, err := text.DefaultFontSource()
	if err != nil {
		t.Fatalf("DefaultFontSource() error = %v", err)
	}
	atlas, err := text.BuildAtlas(src, 16, ctx)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	if _, ok := atlas.Texture.(*Texture); !ok {
		t.Fatalf("atlas texture is %T, want *Texture", atlas.Texture)
	}

	var batch glyphlab.Batch
	atlas.DrawText(&batch, "glyphlab", glyphlab.V2(10, 200), glyphlab.White)
	batch.Quad(0, 0, 320, 20, glyphlab.Hex(0x336699))

	for range 2 {
		if err := ctx.Frame(glyphlab.Black); err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
		if err := ctx.Draw(&batch, atlas.Texture); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		if err := ctx.Present(); err != nil {
			t.Fatalf("Present() error = %v", err)
		}
	}
	if err := ctx.Resize(200, 100); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
}
