//go:build cgo

package glgpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/internal/status"
	"github.com/gogpu/gpucontext"
)

func init() {
	gfx.Register("gl", func() gfx.GraphicsBackend { return New() })
}

// Backend is a gfx.GraphicsBackend on an OpenGL 4.1 core context.
//
// All methods must be called on the thread that owns the context.
type Backend struct {
	cfg    config
	target gfx.GLTarget
	info   gpucontext.AdapterInfo
	width  int
	height int

	program uint32
	projLoc int32
	vao     uint32
	vbo     uint32
	vboSize int

	blank    *Texture
	textures map[*Texture]struct{}
	scratch  []byte

	inFrame bool
	closed  bool
}

var _ gfx.GraphicsBackend = (*Backend)(nil)

// New returns an uninitialized backend.
func New(opts ...Option) *Backend {
	b := &Backend{textures: make(map[*Texture]struct{})}
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// Name implements gfx.GraphicsBackend.
func (b *Backend) Name() string { return "gl" }

// Init implements gfx.GraphicsBackend. The device is the window's context,
// so there is nothing to open until CreateSurface.
func (b *Backend) Init() error {
	if b.closed {
		return gfx.ErrClosed
	}
	return nil
}

// Adapter implements gfx.GraphicsBackend. It is empty until CreateSurface
// has made the context current.
func (b *Backend) Adapter() gpucontext.AdapterInfo { return b.info }

// CreateSurface implements gfx.GraphicsBackend. target must be a
// gfx.GLTarget; its context is made current and the GL function pointers
// are loaded.
func (b *Backend) CreateSurface(target gfx.Target, width, height int) error {
	if b.closed {
		return gfx.ErrClosed
	}
	glt, ok := target.(gfx.GLTarget)
	if !ok || gfx.IsHeadless(target) {
		return gfx.Step("gl", "create surface", fmt.Errorf("%w: %T has no GL context", gfx.ErrUnsupportedTarget, target))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	if b.target != nil {
		b.release()
	}

	glt.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return gfx.Step("gl", "load functions", err)
	}
	b.target = glt

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	b.info = gpucontext.AdapterInfo{Name: renderer, Type: adapterType(vendor, renderer)}
	glyphlab.Logger().Info("glgpu: context current",
		"vendor", vendor, "renderer", renderer, "version", version,
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	major, minor, _ := parseVersion(version)
	if b.cfg.debug {
		b.enableDebug(major, minor)
	}

	if err := b.createProgram(); err != nil {
		return err
	}
	b.createBuffers()

	blank, err := b.newTexture(1, 1)
	if err != nil {
		return err
	}
	if err := blank.WriteRegion(0, 0, 1, 1, []byte{0xff}); err != nil {
		return err
	}
	b.blank = blank

	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height)) //nolint:gosec // validated positive
	return check("create surface")
}

// enableDebug turns on synchronous debug output and logs driver messages.
func (b *Backend) enableDebug(major, minor int) {
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	exts := make([]string, 0, n)
	for i := range uint32(n) { //nolint:gosec // GL count is non-negative
		exts = append(exts, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i)))
	}
	if !debugSupported(major, minor, exts) {
		glyphlab.Logger().Warn("glgpu: debug output unavailable", "version", fmt.Sprintf("%d.%d", major, minor))
		return
	}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
		log := glyphlab.Logger()
		msg := strings.TrimSpace(message)
		switch severity {
		case gl.DEBUG_SEVERITY_HIGH:
			log.Error("glgpu: driver", "id", id, "type", gltype, "source", source, "msg", msg)
		case gl.DEBUG_SEVERITY_MEDIUM:
			log.Warn("glgpu: driver", "id", id, "type", gltype, "source", source, "msg", msg)
		default:
			log.Debug("glgpu: driver", "id", id, "type", gltype, "source", source, "msg", msg)
		}
	}, nil)
}

func (b *Backend) createProgram() error {
	prog, err := linkProgram()
	if err != nil {
		return gfx.Step("gl", "link program", err)
	}
	b.program = prog
	b.projLoc = gl.GetUniformLocation(prog, gl.Str(projectionUniform))
	texLoc := gl.GetUniformLocation(prog, gl.Str(coverageUniform))
	gl.UseProgram(prog)
	gl.Uniform1i(texLoc, 0)
	return check("create program")
}

// createBuffers sets up the vertex array matching glyphlab.Vertex.
func (b *Backend) createBuffers() {
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	const stride = glyphlab.VertexStride
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 8)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 16)
}

// Resize implements gfx.GraphicsBackend. The default framebuffer follows
// the window, so only the viewport changes.
func (b *Backend) Resize(width, height int) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if b.target == nil {
		return gfx.ErrNoSurface
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	b.target.MakeContextCurrent()
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height)) //nolint:gosec // validated positive
	return check("resize")
}

// BeginFrame implements gfx.GraphicsBackend.
func (b *Backend) BeginFrame(clear glyphlab.Color) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if b.target == nil {
		return gfx.ErrNoSurface
	}
	b.target.MakeContextCurrent()
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	b.inFrame = true
	return check("clear")
}

// Draw implements gfx.GraphicsBackend. The batch is uploaded and drawn
// right away.
func (b *Backend) Draw(batch *glyphlab.Batch, tex gfx.Texture, projection glyphlab.Mat4) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if !b.inFrame {
		return gfx.ErrNotInFrame
	}
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	t := b.blank
	if tex != nil {
		own, ok := tex.(*Texture)
		if !ok || own.b != b {
			return gfx.ErrForeignTexture
		}
		if own.id == 0 {
			return fmt.Errorf("glgpu: draw with destroyed texture")
		}
		t = own
	}

	b.scratch = batch.AppendBytes(b.scratch[:0])
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.projLoc, 1, false, &projection[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(b.scratch) > b.vboSize {
		b.vboSize = len(b.scratch)
		gl.BufferData(gl.ARRAY_BUFFER, b.vboSize, gl.Ptr(b.scratch), gl.STREAM_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.scratch), gl.Ptr(b.scratch))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(batch.Len())) //nolint:gosec // vertex count fits int32
	return check("draw")
}

// Present implements gfx.GraphicsBackend.
func (b *Backend) Present() error {
	if b.closed {
		return gfx.ErrClosed
	}
	if !b.inFrame {
		return gfx.ErrNotInFrame
	}
	b.inFrame = false
	if err := check("present"); err != nil {
		return err
	}
	b.target.SwapBuffers()
	return nil
}

// Close implements gfx.GraphicsBackend. It deletes every GL object while
// the context is still current; the context itself belongs to the window.
func (b *Backend) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.target != nil {
		b.release()
		if err := check("close"); err != nil {
			glyphlab.Logger().Warn("glgpu: close", "err", err)
		}
	}
	glyphlab.Logger().Info("glgpu: closed")
}

func (b *Backend) release() {
	b.target.MakeContextCurrent()
	gl.Finish()
	for t := range b.textures {
		t.Destroy()
	}
	b.blank = nil
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo, b.vboSize = 0, 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
	b.target = nil
}

// check drains the GL error queue and reports the first error.
func check(op string) error {
	var first error
	for range 16 {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == nil {
			first = status.GL(op, code)
		}
	}
	return first
}
