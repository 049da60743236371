package gfx

import (
	"fmt"
	"slices"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/text"
)

// ContextOption configures a Context.
type ContextOption func(*contextConfig)

type contextConfig struct {
	width, height int
	projection    func(width, height int) glyphlab.Mat4
}

// WithSize overrides the initial surface size reported by the target.
func WithSize(width, height int) ContextOption {
	return func(c *contextConfig) {
		c.width, c.height = width, height
	}
}

// WithProjection replaces the default pixel projection, glyphlab.Screen.
func WithProjection(fn func(width, height int) glyphlab.Mat4) ContextOption {
	return func(c *contextConfig) {
		c.projection = fn
	}
}

// Context is an explicitly owned graphics context: one backend bound to
// one target. It is not safe for concurrent use.
type Context struct {
	backend GraphicsBackend
	target  Target

	width, height int
	projectionFn  func(width, height int) glyphlab.Mat4
	projection    glyphlab.Mat4

	textures []Texture
	inFrame  bool
	closed   bool
}

// NewContext initializes backend and creates its surface for target.
// On failure the backend is closed and the error names the failing step.
func NewContext(backend GraphicsBackend, target Target, opts ...ContextOption) (*Context, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}
	cfg := contextConfig{projection: glyphlab.Screen}
	cfg.width, cfg.height = target.FramebufferSize()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.width, cfg.height)
	}

	log := glyphlab.Logger()
	if err := backend.Init(); err != nil {
		backend.Close()
		return nil, err
	}
	info := backend.Adapter()
	log.Info("gfx: adapter selected", "backend", backend.Name(), "adapter", info.Name, "type", info.Type.String())

	if err := backend.CreateSurface(target, cfg.width, cfg.height); err != nil {
		backend.Close()
		return nil, err
	}
	log.Info("gfx: surface created", "backend", backend.Name(), "width", cfg.width, "height", cfg.height)

	c := &Context{
		backend:      backend,
		target:       target,
		width:        cfg.width,
		height:       cfg.height,
		projectionFn: cfg.projection,
	}
	c.projection = c.projectionFn(c.width, c.height)
	return c, nil
}

// Backend returns the backend owned by the context.
func (c *Context) Backend() GraphicsBackend {
	return c.backend
}

// Target returns the target the surface was created for.
func (c *Context) Target() Target {
	return c.target
}

// Size returns the current surface size.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// Projection returns the projection applied by Draw.
func (c *Context) Projection() glyphlab.Mat4 {
	return c.projection
}

// Frame begins a frame cleared to the given color.
func (c *Context) Frame(clear glyphlab.Color) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.backend.BeginFrame(clear); err != nil {
		return err
	}
	c.inFrame = true
	return nil
}

// Draw records batch sampling tex. tex is either nil or a texture created
// by NewCoverageTexture. Empty batches are skipped.
func (c *Context) Draw(batch *glyphlab.Batch, tex text.Texture) error {
	if c.closed {
		return ErrClosed
	}
	if !c.inFrame {
		return ErrNotInFrame
	}
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	var gt Texture
	if tex != nil {
		var ok bool
		if gt, ok = tex.(Texture); !ok {
			return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
		}
	}
	return c.backend.Draw(batch, gt, c.projection)
}

// Present submits the frame.
func (c *Context) Present() error {
	if c.closed {
		return ErrClosed
	}
	if !c.inFrame {
		return ErrNotInFrame
	}
	c.inFrame = false
	return c.backend.Present()
}

// Resize reconfigures the surface and recomputes the projection.
// A zero-sized framebuffer (minimized window) is ignored.
func (c *Context) Resize(width, height int) error {
	if c.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		glyphlab.Logger().Debug("gfx: ignoring resize to empty framebuffer", "width", width, "height", height)
		return nil
	}
	if width == c.width && height == c.height {
		return nil
	}
	if err := c.backend.Resize(width, height); err != nil {
		return err
	}
	c.width, c.height = width, height
	c.projection = c.projectionFn(width, height)
	glyphlab.Logger().Debug("gfx: surface resized", "width", width, "height", height)
	return nil
}

// NewCoverageTexture creates a coverage texture owned by the context.
// It implements text.TextureAllocator.
func (c *Context) NewCoverageTexture(label string, width, height int) (text.Texture, error) {
	if c.closed {
		return nil, ErrClosed
	}
	t, err := c.backend.CreateTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("gfx: create texture %q: %w", label, err)
	}
	c.textures = append(c.textures, t)
	glyphlab.Logger().Debug("gfx: texture created", "label", label, "width", width, "height", height)
	return t, nil
}

// ReleaseTexture destroys a texture created by NewCoverageTexture before
// the context is closed. It must not be called while a frame is recorded,
// since queued draws may still sample the texture.
func (c *Context) ReleaseTexture(tex text.Texture) error {
	if c.closed {
		return ErrClosed
	}
	if c.inFrame {
		return ErrInFrame
	}
	i := slices.IndexFunc(c.textures, func(t Texture) bool { return text.Texture(t) == tex })
	if i < 0 {
		return fmt.Errorf("%w: %T not created by this context", ErrForeignTexture, tex)
	}
	t := c.textures[i]
	c.textures = slices.Delete(c.textures, i, i+1)
	t.Destroy()
	w, h := t.Size()
	glyphlab.Logger().Debug("gfx: texture released", "width", w, "height", h)
	return nil
}

// Close destroys the textures created by the context, then the backend.
// Close is idempotent.
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for i := len(c.textures) - 1; i >= 0; i-- {
		c.textures[i].Destroy()
	}
	c.textures = nil
	c.backend.Close()
	glyphlab.Logger().Info("gfx: context closed", "backend", c.backend.Name())
}
