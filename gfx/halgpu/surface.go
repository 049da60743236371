package halgpu

import (
	"fmt"
	"slices"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// offscreen is the color target used for headless rendering.
type offscreen struct {
	texture hal.Texture
	view    hal.TextureView
}

// CreateSurface implements gfx.GraphicsBackend.
func (b *Backend) CreateSurface(target gfx.Target, width, height int) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if b.device == nil {
		return gfx.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	b.destroySurface()

	if gfx.IsHeadless(target) {
		b.format = b.cfg.format
		if err := b.createOffscreen(width, height); err != nil {
			return err
		}
		b.width, b.height = width, height
		glyphlab.Logger().Debug("halgpu: offscreen target", "backend", b.name, "width", width, "height", height)
		return nil
	}

	if b.instance == nil {
		return gfx.Step(b.name, "create surface",
			fmt.Errorf("%w: shared device has no HAL instance, only headless targets work", gfx.ErrUnsupportedTarget))
	}
	display, window := target.NativeHandle()
	surface, err := b.instance.CreateSurface(display, window)
	if err != nil {
		return gfx.Step(b.name, "create surface", err)
	}
	b.surface = surface

	b.format = b.cfg.format
	if b.adapter != nil {
		if caps := b.adapter.SurfaceCapabilities(surface); caps != nil {
			b.format = pickFormat(caps.Formats, b.cfg.format)
			if len(caps.PresentModes) > 0 && !slices.Contains(caps.PresentModes, b.cfg.presentMode) {
				glyphlab.Logger().Warn("halgpu: present mode unsupported, using fifo",
					"backend", b.name, "mode", b.cfg.presentMode)
				b.cfg.presentMode = gputypes.PresentModeFifo
			}
		}
	}

	if err := b.configure(width, height); err != nil {
		return err
	}
	glyphlab.Logger().Debug("halgpu: surface configured",
		"backend", b.name, "width", width, "height", height, "format", b.format)
	return nil
}

// pickFormat returns want if the surface supports it, otherwise the first
// supported format.
func pickFormat(formats []gputypes.TextureFormat, want gputypes.TextureFormat) gputypes.TextureFormat {
	if len(formats) == 0 || slices.Contains(formats, want) {
		return want
	}
	return formats[0]
}

func (b *Backend) configure(width, height int) error {
	err := b.surface.Configure(b.device, &hal.SurfaceConfiguration{
		Width:       uint32(width),  //nolint:gosec // validated positive
		Height:      uint32(height), //nolint:gosec // validated positive
		Format:      b.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: b.cfg.presentMode,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return gfx.Step(b.name, "configure surface", err)
	}
	b.width, b.height = width, height
	return nil
}

func (b *Backend) createOffscreen(width, height int) error {
	size := hal.Extent3D{
		Width:              uint32(width),  //nolint:gosec // validated positive
		Height:             uint32(height), //nolint:gosec // validated positive
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyphlab_offscreen",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        b.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return gfx.Step(b.name, "create offscreen texture", err)
	}
	view, err := b.device.CreateTextureView(tex, colorViewDesc("glyphlab_offscreen_view", b.format))
	if err != nil {
		b.device.DestroyTexture(tex)
		return gfx.Step(b.name, "create offscreen view", err)
	}
	b.offscreen = &offscreen{texture: tex, view: view}
	return nil
}

func colorViewDesc(label string, format gputypes.TextureFormat) *hal.TextureViewDescriptor {
	return &hal.TextureViewDescriptor{
		Label:           label,
		Format:          format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	}
}

// Resize implements gfx.GraphicsBackend. It waits for queued work and
// reconfigures the surface, or recreates the offscreen target.
func (b *Backend) Resize(width, height int) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	if b.surface == nil && b.offscreen == nil {
		return gfx.ErrNoSurface
	}
	if b.frame != nil {
		return gfx.Step(b.name, "resize", fmt.Errorf("resize during frame"))
	}
	if err := b.device.WaitIdle(); err != nil {
		return gfx.Step(b.name, "wait idle", err)
	}

	if b.offscreen != nil {
		b.destroyOffscreen()
		if err := b.createOffscreen(width, height); err != nil {
			return err
		}
		b.width, b.height = width, height
		return nil
	}
	return b.configure(width, height)
}

func (b *Backend) destroyOffscreen() {
	if b.offscreen == nil {
		return
	}
	b.device.DestroyTextureView(b.offscreen.view)
	b.device.DestroyTexture(b.offscreen.texture)
	b.offscreen = nil
}

func (b *Backend) destroySurface() {
	if b.device != nil {
		b.destroyOffscreen()
	}
	if b.surface != nil {
		if b.device != nil {
			b.surface.Unconfigure(b.device)
		}
		b.surface.Destroy()
		b.surface = nil
	}
	b.width, b.height = 0, 0
}
