package halgpu

import (
	"fmt"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/text"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Texture is an R8Unorm coverage texture with its view and bind group.
type Texture struct {
	b       *Backend
	label   string
	width   int
	height  int
	texture hal.Texture
	view    hal.TextureView
	group   hal.BindGroup
	dead    bool
}

var _ gfx.Texture = (*Texture)(nil)

// CreateTexture implements gfx.GraphicsBackend.
func (b *Backend) CreateTexture(width, height int) (gfx.Texture, error) {
	if b.closed {
		return nil, gfx.ErrClosed
	}
	if b.pipe == nil {
		return nil, gfx.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	return b.newTexture(fmt.Sprintf("glyphlab_coverage_%dx%d", width, height), width, height)
}

func (b *Backend) newTexture(label string, width, height int) (*Texture, error) {
	size := hal.Extent3D{
		Width:              uint32(width),  //nolint:gosec // validated positive
		Height:             uint32(height), //nolint:gosec // validated positive
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, gfx.Step(b.name, "create texture", err)
	}
	t := &Texture{b: b, label: label, width: width, height: height, texture: tex}

	t.view, err = b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           label + "_view",
		Format:          gputypes.TextureFormatR8Unorm,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		t.release()
		return nil, gfx.Step(b.name, "create texture view", err)
	}

	t.group, err = b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: b.pipe.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: b.uniformBuf.NativeHandle(), Size: uniformSize}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: b.pipe.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		t.release()
		return nil, gfx.Step(b.name, "create bind group", err)
	}

	b.textures[t] = struct{}{}
	return t, nil
}

// Size implements text.Texture.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// WriteRegion implements text.Texture. Rows are tightly packed; the upload
// goes through the queue and is visible to the next submitted frame.
func (t *Texture) WriteRegion(x, y, width, height int, pix []byte) error {
	if t.texture == nil || t.dead {
		return fmt.Errorf("halgpu: write to destroyed texture %q", t.label)
	}
	if err := text.CheckRegion(t, x, y, width, height, pix); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}
	//nolint:gosec // bounds checked by CheckRegion
	err := t.b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture: t.texture,
			Origin:  hal.Origin3D{X: uint32(x), Y: uint32(y)},
			Aspect:  gputypes.TextureAspectAll,
		},
		pix,
		&hal.ImageDataLayout{BytesPerRow: uint32(width), RowsPerImage: uint32(height)},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return gfx.Step(t.b.name, "write texture", err)
	}
	glyphlab.Logger().Debug("halgpu: texture upload", "texture", t.label, "x", x, "y", y, "width", width, "height", height)
	return nil
}

// Destroy implements gfx.Texture. It is idempotent.
//
// A texture sampled by submitted work is freed only after that work
// completes. Destroying it while a frame is recorded defers the release to
// the next frame, once the recorded draws have been retired.
func (t *Texture) Destroy() {
	if t.texture == nil || t.dead {
		return
	}
	b := t.b
	delete(b.textures, t)
	if b.frame != nil {
		t.dead = true
		b.dead = append(b.dead, t)
		return
	}
	if err := b.retire(); err != nil {
		glyphlab.Logger().Warn("halgpu: destroying texture without idle device", "texture", t.label, "err", err)
	}
	t.release()
}

func (t *Texture) release() {
	d := t.b.device
	if t.group != nil {
		d.DestroyBindGroup(t.group)
		t.group = nil
	}
	if t.view != nil {
		d.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		d.DestroyTexture(t.texture)
		t.texture = nil
	}
}
