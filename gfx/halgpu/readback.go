package halgpu

import (
	"image"
	"unsafe"

	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment required for texture to buffer
// copies.
const copyPitchAlignment = 256

// ReadPixels copies the offscreen target into an image. It is only
// available for headless targets and must be called outside a frame.
func (b *Backend) ReadPixels() (*image.RGBA, error) {
	if b.closed {
		return nil, gfx.ErrClosed
	}
	if b.offscreen == nil {
		return nil, gfx.Step(b.name, "read pixels", gfx.ErrUnsupportedTarget)
	}
	if b.frame != nil {
		return nil, gfx.Step(b.name, "read pixels", errFrameActive)
	}

	w, h := uint32(b.width), uint32(b.height) //nolint:gosec // positive surface size
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphlab_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, gfx.Step(b.name, "create readback buffer", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glyphlab_readback"})
	if err != nil {
		return nil, gfx.Step(b.name, "create command encoder", err)
	}
	if err := encoder.BeginEncoding("glyphlab_readback"); err != nil {
		return nil, gfx.Step(b.name, "begin encoding", err)
	}
	encoder.CopyTextureToBuffer(b.offscreen.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: b.offscreen.texture, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, gfx.Step(b.name, "end encoding", err)
	}
	defer b.device.FreeCommandBuffer(cmd)

	if _, err := b.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, gfx.Step(b.name, "submit", err)
	}
	if err := b.device.WaitIdle(); err != nil {
		return nil, gfx.Step(b.name, "wait idle", err)
	}

	mapping, err := b.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, gfx.Step(b.name, "map readback buffer", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size)
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	bgra := b.format == gputypes.TextureFormatBGRA8Unorm
	for y := 0; y < b.height; y++ {
		src := data[uint64(y)*uint64(alignedBytesPerRow):]
		dst := img.Pix[y*img.Stride : y*img.Stride+int(bytesPerRow)]
		copy(dst, src[:bytesPerRow])
		if bgra {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	if err := b.device.UnmapBuffer(staging); err != nil {
		return nil, gfx.Step(b.name, "unmap readback buffer", err)
	}
	return img, nil
}
