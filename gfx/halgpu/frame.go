package halgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// errFrameActive is returned by BeginFrame when the previous frame was not
// presented.
var errFrameActive = errors.New("halgpu: frame already begun")

// frame is the state between BeginFrame and Present.
type frame struct {
	acquired *hal.AcquiredSurfaceTexture
	view     hal.TextureView
	ownsView bool
	clear    glyphlab.Color
	draws    []drawCall
	vertices uint32
}

// drawCall is a vertex range sharing one texture and projection.
type drawCall struct {
	tex        *Texture
	projection glyphlab.Mat4
	first      uint32
	count      uint32
}

// BeginFrame implements gfx.GraphicsBackend.
func (b *Backend) BeginFrame(clear glyphlab.Color) error {
	if b.closed {
		return gfx.ErrClosed
	}
	if b.surface == nil && b.offscreen == nil {
		return gfx.ErrNoSurface
	}
	if b.frame != nil {
		return errFrameActive
	}
	if err := b.ensureRenderPipeline(); err != nil {
		return err
	}
	if err := b.retire(); err != nil {
		return err
	}

	f := &frame{clear: clear}
	if b.offscreen != nil {
		f.view = b.offscreen.view
		b.frame = f
		return nil
	}

	acquired, err := b.surface.AcquireTexture(nil)
	if err != nil {
		return gfx.Step(b.name, "acquire texture", err)
	}
	if acquired.Suboptimal {
		glyphlab.Logger().Warn("halgpu: suboptimal surface", "backend", b.name)
	}
	view, err := b.device.CreateTextureView(acquired.Texture, colorViewDesc("glyphlab_frame_view", b.format))
	if err != nil {
		b.surface.DiscardTexture(acquired.Texture)
		return gfx.Step(b.name, "create frame view", err)
	}
	f.acquired = acquired
	f.view = view
	f.ownsView = true
	b.frame = f
	return nil
}

// retire waits for the previous frame's submissions, frees their command
// buffers and releases textures destroyed while they were recorded.
func (b *Backend) retire() error {
	if b.lastSubmit != 0 && len(b.inflight) > 0 {
		if b.queue.PollCompleted() < b.lastSubmit {
			if err := b.device.WaitIdle(); err != nil {
				return gfx.Step(b.name, "wait idle", err)
			}
		}
		for _, cb := range b.inflight {
			b.device.FreeCommandBuffer(cb)
		}
		b.inflight = b.inflight[:0]
	}
	for _, t := range b.dead {
		t.release()
	}
	b.dead = b.dead[:0]
	return nil
}

// Draw implements gfx.GraphicsBackend.
func (b *Backend) Draw(batch *glyphlab.Batch, tex gfx.Texture, projection glyphlab.Mat4) error {
	if b.closed {
		return gfx.ErrClosed
	}
	f := b.frame
	if f == nil {
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
		if own.texture == nil || own.dead {
			return fmt.Errorf("halgpu: draw with destroyed texture %q", own.label)
		}
		t = own
	}

	n := batch.Len()
	if int(f.vertices)+n > b.cfg.maxVertices {
		return fmt.Errorf("halgpu: frame exceeds %d vertices", b.cfg.maxVertices)
	}
	count := uint32(n) //nolint:gosec // bounded by maxVertices
	b.vertexData = batch.AppendBytes(b.vertexData)

	if last := len(f.draws) - 1; last >= 0 &&
		f.draws[last].tex == t && f.draws[last].projection == projection {
		f.draws[last].count += count
	} else {
		f.draws = append(f.draws, drawCall{tex: t, projection: projection, first: f.vertices, count: count})
	}
	f.vertices += count
	return nil
}

// Present implements gfx.GraphicsBackend. Draws are grouped into one render
// pass per run of equal projections; the first pass clears the target.
func (b *Backend) Present() error {
	if b.closed {
		return gfx.ErrClosed
	}
	f := b.frame
	if f == nil {
		return gfx.ErrNotInFrame
	}
	defer b.discardFrame()

	if err := b.uploadVertices(); err != nil {
		b.discardAcquired()
		return err
	}

	passes := splitPasses(f.draws)
	if len(passes) == 0 {
		passes = [][]drawCall{nil}
	}
	for i, draws := range passes {
		load := gputypes.LoadOpLoad
		if i == 0 {
			load = gputypes.LoadOpClear
		}
		if err := b.submitPass(f, draws, load); err != nil {
			b.discardAcquired()
			return err
		}
	}

	if f.acquired != nil {
		acquired := f.acquired
		f.acquired = nil
		if err := b.queue.Present(b.surface, acquired.Texture, nil); err != nil {
			return gfx.Step(b.name, "present", err)
		}
	}
	return nil
}

// splitPasses groups consecutive draws by projection.
func splitPasses(draws []drawCall) [][]drawCall {
	var passes [][]drawCall
	start := 0
	for i := 1; i <= len(draws); i++ {
		if i == len(draws) || draws[i].projection != draws[start].projection {
			passes = append(passes, draws[start:i])
			start = i
		}
	}
	return passes
}

func (b *Backend) uploadVertices() error {
	size := uint64(len(b.vertexData))
	if size == 0 {
		return nil
	}
	if size > b.vertexCap {
		newCap := max(b.vertexCap, 64*glyphlab.VertexStride)
		for newCap < size {
			newCap *= 2
		}
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "glyphlab_vertices",
			Size:  newCap,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return gfx.Step(b.name, "create vertex buffer", err)
		}
		if b.vertexBuf != nil {
			b.device.DestroyBuffer(b.vertexBuf)
		}
		b.vertexBuf = buf
		b.vertexCap = newCap
		glyphlab.Logger().Debug("halgpu: vertex buffer grown", "backend", b.name, "bytes", newCap)
	}
	if err := b.queue.WriteBuffer(b.vertexBuf, 0, b.vertexData); err != nil {
		return gfx.Step(b.name, "write vertices", err)
	}
	return nil
}

// submitPass records and submits one render pass. The uniform write is
// ordered before the submission, so each pass sees its own projection.
func (b *Backend) submitPass(f *frame, draws []drawCall, load gputypes.LoadOp) error {
	if len(draws) > 0 {
		if err := b.queue.WriteBuffer(b.uniformBuf, 0, draws[0].projection.Bytes()); err != nil {
			return gfx.Step(b.name, "write uniforms", err)
		}
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glyphlab_frame"})
	if err != nil {
		return gfx.Step(b.name, "create command encoder", err)
	}
	if err := encoder.BeginEncoding("glyphlab_frame"); err != nil {
		return gfx.Step(b.name, "begin encoding", err)
	}

	c := f.clear
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "glyphlab_text_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       f.view,
				LoadOp:     load,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)},
			},
		},
	})
	if len(draws) > 0 {
		rp.SetViewport(0, 0, float32(b.width), float32(b.height), 0, 1)
		rp.SetPipeline(b.pipe.render)
		rp.SetVertexBuffer(0, b.vertexBuf, 0)
		var bound *Texture
		for _, d := range draws {
			if d.tex != bound {
				rp.SetBindGroup(0, d.tex.group, nil)
				bound = d.tex
			}
			rp.Draw(d.count, 1, d.first, 0)
		}
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return gfx.Step(b.name, "end encoding", err)
	}
	idx, err := b.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		b.device.FreeCommandBuffer(cmd)
		return gfx.Step(b.name, "submit", err)
	}
	b.inflight = append(b.inflight, cmd)
	b.lastSubmit = idx
	return nil
}

// discardAcquired returns an unpresented surface image.
func (b *Backend) discardAcquired() {
	if f := b.frame; f != nil && f.acquired != nil {
		b.surface.DiscardTexture(f.acquired.Texture)
		f.acquired = nil
	}
}

// discardFrame releases per-frame state. Recorded vertices are dropped.
func (b *Backend) discardFrame() {
	f := b.frame
	if f == nil {
		return
	}
	b.discardAcquired()
	if f.ownsView && f.view != nil && b.device != nil {
		b.device.DestroyTextureView(f.view)
	}
	b.frame = nil
	b.vertexData = b.vertexData[:0]
}
