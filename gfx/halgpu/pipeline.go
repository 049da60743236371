package halgpu

import (
	"fmt"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/shader"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of the uniform block: one mat4x4<f32>.
const uniformSize = 64

// pipeline holds the objects shared by every draw. The render pipeline
// depends on the color target format and is rebuilt when it changes.
type pipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	render     hal.RenderPipeline
	format     gputypes.TextureFormat
}

// createPipeline builds the format-independent objects, the uniform buffer
// and the blank texture bound by untextured draws.
func (b *Backend) createPipeline() error {
	if b.pipe != nil {
		return nil
	}
	if err := shader.Validate(shader.TextWGSL); err != nil {
		return gfx.Step(b.name, "validate shader", err)
	}

	p := &pipeline{}
	fail := func(step string, err error) error {
		p.destroy(b.device)
		return gfx.Step(b.name, step, err)
	}

	var err error
	p.shader, err = b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyphlab_text_shader",
		Source: hal.ShaderSource{WGSL: shader.TextWGSL},
	})
	if err != nil {
		return fail("create shader module", err)
	}

	// Binding 0: projection (uniform, vertex)
	// Binding 1: coverage texture (fragment)
	// Binding 2: sampler (fragment)
	p.bindLayout, err = b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyphlab_text_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fail("create bind group layout", err)
	}

	p.pipeLayout, err = b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyphlab_text_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fail("create pipeline layout", err)
	}

	// Glyphs are rasterized at their display size, so texels map 1:1 to
	// pixels and nearest filtering keeps them sharp.
	p.sampler, err = b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyphlab_coverage_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fail("create sampler", err)
	}

	uniform, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphlab_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fail("create uniform buffer", err)
	}

	b.pipe = p
	b.uniformBuf = uniform
	b.textures = make(map[*Texture]struct{})

	blank, err := b.newTexture("glyphlab_blank", 1, 1)
	if err != nil {
		return err
	}
	if err := blank.WriteRegion(0, 0, 1, 1, []byte{0xff}); err != nil {
		return gfx.Step(b.name, "write blank texture", err)
	}
	b.blank = blank

	glyphlab.Logger().Debug("halgpu: pipeline objects created", "backend", b.name)
	return nil
}

// ensureRenderPipeline builds the render pipeline for the current target
// format.
func (b *Backend) ensureRenderPipeline() error {
	p := b.pipe
	if p == nil {
		return gfx.ErrNotInitialized
	}
	if p.render != nil && p.format == b.format {
		return nil
	}
	if p.render != nil {
		b.device.DestroyRenderPipeline(p.render)
		p.render = nil
	}

	blend := gputypes.BlendStateAlpha()
	render, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyphlab_text_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: shader.VertexEntry,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: shader.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    b.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return gfx.Step(b.name, "create render pipeline", fmt.Errorf("format %v: %w", b.format, err))
	}
	p.render = render
	p.format = b.format
	return nil
}

// vertexLayout matches VertexInput in text.wgsl and glyphlab.Vertex:
//
//	location 0: position (vec2<f32>)
//	location 1: uv       (vec2<f32>)
//	location 2: color    (vec4<f32>)
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: glyphlab.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		},
	}
}

// destroy releases the pipeline objects in reverse creation order.
func (p *pipeline) destroy(device hal.Device) {
	if p.render != nil {
		device.DestroyRenderPipeline(p.render)
		p.render = nil
	}
	if p.sampler != nil {
		device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
