// Package glyphlab is a small graphics lab: a bitmap glyph-atlas text
// renderer and a set of native graphics backends behind one interface.
//
// # Overview
//
// The root package holds the value types shared by every other package:
// colors, vectors, the orthographic projection and the vertex batch that
// text layout and the backends exchange.
//
//	import (
//		"github.com/gogpu/glyphlab"
//		"github.com/gogpu/glyphlab/text"
//	)
//
//	src, _ := text.DefaultFontSource()
//	atlas, _ := text.BuildAtlas(src, 48, nil)
//
//	var batch glyphlab.Batch
//	atlas.DrawText(&batch, "Hello", glyphlab.V2(20, 40), glyphlab.Hex(0xdcdcaa))
//
// # Coordinate System
//
// Vertices are produced in framebuffer pixels with a y-up convention:
//   - Origin (0,0) at bottom-left
//   - X increases right
//   - Y increases up
//
// [Ortho] maps this space to clip space; backends upload the result as the
// projection uniform.
//
// # Packages
//
//   - text: font parsing, atlas building, text layout
//   - gfx: the GraphicsBackend interface, backend registry and the owned Context
//   - gfx/halgpu: Vulkan, DX12, Metal, GLES and software backends on gogpu/wgpu HAL
//   - gfx/glgpu: direct OpenGL 4.1 core backend
//   - window: glfw windows with native handles
//   - shader: embedded shader sources and naga translation
//
// # Logging
//
// glyphlab is silent by default. See [SetLogger].
package glyphlab
