// Package gfx brings up native graphics for glyphlab.
//
// Every native API sits behind GraphicsBackend: an adapter is selected, a
// device and an immediate queue are created, a presentable surface is
// attached to a window (or an offscreen target), coverage textures are
// uploaded, and batches are drawn and presented.
//
// Context owns one backend for the lifetime of a window. It keeps the
// orthographic projection in step with the framebuffer size, hands out
// coverage textures for text atlases, and tears everything down in
// reverse order on Close.
//
//	ctx, err := gfx.NewContext(backend, win)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	atlas, err := text.BuildAtlas(src, 48, ctx)
//	...
//	for !win.ShouldClose() {
//	    batch.Reset()
//	    atlas.DrawText(&batch, "Hello", glyphlab.V2(20, 40), glyphlab.White)
//	    ctx.Frame(glyphlab.Black)
//	    ctx.Draw(&batch, atlas.Texture)
//	    ctx.Present()
//	}
//
// Backends live in sub-packages and register themselves on import:
//
//	import _ "github.com/gogpu/glyphlab/gfx/halgpu" // vulkan, dx12, metal, gles, software
//	import _ "github.com/gogpu/glyphlab/gfx/glgpu"  // gl
package gfx
