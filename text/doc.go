// Package text builds bitmap glyph atlases and lays out text into vertex
// batches.
//
// # Atlases
//
// BuildAtlas rasterizes the printable ASCII range (32..126) of a font at a
// fixed pixel size and packs the glyphs side by side into one
// single-channel texture, left to right, in code point order:
//
//	src, err := text.NewFontSourceFromFile("font.ttf")
//	if err != nil {
//		log.Fatal(err)
//	}
//	atlas, err := text.BuildAtlas(src, 48, ctx) // ctx is a gfx.Context
//
// Any glyph that fails to rasterize fails the whole build.
//
// # Layout
//
// DrawText emits six vertices per rune on a single baseline, left to
// right, with no kerning or wrapping. Code points outside the table are
// drawn as '?'.
//
// # Parsers
//
// Two font parsers are registered: "ximage" (default, hinted, via
// golang.org/x/image/font/opentype) and "gotext" (unhinted, via
// github.com/go-text/typesetting). Select one with WithParser.
package text
