package text

import (
	"github.com/gogpu/glyphlab"
	"golang.org/x/text/width"
)

// VerticesPerGlyph is the number of vertices DrawText appends per rune.
const VerticesPerGlyph = 6

// Lookup returns the glyph drawn for r. Code points outside
// FirstRune..LastRune map to FallbackRune, after optional width folding.
func (a *Atlas) Lookup(r rune) *Glyph {
	if a.foldWidth && (r < FirstRune || r > LastRune) {
		if n := width.LookupRune(r).Narrow(); n != 0 {
			r = n
		}
	}
	if r < FirstRune || r > LastRune {
		r = FallbackRune
	}
	return &a.Glyphs[r]
}

// DrawText appends one textured quad per rune of s to b, starting at pen,
// and returns the pen position after the last glyph.
//
// Coordinates are y-up pixels with pen on the baseline. Each quad is two
// counter-clockwise triangles covering
// [pen.X+Left, pen.X+Left+Width] x [pen.Y+Top-Height, pen.Y+Top].
// Blank glyphs still emit a degenerate quad so the vertex count is always
// VerticesPerGlyph per rune. DrawText does not touch the GPU.
func (a *Atlas) DrawText(b *glyphlab.Batch, s string, pen glyphlab.Vec2, c glyphlab.Color) glyphlab.Vec2 {
	aw, ah := float32(a.Width), float32(a.Height)
	color := c.Array()

	for _, r := range s {
		g := a.Lookup(r)

		w, h := float32(g.Width), float32(g.Height)
		x0 := pen.X + float32(g.Left)
		y0 := pen.Y + float32(g.Top) - h
		x1, y1 := x0+w, y0+h

		u0, u1, vBottom := g.U, g.U, float32(0)
		if aw > 0 && ah > 0 {
			u1 = g.U + w/aw
			vBottom = h / ah
		}

		b.Vertices = append(b.Vertices,
			glyphlab.Vertex{Position: [2]float32{x0, y1}, UV: [2]float32{u0, 0}, Color: color},
			glyphlab.Vertex{Position: [2]float32{x0, y0}, UV: [2]float32{u0, vBottom}, Color: color},
			glyphlab.Vertex{Position: [2]float32{x1, y0}, UV: [2]float32{u1, vBottom}, Color: color},
			glyphlab.Vertex{Position: [2]float32{x0, y1}, UV: [2]float32{u0, 0}, Color: color},
			glyphlab.Vertex{Position: [2]float32{x1, y0}, UV: [2]float32{u1, vBottom}, Color: color},
			glyphlab.Vertex{Position: [2]float32{x1, y1}, UV: [2]float32{u1, 0}, Color: color},
		)

		pen.X += float32(g.AdvanceX)
		pen.Y += float32(g.AdvanceY)
	}
	return pen
}

// Measure returns the total pen displacement DrawText would apply for s.
func (a *Atlas) Measure(s string) glyphlab.Vec2 {
	var adv glyphlab.Vec2
	for _, r := range s {
		g := a.Lookup(r)
		adv.X += float32(g.AdvanceX)
		adv.Y += float32(g.AdvanceY)
	}
	return adv
}
