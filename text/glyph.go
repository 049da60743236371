package text

// Glyph is one entry of an atlas table: the metrics needed for layout plus
// the glyph's place in the packed texture.
type Glyph struct {
	// AdvanceX and AdvanceY are the pen displacement in whole pixels
	// (the rasterizer's 26.6 advance shifted right by 6).
	AdvanceX, AdvanceY int

	// Width and Height are the bitmap size in pixels. Both are zero for
	// blank glyphs such as space.
	Width, Height int

	// Left and Top are the bearing: the offset from the pen to the bitmap's
	// left edge, and from the baseline up to its top row.
	Left, Top int

	// X is the glyph's horizontal offset in the atlas, in pixels.
	X int

	// U is X normalized by the atlas width, in [0, 1).
	U float32

	// Mask holds Width*Height coverage bytes, top row first.
	Mask []byte
}

// Empty reports whether the glyph has no pixels.
func (g *Glyph) Empty() bool {
	return g.Width == 0 || g.Height == 0
}
