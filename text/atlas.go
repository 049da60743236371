package text

import (
	"fmt"
	"image"

	"github.com/gogpu/glyphlab"
)

// Atlas table layout.
const (
	// FirstRune is the first code point packed into an atlas (space).
	FirstRune = 32

	// LastRune is the last code point packed into an atlas ('~').
	LastRune = 126

	// TableSize is the number of glyph slots, one per ASCII code.
	TableSize = 128

	// FallbackRune is drawn for every code point outside the table.
	FallbackRune = '?'
)

// Atlas packs the printable ASCII glyphs of one font at one pixel size
// side by side into a single-row coverage texture.
//
// An Atlas is immutable after BuildAtlas returns and safe for concurrent
// reads. Its texture belongs to the allocator that created it.
type Atlas struct {
	// Glyphs is indexed by ASCII code. Slots outside FirstRune..LastRune
	// are zero.
	Glyphs [TableSize]Glyph

	// Width and Height are the packed texture size in pixels.
	Width, Height int

	// PixelSize is the requested size in pixels per em.
	PixelSize int

	// Font is the family name of the source font.
	Font string

	// Texture holds the packed coverage.
	Texture Texture

	foldWidth bool
}

// BuildAtlas rasterizes code points FirstRune..LastRune from src at
// pixelSize and uploads them into one texture obtained from alloc.
//
// The atlas width is the sum of the glyph widths and its height the
// tallest glyph. Any glyph that fails to rasterize fails the whole build.
// A nil alloc selects ImageAllocator.
func BuildAtlas(src *FontSource, pixelSize int, alloc TextureAllocator, opts ...AtlasOption) (*Atlas, error) {
	if pixelSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPixelSize, pixelSize)
	}
	parsed := src.Parsed()
	if parsed == nil {
		return nil, ErrSourceClosed
	}

	cfg := defaultAtlasConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rast, err := parsed.NewRasterizer(pixelSize, cfg.hinting)
	if err != nil {
		return nil, err
	}

	a := &Atlas{
		PixelSize: pixelSize,
		Font:      src.Name(),
		foldWidth: cfg.foldWidth,
	}
	for r := rune(FirstRune); r <= LastRune; r++ {
		bm, err := rast.Rasterize(r)
		if err != nil {
			return nil, &GlyphError{Rune: r, Err: err}
		}
		if len(bm.Pix) != bm.Width*bm.Height {
			return nil, &GlyphError{
				Rune: r,
				Err:  fmt.Errorf("bitmap has %d bytes, want %d", len(bm.Pix), bm.Width*bm.Height),
			}
		}
		a.Glyphs[r] = Glyph{
			AdvanceX: int(bm.Advance.X >> 6),
			AdvanceY: int(bm.Advance.Y >> 6),
			Width:    bm.Width,
			Height:   bm.Height,
			Left:     bm.Left,
			Top:      bm.Top,
			X:        a.Width,
			Mask:     bm.Pix,
		}
		a.Width += bm.Width
		a.Height = max(a.Height, bm.Height)
	}
	if a.Width == 0 || a.Height == 0 {
		return nil, ErrEmptyAtlas
	}
	for r := FirstRune; r <= LastRune; r++ {
		a.Glyphs[r].U = float32(a.Glyphs[r].X) / float32(a.Width)
	}

	if alloc == nil {
		alloc = ImageAllocator{}
	}
	tex, err := alloc.NewCoverageTexture(cfg.label, a.Width, a.Height)
	if err != nil {
		return nil, fmt.Errorf("text: create atlas texture: %w", err)
	}
	for r := FirstRune; r <= LastRune; r++ {
		g := &a.Glyphs[r]
		if g.Empty() {
			continue
		}
		if err := tex.WriteRegion(g.X, 0, g.Width, g.Height, g.Mask); err != nil {
			return nil, fmt.Errorf("text: upload glyph %q: %w", rune(r), err)
		}
	}
	a.Texture = tex

	glyphlab.Logger().Debug("glyph atlas built",
		"font", a.Font, "px", pixelSize, "width", a.Width, "height", a.Height)
	return a, nil
}

// Image recomposes the packed coverage texture in memory from the glyph
// masks. It matches the texture contents uploaded by BuildAtlas.
func (a *Atlas) Image() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, a.Width, a.Height))
	for r := FirstRune; r <= LastRune; r++ {
		g := &a.Glyphs[r]
		for row := 0; row < g.Height; row++ {
			off := img.PixOffset(g.X, row)
			copy(img.Pix[off:off+g.Width], g.Mask[row*g.Width:(row+1)*g.Width])
		}
	}
	return img
}
