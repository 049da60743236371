package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidPixelSize is returned when the atlas pixel size is not positive.
	ErrInvalidPixelSize = errors.New("text: pixel size must be positive")

	// ErrEmptyAtlas is returned when no printable glyph produced any pixels.
	ErrEmptyAtlas = errors.New("text: atlas has zero area")

	// ErrUnknownParser is returned when a parser name is not registered.
	ErrUnknownParser = errors.New("text: unknown font parser")

	// ErrUnsupportedGlyph is returned when a glyph has no outline to rasterize.
	ErrUnsupportedGlyph = errors.New("text: glyph has no outline")

	// ErrSourceClosed is returned when a closed FontSource is used.
	ErrSourceClosed = errors.New("text: font source is closed")
)

// GlyphError reports that a single glyph could not be rasterized.
// Atlas builds stop at the first GlyphError.
type GlyphError struct {
	Rune rune
	Err  error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("text: rasterize %q (U+%04X): %v", e.Rune, e.Rune, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}

// RegionError is returned by textures when an upload falls outside the
// texture bounds or the pixel slice does not match the region size.
type RegionError struct {
	X, Y, Width, Height int
	TexWidth, TexHeight int
	Pixels              int
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("text: region %dx%d at (%d,%d) with %d pixels does not fit %dx%d texture",
		e.Width, e.Height, e.X, e.Y, e.Pixels, e.TexWidth, e.TexHeight)
}
