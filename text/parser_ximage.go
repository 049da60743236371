package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
type ximageParsedFont struct {
	font *opentype.Font
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if name, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// HasGlyph implements ParsedFont.HasGlyph.
func (f *ximageParsedFont) HasGlyph(r rune) bool {
	idx, err := f.font.GlyphIndex(nil, r)
	return err == nil && idx != 0
}

// NewRasterizer implements ParsedFont.NewRasterizer.
func (f *ximageParsedFont) NewRasterizer(pixelSize int, hinting Hinting) (GlyphRasterizer, error) {
	// At 72 DPI one point is one pixel, so Size is the ppem directly.
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     72,
		Hinting: hinting.ximage(),
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return &ximageRasterizer{face: face}, nil
}

type ximageRasterizer struct {
	face font.Face
}

// Rasterize implements GlyphRasterizer.Rasterize. The pen sits at the
// origin so the destination rectangle doubles as the bearing.
func (r *ximageRasterizer) Rasterize(ch rune) (Bitmap, error) {
	dr, mask, maskp, advance, ok := r.face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return Bitmap{}, ErrUnsupportedGlyph
	}

	bm := Bitmap{
		Width:   dr.Dx(),
		Height:  dr.Dy(),
		Left:    dr.Min.X,
		Top:     -dr.Min.Y,
		Advance: fixed.Point26_6{X: advance},
	}
	if bm.Width == 0 || bm.Height == 0 {
		return bm, nil
	}

	// The face reuses its mask buffer between calls.
	dst := image.NewAlpha(image.Rect(0, 0, bm.Width, bm.Height))
	draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
	bm.Pix = dst.Pix
	return bm, nil
}

func (h Hinting) ximage() font.Hinting {
	switch h {
	case HintingNone:
		return font.HintingNone
	case HintingVertical:
		return font.HintingVertical
	default:
		return font.HintingFull
	}
}
