package text

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// gotextParser implements FontParser using github.com/go-text/typesetting.
// Glyph outlines come from the font tables and are scan-converted with
// golang.org/x/image/vector. No hinting is applied.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	f, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	desc, _ := font.Describe(ld, nil)
	return &gotextParsedFont{font: f, family: desc.Family}, nil
}

// gotextParsedFont implements ParsedFont. font.Font is read-only and safe
// for concurrent use; each rasterizer gets its own font.Face.
type gotextParsedFont struct {
	font   *font.Font
	family string
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string {
	return f.family
}

// HasGlyph implements ParsedFont.HasGlyph.
func (f *gotextParsedFont) HasGlyph(r rune) bool {
	gid, ok := f.font.NominalGlyph(r)
	return ok && gid != 0
}

// NewRasterizer implements ParsedFont.NewRasterizer. The hinting mode is
// ignored.
func (f *gotextParsedFont) NewRasterizer(pixelSize int, _ Hinting) (GlyphRasterizer, error) {
	upem := f.font.Upem()
	if upem == 0 {
		return nil, fmt.Errorf("text: font has zero units per em")
	}
	return &gotextRasterizer{
		face:  font.NewFace(f.font),
		scale: float32(pixelSize) / float32(upem),
	}, nil
}

type gotextRasterizer struct {
	face  *font.Face
	scale float32 // pixels per font unit
}

// Rasterize implements GlyphRasterizer.Rasterize.
func (r *gotextRasterizer) Rasterize(ch rune) (Bitmap, error) {
	gid, _ := r.face.NominalGlyph(ch) // unmapped runes render .notdef

	adv := r.face.HorizontalAdvance(gid) * r.scale
	bm := Bitmap{
		Advance: fixed.Point26_6{X: fixed.Int26_6(math.Round(float64(adv) * 64))},
	}

	var segments []ot.Segment
	switch data := r.face.GlyphData(gid).(type) {
	case nil:
		return bm, nil
	case font.GlyphOutline:
		segments = data.Segments
	case font.GlyphSVG:
		segments = data.Outline.Segments
	default:
		return Bitmap{}, ErrUnsupportedGlyph
	}
	if len(segments) == 0 {
		return bm, nil
	}

	// Control points bound the curves, so their box bounds the glyph.
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, s := range segments {
		for _, p := range s.ArgsSlice() {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	left := int(math.Floor(float64(minX * r.scale)))
	right := int(math.Ceil(float64(maxX * r.scale)))
	bottom := int(math.Floor(float64(minY * r.scale)))
	top := int(math.Ceil(float64(maxY * r.scale)))

	bm.Left, bm.Top = left, top
	bm.Width, bm.Height = right-left, top-bottom
	if bm.Width <= 0 || bm.Height <= 0 {
		bm.Width, bm.Height = 0, 0
		return bm, nil
	}

	// Font units are y-up; the rasterizer is y-down with the origin at the
	// bitmap's top-left corner.
	tx := func(p ot.SegmentPoint) (float32, float32) {
		return p.X*r.scale - float32(left), float32(top) - p.Y*r.scale
	}

	z := vector.NewRasterizer(bm.Width, bm.Height)
	z.DrawOp = draw.Src
	for _, s := range segments {
		switch s.Op {
		case ot.SegmentOpMoveTo:
			z.ClosePath()
			z.MoveTo(tx(s.Args[0]))
		case ot.SegmentOpLineTo:
			z.LineTo(tx(s.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := tx(s.Args[0])
			cx, cy := tx(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := tx(s.Args[0])
			cx, cy := tx(s.Args[1])
			dx, dy := tx(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, bm.Width, bm.Height))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	bm.Pix = dst.Pix
	return bm, nil
}
