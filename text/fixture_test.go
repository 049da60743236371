package text

import (
	"errors"
	"testing"

	"golang.org/x/image/math/fixed"
)

// fixedParser is a synthetic font whose glyph metrics are a simple
// function of the code point, so layout results can be computed by hand.
type fixedParser struct {
	failOn rune
}

func (p fixedParser) Parse(data []byte) (ParsedFont, error) {
	return fixedFont{failOn: p.failOn}, nil
}

type fixedFont struct {
	failOn rune
}

func (fixedFont) Name() string         { return "Fixed" }
func (fixedFont) HasGlyph(r rune) bool { return r >= FirstRune && r <= LastRune }
func (f fixedFont) NewRasterizer(px int, _ Hinting) (GlyphRasterizer, error) {
	return fixedRasterizer{px: px, failOn: f.failOn}, nil
}

type fixedRasterizer struct {
	px     int
	failOn rune
}

var errFixedGlyph = errors.New("synthetic failure")

// Rasterize returns a glyph r%5 pixels wide (space is blank) and r%7+1
// rows tall, filled with the low byte of r, advancing by width+2.
func (f fixedRasterizer) Rasterize(r rune) (Bitmap, error) {
	if r == f.failOn {
		return Bitmap{}, errFixedGlyph
	}
	w, h := int(r%5), int(r%7)+1
	if r == ' ' {
		w, h = 0, 0
	}
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = byte(r)
	}
	return Bitmap{
		Width:   w,
		Height:  h,
		Left:    1,
		Top:     h - 2,
		Advance: fixed.Point26_6{X: fixed.I(w + 2)},
		Pix:     pix,
	}, nil
}

func init() {
	RegisterParser("fixed-test", fixedParser{})
	RegisterParser("failing-test", fixedParser{failOn: 'x'})
}

func fixedSource(t *testing.T, parser string) *FontSource {
	t.Helper()
	src, err := NewFontSource([]byte{0}, WithParser(parser))
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return src
}

func fixedAtlas(t *testing.T, opts ...AtlasOption) *Atlas {
	t.Helper()
	a, err := BuildAtlas(fixedSource(t, "fixed-test"), 16, nil, opts...)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	return a
}

func goRegularAtlas(t *testing.T, px int, opts ...SourceOption) *Atlas {
	t.Helper()
	src, err := DefaultFontSource(opts...)
	if err != nil {
		t.Fatalf("DefaultFontSource() error = %v", err)
	}
	a, err := BuildAtlas(src, px, nil)
	if err != nil {
		t.Fatalf("BuildAtlas() error = %v", err)
	}
	return a
}
