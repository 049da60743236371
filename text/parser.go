package text

import (
	"sort"
	"sync"

	"golang.org/x/image/math/fixed"
)

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (golang.org/x/image/font/opentype or github.com/go-text/typesetting).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// HasGlyph reports whether the font maps r to a glyph.
	HasGlyph(r rune) bool

	// NewRasterizer returns a rasterizer producing coverage bitmaps at
	// pixelSize pixels per em. Rasterizers are not safe for concurrent use.
	NewRasterizer(pixelSize int, hinting Hinting) (GlyphRasterizer, error)
}

// GlyphRasterizer renders single runes into coverage bitmaps.
type GlyphRasterizer interface {
	Rasterize(r rune) (Bitmap, error)
}

// Bitmap is a rasterized glyph as reported by a GlyphRasterizer.
type Bitmap struct {
	// Width and Height are the bitmap size in pixels.
	Width, Height int

	// Left is the horizontal offset from the pen to the bitmap's left edge.
	Left int

	// Top is the vertical offset from the baseline up to the bitmap's top row.
	Top int

	// Advance is the pen displacement in 26.6 fixed point.
	Advance fixed.Point26_6

	// Pix holds Width*Height coverage bytes, top row first.
	Pix []byte
}

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		"ximage": &ximageParser{},
		"gotext": &gotextParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
// Registering an existing name replaces it.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// Parsers returns the registered parser names in sorted order.
func Parsers() []string {
	parserMu.RLock()
	defer parserMu.RUnlock()
	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getParser returns the parser registered under name.
func getParser(name string) (FontParser, bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	return p, ok
}
