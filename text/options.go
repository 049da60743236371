package text

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype;
// "gotext" uses github.com/go-text/typesetting.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// Hinting selects how glyph outlines are fitted to the pixel grid.
type Hinting int

const (
	HintingNone     Hinting = iota // outlines as designed
	HintingVertical                // snap vertical metrics only
	HintingFull                    // snap both axes
)

var hintingNames = [...]string{"none", "vertical", "full"}

func (h Hinting) String() string {
	if h >= 0 && int(h) < len(hintingNames) {
		return hintingNames[h]
	}
	return "unknown"
}

// AtlasOption configures atlas building and lookup.
type AtlasOption func(*atlasConfig)

// atlasConfig holds configuration for BuildAtlas.
type atlasConfig struct {
	hinting   Hinting
	foldWidth bool
	label     string
}

// defaultAtlasConfig returns the default atlas configuration.
func defaultAtlasConfig() atlasConfig {
	return atlasConfig{
		hinting: HintingFull,
		label:   "glyph_atlas",
	}
}

// WithHinting sets the hinting mode used when rasterizing glyphs.
// Parsers that do not hint ignore it.
func WithHinting(h Hinting) AtlasOption {
	return func(c *atlasConfig) {
		c.hinting = h
	}
}

// WithWidthFolding makes lookups fold fullwidth and halfwidth forms
// (for example U+FF21 'Ａ') to their ASCII equivalents before falling
// back to '?'.
func WithWidthFolding() AtlasOption {
	return func(c *atlasConfig) {
		c.foldWidth = true
	}
}

// WithLabel names the atlas texture for backends that support debug labels.
func WithLabel(label string) AtlasOption {
	return func(c *atlasConfig) {
		c.label = label
	}
}
