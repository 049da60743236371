package main

import (
	"github.com/gogpu/glyphlab/text"
)

// loadFont opens path with the named parser, or the bundled Go Regular
// font when path is empty.
func loadFont(path, parser string) (*text.FontSource, error) {
	opts := []text.SourceOption{text.WithParser(parser)}
	if path == "" {
		return text.DefaultFontSource(opts...)
	}
	return text.NewFontSourceFromFile(path, opts...)
}

// buildAtlas loads the font and builds its atlas through alloc. The font
// source is closed once the atlas exists.
func buildAtlas(path, parser string, size int, alloc text.TextureAllocator) (*text.Atlas, error) {
	src, err := loadFont(path, parser)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return text.BuildAtlas(src, size, alloc)
}
