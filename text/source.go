package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// FontSource represents a loaded font file. One FontSource can build
// atlases at several pixel sizes.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection. It must point to the FontSource itself.
	addr *FontSource

	mu     sync.RWMutex
	data   []byte
	parsed ParsedFont
	name   string
	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parser, ok := getParser(config.parserName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, config.parserName)
	}
	// Parsers may keep references into the slice they are given.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	parsed, err := parser.Parse(dataCopy)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
		config: config,
	}
	s.addr = s
	s.name = parsed.Name()
	if s.name == "" {
		s.name = "Unknown Font"
	}
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data, opts...)
}

// DefaultFontSource returns a FontSource for the Go Regular font bundled
// with golang.org/x/image.
func DefaultFontSource(opts ...SourceOption) (*FontSource, error) {
	return NewFontSource(goregular.TTF, opts...)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Parser returns the name of the parser that loaded the font.
func (s *FontSource) Parser() string {
	s.copyCheck()
	return s.config.parserName
}

// Parsed returns the parsed font, or nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Close releases the font data. Atlases already built stay valid.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.parsed = nil
	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
