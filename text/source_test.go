package text

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestNewFontSource(t *testing.T) {
	for _, parser := range []string{"ximage", "gotext"} {
		t.Run(parser, func(t *testing.T) {
			src, err := NewFontSource(goregular.TTF, WithParser(parser))
			if err != nil {
				t.Fatalf("NewFontSource() error = %v", err)
			}
			defer src.Close()

			if src.Name() != "Go" {
				t.Errorf("Name() = %q, want %q", src.Name(), "Go")
			}
			if src.Parser() != parser {
				t.Errorf("Parser() = %q, want %q", src.Parser(), parser)
			}
			p := src.Parsed()
			if p == nil {
				t.Fatal("Parsed() = nil")
			}
			if !p.HasGlyph('A') {
				t.Error("HasGlyph('A') = false")
			}
		})
	}
}

func TestNewFontSourceEmpty(t *testing.T) {
	_, err := NewFontSource(nil)
	if !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want %v", err, ErrEmptyFontData)
	}
}

func TestNewFontSourceGarbage(t *testing.T) {
	if _, err := NewFontSource([]byte("definitely not a font")); err == nil {
		t.Error("NewFontSource(garbage) error = nil")
	}
}

func TestNewFontSourceUnknownParser(t *testing.T) {
	_, err := NewFontSource(goregular.TTF, WithParser("freetype"))
	if !errors.Is(err, ErrUnknownParser) {
		t.Errorf("NewFontSource() error = %v, want %v", err, ErrUnknownParser)
	}
}

func TestNewFontSourceCopiesData(t *testing.T) {
	for _, parser := range []string{"ximage", "gotext"} {
		t.Run(parser, func(t *testing.T) {
			data := slices.Clone(goregular.TTF)
			src, err := NewFontSource(data, WithParser(parser))
			if err != nil {
				t.Fatalf("NewFontSource() error = %v", err)
			}
			defer src.Close()

			clear(data)
			atlas, err := BuildAtlas(src, 16, nil)
			if err != nil {
				t.Fatalf("BuildAtlas() after clobbering input error = %v", err)
			}
			if g := atlas.Glyphs['A']; g.Width == 0 || g.Height == 0 {
				t.Errorf("Glyphs['A'] = %+v, want a rasterized glyph", g)
			}
		})
	}
}

func TestNewFontSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	src, err := NewFontSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewFontSourceFromFile() error = %v", err)
	}
	defer src.Close()
	if src.Name() != "Go" {
		t.Errorf("Name() = %q, want %q", src.Name(), "Go")
	}

	_, err = NewFontSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewFontSourceFromFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestFontSourceClose(t *testing.T) {
	src := fixedSource(t, "fixed-test")
	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if src.Parsed() != nil {
		t.Error("Parsed() after Close() != nil")
	}
	// Name stays available for diagnostics.
	if src.Name() != "Fixed" {
		t.Errorf("Name() after Close() = %q", src.Name())
	}
}

func TestFontSourceCopyPanics(t *testing.T) {
	src := fixedSource(t, "fixed-test")
	defer func() {
		if recover() == nil {
			t.Error("expected panic when using a copied FontSource")
		}
	}()
	// Copying on purpose; done via reflect so go vet's copylocks check
	// does not reject the intentional lock copy.
	var cp FontSource
	reflect.ValueOf(&cp).Elem().Set(reflect.ValueOf(src).Elem())
	_ = cp.Name()
}

func TestParsers(t *testing.T) {
	names := Parsers()
	for _, want := range []string{"gotext", "ximage"} {
		if !slices.Contains(names, want) {
			t.Errorf("Parsers() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Parsers() = %v, not sorted", names)
	}
}

func TestHintingString(t *testing.T) {
	tests := []struct {
		h    Hinting
		want string
	}{
		{HintingNone, "none"},
		{HintingVertical, "vertical"},
		{HintingFull, "full"},
		{Hinting(-1), "unknown"},
		{Hinting(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Hinting(%d).String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}
