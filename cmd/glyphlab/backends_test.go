package main

import (
	"errors"
	"testing"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/gfx/halgpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/noop"
)

type probeFake struct {
	gfx.GraphicsBackend
	adapters []gpucontext.AdapterInfo
	err      error
}

func (p probeFake) Adapters() ([]gpucontext.AdapterInfo, error) { return p.adapters, p.err }

type noProbe struct{ gfx.GraphicsBackend }

func TestProbeBackend(t *testing.T) {
	tests := []struct {
		name string
		b    gfx.GraphicsBackend
		want string
	}{
		{"nil", nil, "unavailable"},
		{"no prober", noProbe{}, "needs a window to probe"},
		{"error", probeFake{err: errors.New("boom")}, "error: boom"},
		{"empty", probeFake{}, "no adapters"},
		{"two", probeFake{adapters: []gpucontext.AdapterInfo{
			{Name: "A", Type: gpucontext.AdapterTypeDiscrete},
			{Name: "B", Type: gpucontext.AdapterTypeSoftware},
		}}, "A (" + gpucontext.AdapterTypeDiscrete.String() + "); B (" + gpucontext.AdapterTypeSoftware.String() + ")"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := probeBackend(tt.b); got != tt.want {
				t.Errorf("probeBackend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSceneDrawHeadless(t *testing.T) {
	b := halgpu.NewWithAPI("noop", noop.API{})
	ctx, err := gfx.NewContext(b, gfx.Headless{Width: 320, Height: 120})
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer ctx.Close()

	atlas, err := buildAtlas("", "ximage", 16, ctx)
	if err != nil {
		t.Fatalf("buildAtlas() error = %v", err)
	}
	cfg := defaultRunConfig()
	s := newScene(cfg)
	if err := s.draw(ctx, atlas); err != nil {
		t.Fatalf("draw() error = %v", err)
	}
	if got, want := s.glyphs.Len(), 6*len([]rune(cfg.Text)); got != want {
		t.Errorf("glyph vertices = %d, want %d", got, want)
	}
	if s.clear != glyphlab.Hex(cfg.Clear) {
		t.Errorf("clear = %v", s.clear)
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		if _, err := openBackend("no-such-backend", verbose); !errors.Is(err, gfx.ErrUnknownBackend) {
			t.Errorf("openBackend(verbose=%v) error = %v, want %v", verbose, err, gfx.ErrUnknownBackend)
		}
	}
}
