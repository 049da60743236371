package main

import (
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/text"
	"github.com/gogpu/glyphlab/window"
)

const margin = 24

func runCmd(args []string) error {
	cfg, err := parseRunFlags(args)
	if err != nil {
		return err
	}
	setupLogging(cfg.Verbose)
	log := glyphlab.Logger()

	name := cfg.Backend
	if name == "" {
		name = gfx.Default()
	}
	backend, err := openBackend(name, cfg.Verbose)
	if err != nil {
		return err
	}

	wcfg := window.DefaultConfig()
	wcfg.Width, wcfg.Height = cfg.Width, cfg.Height
	wcfg.Fullscreen = cfg.Fullscreen
	wcfg.Title = "glyphlab (" + name + ")"
	wcfg.Debug = cfg.Verbose
	if name == "gl" {
		wcfg.API = window.APIOpenGL
	}
	win, err := window.New(wcfg)
	if err != nil {
		backend.Close()
		return err
	}
	defer win.Close()

	ctx, err := gfx.NewContext(backend, win)
	if err != nil {
		return err
	}
	defer ctx.Close()

	atlas, err := buildAtlas(cfg.Font, cfg.Parser, cfg.Size, ctx)
	if err != nil {
		return err
	}
	log.Info("atlas built", "font", atlas.Font, "size", atlas.PixelSize, "width", atlas.Width, "height", atlas.Height)

	var reload <-chan struct{}
	if cfg.Watch {
		w, err := watchFile(cfg.Font)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.Changed
	}

	var resized bool
	var width, height int
	win.OnResize(func(w, h int) {
		resized, width, height = true, w, h
	})

	scene := newScene(cfg)
	for !win.ShouldClose() {
		win.PollEvents()

		if resized {
			resized = false
			if err := ctx.Resize(width, height); err != nil {
				return err
			}
		}

		select {
		case <-reload:
			next, err := buildAtlas(cfg.Font, cfg.Parser, cfg.Size, ctx)
			if err != nil {
				log.Warn("atlas rebuild failed, keeping previous atlas", "err", err)
				break
			}
			if err := ctx.ReleaseTexture(atlas.Texture); err != nil {
				log.Warn("releasing previous atlas texture", "err", err)
			}
			atlas = next
			log.Info("atlas rebuilt", "font", atlas.Font)
		default:
		}

		if err := scene.draw(ctx, atlas); err != nil {
			return err
		}
	}
	return nil
}

// scene is the content of one frame: a panel of solid quads with a line
// of text on top.
type scene struct {
	clear  glyphlab.Color
	fg     glyphlab.Color
	text   string
	panels glyphlab.Batch
	glyphs glyphlab.Batch
}

func newScene(cfg runConfig) *scene {
	return &scene{
		clear: glyphlab.Hex(cfg.Clear),
		fg:    glyphlab.Hex(cfg.Foreground),
		text:  cfg.Text,
	}
}

func (s *scene) draw(ctx *gfx.Context, atlas *text.Atlas) error {
	w, h := ctx.Size()
	s.panels.Reset()
	s.glyphs.Reset()

	size := atlas.Measure(s.text)
	lineHeight := float32(atlas.Height)
	pen := glyphlab.Vec2{X: margin, Y: float32(h)/2 - lineHeight/2}

	s.panels.Quad(pen.X-margin/2, pen.Y-margin/2, size.X+margin, lineHeight+margin, glyphlab.Hex(0x313244))
	s.panels.Quad(0, 0, float32(w), margin/4, s.fg)
	s.panels.Quad(0, float32(h)-margin/4, float32(w), margin/4, s.fg)

	atlas.DrawText(&s.glyphs, s.text, pen, s.fg)

	if err := ctx.Frame(s.clear); err != nil {
		return err
	}
	if err := ctx.Draw(&s.panels, nil); err != nil {
		return err
	}
	if err := ctx.Draw(&s.glyphs, atlas.Texture); err != nil {
		return err
	}
	return ctx.Present()
}
