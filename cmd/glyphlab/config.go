package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// runConfig holds the settings of the run command. It is loaded from an
// optional TOML file; flags given on the command line take precedence.
type runConfig struct {
	Backend    string `toml:"backend"`
	Font       string `toml:"font"`
	Parser     string `toml:"parser"`
	Size       int    `toml:"size"`
	Text       string `toml:"text"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Watch      bool   `toml:"watch"`
	Verbose    bool   `toml:"verbose"`

	// Clear and Foreground are 0xRRGGBB colors.
	Clear      uint32 `toml:"clear"`
	Foreground uint32 `toml:"foreground"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Parser:     "ximage",
		Size:       32,
		Text:       "Hello, glyphlab!",
		Width:      1024,
		Height:     768,
		Clear:      0x1e1e2e,
		Foreground: 0xf5e0dc,
	}
}

// loadConfig decodes a TOML file over cfg. Unknown keys are an error.
func loadConfig(path string, cfg *runConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// overlay copies the values of flags set on the command line from
// flagged into cfg.
func overlay(fs *flag.FlagSet, flagged runConfig, cfg *runConfig) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = flagged.Backend
		case "font":
			cfg.Font = flagged.Font
		case "parser":
			cfg.Parser = flagged.Parser
		case "size":
			cfg.Size = flagged.Size
		case "text":
			cfg.Text = flagged.Text
		case "width":
			cfg.Width = flagged.Width
		case "height":
			cfg.Height = flagged.Height
		case "fullscreen":
			cfg.Fullscreen = flagged.Fullscreen
		case "watch":
			cfg.Watch = flagged.Watch
		case "v":
			cfg.Verbose = flagged.Verbose
		}
	})
}

// parseRunFlags parses args into a runConfig: defaults, then the -config
// file, then explicit flags.
func parseRunFlags(args []string) (runConfig, error) {
	def := defaultRunConfig()
	flagged := def
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.StringVar(&flagged.Backend, "backend", "", "graphics backend (default: best available)")
	fs.StringVar(&flagged.Font, "font", "", "TrueType/OpenType font file (default: Go Regular)")
	fs.StringVar(&flagged.Parser, "parser", def.Parser, "font parser: ximage or gotext")
	fs.IntVar(&flagged.Size, "size", def.Size, "pixel size")
	fs.StringVar(&flagged.Text, "text", def.Text, "text to draw")
	fs.IntVar(&flagged.Width, "width", def.Width, "window width")
	fs.IntVar(&flagged.Height, "height", def.Height, "window height")
	fs.BoolVar(&flagged.Fullscreen, "fullscreen", false, "fullscreen on the primary monitor")
	fs.BoolVar(&flagged.Watch, "watch", false, "rebuild the atlas when the font file changes")
	fs.BoolVar(&flagged.Verbose, "v", false, "debug logging")
	configPath := fs.String("config", "", "TOML configuration file")
	if err := fs.Parse(args); err != nil {
		return runConfig{}, err
	}
	if fs.NArg() > 0 {
		return runConfig{}, fmt.Errorf("unexpected arguments %q", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return runConfig{}, err
		}
	}
	overlay(fs, flagged, &cfg)

	if cfg.Size <= 0 {
		return runConfig{}, fmt.Errorf("invalid size %d", cfg.Size)
	}
	if cfg.Watch && cfg.Font == "" {
		return runConfig{}, fmt.Errorf("-watch needs -font")
	}
	return cfg, nil
}
