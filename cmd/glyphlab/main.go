// Command glyphlab renders bitmap-atlas text through the glyphlab
// backends and inspects the pieces that make it up.
//
// Usage:
//
//	glyphlab run      [-backend name] [-font file] [-size px] [-text s] [-config file.toml] [-watch] [-v]
//	glyphlab atlas    [-font file] [-size px] [-scale n] [-o file.png]
//	glyphlab shaders  [-target spirv|glsl|hlsl|msl]
//	glyphlab backends [-probe]
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/internal/status"

	_ "github.com/gogpu/glyphlab/gfx/halgpu"
)

func init() {
	// The window and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"run", "open a window and draw text", runCmd},
	{"atlas", "build a glyph atlas and write it as PNG", atlasCmd},
	{"shaders", "print the text shader for a target language", shadersCmd},
	{"backends", "list graphics backends", backendsCmd},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("glyphlab: ")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name == name {
			if err := c.run(args); err != nil {
				log.Fatalf("%s: %s", name, status.Describe(err))
			}
			return
		}
	}
	log.Printf("unknown command %q", name)
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: glyphlab <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-9s %s\n", c.name, c.usage)
	}
}

// setupLogging routes library logs to stderr. Debug output is enabled
// with verbose.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	glyphlab.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
