package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/gpucontext"
)

// prober is implemented by backends that can enumerate adapters without
// a surface.
type prober interface {
	Adapters() ([]gpucontext.AdapterInfo, error)
}

func backendsCmd(args []string) error {
	fs := flag.NewFlagSet("backends", flag.ContinueOnError)
	probe := fs.Bool("probe", false, "list the adapters each backend can open")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose)

	def := gfx.Default()
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range gfx.Available() {
		mark := " "
		if name == def {
			mark = "*"
		}
		if !*probe {
			fmt.Fprintf(tw, "%s %s\n", mark, name)
			continue
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, name, probeBackend(gfx.Get(name)))
	}
	return tw.Flush()
}

func probeBackend(b gfx.GraphicsBackend) string {
	if b == nil {
		return "unavailable"
	}
	p, ok := b.(prober)
	if !ok {
		return "needs a window to probe"
	}
	adapters, err := p.Adapters()
	if err != nil {
		return "error: " + err.Error()
	}
	if len(adapters) == 0 {
		return "no adapters"
	}
	s := ""
	for i, a := range adapters {
		if i > 0 {
			s += "; "
		}
		s += fmt.Sprintf("%s (%s)", a.Name, a.Type)
	}
	return s
}
