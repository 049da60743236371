package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/glyphlab/shader"
)

func shadersCmd(args []string) error {
	names := make([]string, 0, len(shader.Targets()))
	for _, t := range shader.Targets() {
		names = append(names, t.String())
	}
	fs := flag.NewFlagSet("shaders", flag.ContinueOnError)
	target := fs.String("target", "glsl", "output language: "+strings.Join(names, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := shader.ParseTarget(*target)
	if err != nil {
		return err
	}
	out, err := shader.Translate(shader.TextWGSL, t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, out.String())
	return err
}
