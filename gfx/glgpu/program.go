//go:build cgo

package glgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/glyphlab/shader"
)

// Null-terminated uniform names for gl.Str.
const (
	projectionUniform = shader.ProjectionUniform + "\x00"
	coverageUniform   = shader.CoverageUniform + "\x00"
)

// linkProgram compiles the text shader pair and links it.
func linkProgram() (uint32, error) {
	vs, err := compileShader(shader.TextVertexGLSL, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(shader.TextFragmentGLSL, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.BindFragDataLocation(prog, 0, gl.Str("frag_color\x00"))
	gl.LinkProgram(prog)

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(msg))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(msg, "\x00\n"))
	}
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)
	return prog, nil
}

func compileShader(src string, kind uint32) (uint32, error) {
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(msg))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(msg, "\x00\n"))
	}
	return sh, nil
}
