package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"
)

// TextWGSL is the text and solid-quad shader.
//
//go:embed text.wgsl
var TextWGSL string

// TextVertexGLSL and TextFragmentGLSL are the GLSL 330 core pair used by
// the OpenGL backend.
var (
	//go:embed text.vert
	TextVertexGLSL string

	//go:embed text.frag
	TextFragmentGLSL string
)

// Entry points of TextWGSL.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Uniform and sampler names of the GLSL pair.
const (
	ProjectionUniform = "u_projection"
	CoverageUniform   = "u_coverage"
)

// ErrInvalid is returned when a WGSL module fails validation.
var ErrInvalid = errors.New("shader: validation failed")

// Target is a shading language Translate can emit.
type Target int

const (
	SPIRV Target = iota
	GLSL
	HLSL
	MSL
)

var targetNames = [...]string{
	SPIRV: "spirv",
	GLSL:  "glsl",
	HLSL:  "hlsl",
	MSL:   "msl",
}

// String returns the lower-case target name.
func (t Target) String() string {
	if t >= 0 && int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Targets returns every supported target.
func Targets() []Target {
	return []Target{SPIRV, GLSL, HLSL, MSL}
}

// ParseTarget returns the target with the given name (case-insensitive).
func ParseTarget(name string) (Target, error) {
	for i, n := range targetNames {
		if strings.EqualFold(name, n) {
			return Target(i), nil
		}
	}
	return 0, fmt.Errorf("shader: unknown target %q", name)
}

// Source is one translated text unit.
type Source struct {
	// Entry is the entry point compiled into Code, or "" when Code holds
	// every entry point of the module.
	Entry string
	Code  string
}

// Output is the result of Translate.
type Output struct {
	Target Target

	// Words holds the SPIR-V module. Empty for text targets.
	Words []uint32

	// Sources holds the text output. GLSL has one Source per entry point;
	// HLSL and MSL have a single Source with all entry points.
	Sources []Source
}

// String renders the output for display. SPIR-V is shown as a word dump.
func (o *Output) String() string {
	var b strings.Builder
	if o.Target == SPIRV {
		for i, w := range o.Words {
			if i > 0 && i%8 == 0 {
				b.WriteByte('\n')
			} else if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%08x", w)
		}
		b.WriteByte('\n')
		return b.String()
	}
	for i, s := range o.Sources {
		if i > 0 {
			b.WriteByte('\n')
		}
		if s.Entry != "" {
			fmt.Fprintf(&b, "// entry point: %s\n", s.Entry)
		}
		b.WriteString(s.Code)
		if !strings.HasSuffix(s.Code, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Validate parses, lowers and validates a WGSL module.
func Validate(src string) error {
	_, err := lower(src)
	return err
}

// Translate compiles WGSL source for the given target.
func Translate(src string, target Target) (*Output, error) {
	module, err := lower(src)
	if err != nil {
		return nil, err
	}

	out := &Output{Target: target}
	switch target {
	case SPIRV:
		code, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
		if err != nil {
			return nil, err
		}
		if out.Words, err = Words(code); err != nil {
			return nil, err
		}

	case GLSL:
		for _, ep := range module.EntryPoints {
			opts := glsl.DefaultOptions()
			opts.EntryPoint = ep.Name
			code, _, err := glsl.Compile(module, opts)
			if err != nil {
				return nil, fmt.Errorf("shader: glsl %s: %w", ep.Name, err)
			}
			out.Sources = append(out.Sources, Source{Entry: ep.Name, Code: code})
		}

	case HLSL:
		code, _, err := hlsl.Compile(module, hlsl.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("shader: hlsl: %w", err)
		}
		out.Sources = []Source{{Code: code}}

	case MSL:
		code, _, err := msl.Compile(module, msl.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("shader: msl: %w", err)
		}
		out.Sources = []Source{{Code: code}}

	default:
		return nil, fmt.Errorf("shader: unknown target %v", target)
	}
	return out, nil
}

// Words converts a little-endian SPIR-V byte stream to 32-bit words.
func Words(code []byte) ([]uint32, error) {
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("shader: SPIR-V length %d is not a multiple of 4", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}

func lower(src string) (*ir.Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shader: lower: %w", err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("shader: validate: %w", err)
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i := range verrs {
			errs[i] = verrs[i]
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return module, nil
}
