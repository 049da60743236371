package gfx

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
)

// Priority is the order in which Default picks among registered backends.
var Priority = []string{"vulkan", "dx12", "metal", "gl", "gles", "software"}

var backends = gpucontext.NewRegistry[GraphicsBackend](gpucontext.WithPriority(Priority...))

// Register adds a backend factory. Registering an existing name replaces it.
func Register(name string, factory func() GraphicsBackend) {
	backends.Register(name, factory)
}

// Unregister removes a backend factory.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names, most preferred first.
func Available() []string {
	names := backends.Available()
	rank := func(n string) int {
		if i := slices.Index(Priority, n); i >= 0 {
			return i
		}
		return len(Priority)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := rank(a) - rank(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return names
}

// Get returns a new, uninitialized backend, or nil if name is unknown.
func Get(name string) GraphicsBackend {
	return backends.Get(name)
}

// Default returns the name of the preferred registered backend.
func Default() string {
	return backends.BestName()
}

// Open returns a new backend by name. An empty name or "auto" selects
// Default.
func Open(name string) (GraphicsBackend, error) {
	if name == "" || name == "auto" {
		name = Default()
		if name == "" {
			return nil, ErrNoBackend
		}
	}
	if !backends.Has(name) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Available(), ", "))
	}
	b := backends.Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q factory returned nil", ErrUnknownBackend, name)
	}
	return b, nil
}
