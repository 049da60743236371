package window

import "fmt"

// API is the client API a window is created for.
type API int

const (
	// APINone creates no context; the backend attaches its own surface.
	APINone API = iota
	// APIOpenGL creates an OpenGL 4.1 core forward-compatible context.
	APIOpenGL
)

func (a API) String() string {
	switch a {
	case APINone:
		return "none"
	case APIOpenGL:
		return "opengl"
	}
	return fmt.Sprintf("API(%d)", int(a))
}

// Config describes the window to create.
type Config struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
	API        API

	// Hidden creates the window unmapped. Rendering still works, which is
	// what tests against a live display want.
	Hidden bool

	// Debug requests a debug OpenGL context.
	Debug bool
}

// DefaultConfig returns a 1024x768 windowed configuration without a
// client API.
func DefaultConfig() Config {
	return Config{
		Width:  1024,
		Height: 768,
		Title:  "glyphlab",
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", c.Width, c.Height)
	}
	return nil
}
