package glgpu

// Option configures a Backend.
type Option func(*config)

type config struct {
	debug bool
}

// WithDebug routes driver debug messages to the logger when the context
// supports KHR_debug.
func WithDebug() Option {
	return func(c *config) {
		c.debug = true
	}
}
