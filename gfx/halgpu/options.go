package halgpu

import (
	"github.com/gogpu/gputypes"
)

// Option configures a Backend.
type Option func(*config)

type config struct {
	presentMode  gputypes.PresentMode
	format       gputypes.TextureFormat
	adapterIndex int
	debug        bool
	maxVertices  int
}

func defaultConfig() config {
	return config{
		presentMode:  gputypes.PresentModeFifo,
		format:       gputypes.TextureFormatBGRA8Unorm,
		adapterIndex: -1,
		maxVertices:  1 << 20,
	}
}

// WithPresentMode selects the surface present mode. The default is FIFO.
func WithPresentMode(mode gputypes.PresentMode) Option {
	return func(c *config) {
		c.presentMode = mode
	}
}

// WithSurfaceFormat sets the preferred surface format. If the surface does
// not support it, the first supported format is used.
func WithSurfaceFormat(format gputypes.TextureFormat) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithAdapter forces the adapter at index in enumeration order.
func WithAdapter(index int) Option {
	return func(c *config) {
		c.adapterIndex = index
	}
}

// WithDebug enables the API debug layer when the HAL supports one.
func WithDebug() Option {
	return func(c *config) {
		c.debug = true
	}
}

// WithMaxVertices caps the vertices accepted per frame.
func WithMaxVertices(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxVertices = n
		}
	}
}
