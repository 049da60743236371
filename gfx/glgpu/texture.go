//go:build cgo

package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/gfx"
	"github.com/gogpu/glyphlab/text"
)

// Texture is a GL_R8 coverage texture.
type Texture struct {
	b      *Backend
	id     uint32
	width  int
	height int
}

var _ gfx.Texture = (*Texture)(nil)

// CreateTexture implements gfx.GraphicsBackend.
func (b *Backend) CreateTexture(width, height int) (gfx.Texture, error) {
	if b.closed {
		return nil, gfx.ErrClosed
	}
	if b.target == nil {
		return nil, gfx.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", gfx.ErrInvalidSize, width, height)
	}
	return b.newTexture(width, height)
}

func (b *Backend) newTexture(width, height int) (*Texture, error) {
	t := &Texture{b: b, width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// Storage from TexImage2D with a nil pointer is undefined, so upload
	// zeros.
	zero := make([]byte, width*height)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	//nolint:gosec // validated positive
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(width), int32(height), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(zero))
	if err := check("create texture"); err != nil {
		gl.DeleteTextures(1, &t.id)
		return nil, err
	}
	b.textures[t] = struct{}{}
	return t, nil
}

// Size implements text.Texture.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// WriteRegion implements text.Texture. Rows are uploaded top row first, so
// v = 0 addresses the first row as in the other backends.
func (t *Texture) WriteRegion(x, y, width, height int, pix []byte) error {
	if t.id == 0 {
		return fmt.Errorf("glgpu: write to destroyed texture")
	}
	if err := text.CheckRegion(t, x, y, width, height, pix); err != nil {
		return err
	}
	if width == 0 || height == 0 {
		return nil
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	//nolint:gosec // bounds checked by CheckRegion
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(width), int32(height), gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	glyphlab.Logger().Debug("glgpu: texture upload", "id", t.id, "x", x, "y", y, "width", width, "height", height)
	return check("write texture")
}

// Destroy implements gfx.Texture. It is idempotent.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
	delete(t.b.textures, t)
}
