package text

import "image"

// Texture is a single-channel coverage texture that glyph bitmaps are
// uploaded into. Backends in gfx implement it on GPU textures; ImageTexture
// implements it in memory.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// WriteRegion copies a width x height block of coverage bytes, top row
	// first, to the texture at (x, y).
	WriteRegion(x, y, width, height int, pix []byte) error
}

// TextureAllocator creates zero-initialized coverage textures.
type TextureAllocator interface {
	NewCoverageTexture(label string, width, height int) (Texture, error)
}

// ImageAllocator allocates ImageTextures. It is used when BuildAtlas is
// given a nil allocator.
type ImageAllocator struct{}

// NewCoverageTexture implements TextureAllocator.
func (ImageAllocator) NewCoverageTexture(_ string, width, height int) (Texture, error) {
	return NewImageTexture(width, height), nil
}

// ImageTexture is an in-memory coverage texture backed by image.Alpha.
type ImageTexture struct {
	Img *image.Alpha
}

// NewImageTexture returns a zero-initialized texture.
func NewImageTexture(width, height int) *ImageTexture {
	return &ImageTexture{Img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// Size implements Texture.
func (t *ImageTexture) Size() (int, int) {
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

// WriteRegion implements Texture.
func (t *ImageTexture) WriteRegion(x, y, width, height int, pix []byte) error {
	if err := CheckRegion(t, x, y, width, height, pix); err != nil {
		return err
	}
	for row := 0; row < height; row++ {
		off := t.Img.PixOffset(x, y+row)
		copy(t.Img.Pix[off:off+width], pix[row*width:(row+1)*width])
	}
	return nil
}

// CheckRegion validates an upload against the texture bounds. Texture
// implementations call it before touching their storage.
func CheckRegion(t Texture, x, y, width, height int, pix []byte) error {
	tw, th := t.Size()
	if x < 0 || y < 0 || width < 0 || height < 0 ||
		x+width > tw || y+height > th || len(pix) != width*height {
		return &RegionError{
			X: x, Y: y, Width: width, Height: height,
			TexWidth: tw, TexHeight: th, Pixels: len(pix),
		}
	}
	return nil
}
