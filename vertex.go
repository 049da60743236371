package glyphlab

import (
	"encoding/binary"
	"math"
)

// VertexStride is the byte size of one packed vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
const VertexStride = 32

// SolidUV is the texture coordinate that tells the shaders to skip the
// coverage lookup and draw the vertex color at full coverage.
var SolidUV = Vec2{X: -1, Y: -1}

// Vertex is a single vertex as consumed by every backend.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

// Batch is a caller-owned list of triangle vertices. Text layout and the
// shape helpers append to it; a backend draws it; Reset clears it between
// frames without releasing memory.
type Batch struct {
	Vertices []Vertex
}

// Len returns the number of vertices in the batch.
func (b *Batch) Len() int {
	return len(b.Vertices)
}

// Reset removes all vertices, keeping the allocated capacity.
func (b *Batch) Reset() {
	b.Vertices = b.Vertices[:0]
}

// Vertex appends a single vertex.
func (b *Batch) Vertex(pos Vec2, c Color, uv Vec2) {
	b.Vertices = append(b.Vertices, Vertex{
		Position: pos.Array(),
		UV:       uv.Array(),
		Color:    c.Array(),
	})
}

// Triangle appends three vertices. Callers are expected to pass them in
// counter-clockwise order.
func (b *Batch) Triangle(v0, v1, v2 Vertex) {
	b.Vertices = append(b.Vertices, v0, v1, v2)
}

// Quad appends a solid rectangle with its bottom-left corner at (x, y).
func (b *Batch) Quad(x, y, w, h float32, c Color) {
	b.rect(x, y, w, h, c, SolidUV, SolidUV)
}

// Texture appends a rectangle sampling the whole bound texture, with its
// bottom-left corner at (x, y). The texture's first row lands at the top.
func (b *Batch) Texture(x, y, w, h float32, c Color) {
	b.rect(x, y, w, h, c, V2(0, 1), V2(1, 0))
}

// rect appends two counter-clockwise triangles. uv0 is the coordinate at
// (x, y) and uv1 the coordinate at (x+w, y+h).
func (b *Batch) rect(x, y, w, h float32, c Color, uv0, uv1 Vec2) {
	b.Vertex(V2(x, y), c, uv0)
	b.Vertex(V2(x+w, y), c, V2(uv1.X, uv0.Y))
	b.Vertex(V2(x+w, y+h), c, uv1)
	b.Vertex(V2(x+w, y+h), c, uv1)
	b.Vertex(V2(x, y+h), c, V2(uv0.X, uv1.Y))
	b.Vertex(V2(x, y), c, uv0)
}

// Bytes serializes the batch into little-endian vertex data suitable for
// GPU upload, VertexStride bytes per vertex.
func (b *Batch) Bytes() []byte {
	return b.AppendBytes(nil)
}

// AppendBytes appends the serialized vertices to dst and returns the
// extended slice.
func (b *Batch) AppendBytes(dst []byte) []byte {
	if len(b.Vertices) == 0 {
		return dst
	}
	off := len(dst)
	dst = append(dst, make([]byte, len(b.Vertices)*VertexStride)...)
	for i := range b.Vertices {
		writeVertex(dst[off:], &b.Vertices[i])
		off += VertexStride
	}
	return dst
}

func writeVertex(buf []byte, v *Vertex) {
	put := func(i int, f float32) {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	put(0, v.Position[0])
	put(1, v.Position[1])
	put(2, v.UV[0])
	put(3, v.UV[1])
	put(4, v.Color[0])
	put(5, v.Color[1])
	put(6, v.Color[2])
	put(7, v.Color[3])
}

// SignedArea returns twice the signed area of the triangle (a, b, c).
// Positive values are counter-clockwise in the y-up coordinate system.
func SignedArea(a, b, c [2]float32) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
