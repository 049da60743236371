package gfx

import (
	"errors"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/glyphlab/text"
	"github.com/gogpu/gpucontext"
)

// fakeBackend records calls so tests can check ordering.
type fakeBackend struct {
	name  string
	calls []string
	fail  map[string]error

	textures []*fakeTexture
	draws    int
	lastProj glyphlab.Mat4
	lastTex  Texture
}

func newFake(name string) *fakeBackend {
	return &fakeBackend{name: name, fail: map[string]error{}}
}

func (b *fakeBackend) record(call string) error {
	b.calls = append(b.calls, call)
	return b.fail[call]
}

func (b *fakeBackend) Name() string { return b.name }
func (b *fakeBackend) Init() error  { return b.record("Init") }

func (b *fakeBackend) CreateSurface(Target, int, int) error { return b.record("CreateSurface") }
func (b *fakeBackend) Resize(int, int) error                { return b.record("Resize") }
func (b *fakeBackend) BeginFrame(glyphlab.Color) error      { return b.record("BeginFrame") }
func (b *fakeBackend) Present() error                       { return b.record("Present") }
func (b *fakeBackend) Close()                               { _ = b.record("Close") }

func (b *fakeBackend) CreateTexture(w, h int) (Texture, error) {
	if err := b.record("CreateTexture"); err != nil {
		return nil, err
	}
	t := &fakeTexture{ImageTexture: text.NewImageTexture(w, h), owner: b}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) Draw(batch *glyphlab.Batch, tex Texture, proj glyphlab.Mat4) error {
	b.draws++
	b.lastProj = proj
	b.lastTex = tex
	return b.record("Draw")
}

func (b *fakeBackend) Adapter() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeSoftware}
}

type fakeTexture struct {
	*text.ImageTexture
	owner     *fakeBackend
	destroyed bool
}

func (t *fakeTexture) Destroy() {
	t.destroyed = true
	_ = t.owner.record("DestroyTexture")
}

// foreignTexture satisfies text.Texture but not Texture.
type foreignTexture struct{}

func (foreignTexture) Size() (int, int) { return 1, 1 }

func (foreignTexture) WriteRegion(int, int, int, int, []byte) error { return nil }

var errFake = errors.New("fake failure")
