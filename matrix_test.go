package glyphlab

import (
	"encoding/binary"
	"math"
	"testing"
)

func near(a, b Vec2) bool {
	return math.Abs(float64(a.X-b.X)) < 1e-5 && math.Abs(float64(a.Y-b.Y)) < 1e-5
}

func TestScreenProjection(t *testing.T) {
	m := Screen(800, 600)
	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{V2(0, 0), V2(-1, -1)},
		{V2(800, 600), V2(1, 1)},
		{V2(400, 300), V2(0, 0)},
		{V2(800, 0), V2(1, -1)},
	}
	for _, tt := range tests {
		if got := m.Apply(tt.in); !near(got, tt.want) {
			t.Errorf("Screen(800, 600).Apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrthoDepth(t *testing.T) {
	m := Ortho(0, 1, 0, 1, -1, 1)
	if m[10] != -1 || m[14] != 0 || m[15] != 1 {
		t.Errorf("Ortho depth terms = (%v, %v, %v), want (-1, 0, 1)", m[10], m[14], m[15])
	}
}

func TestIdentity4(t *testing.T) {
	p := V2(3, -7)
	if got := Identity4().Apply(p); !near(got, p) {
		t.Errorf("Identity4().Apply(%v) = %v", p, got)
	}
}

func TestMat4Bytes(t *testing.T) {
	m := Screen(640, 480)
	buf := m.Bytes()
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	for i := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != m[i] {
			t.Errorf("element %d = %v, want %v", i, got, m[i])
		}
	}
}
