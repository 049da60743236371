package gfx

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func withRegistered(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		name := n
		Register(name, func() GraphicsBackend { return newFake(name) })
	}
	t.Cleanup(func() {
		for _, n := range names {
			Unregister(n)
		}
	})
}

func TestRegistryPriority(t *testing.T) {
	withRegistered(t, "zz-custom", "software", "gl", "vulkan")

	got := Available()
	// Other packages may register real backends; only check relative order.
	var ours []string
	for _, n := range got {
		if slices.Contains([]string{"zz-custom", "software", "gl", "vulkan"}, n) {
			ours = append(ours, n)
		}
	}
	want := []string{"vulkan", "gl", "software", "zz-custom"}
	if diff := cmp.Diff(want, ours); diff != "" {
		t.Errorf("Available() order mismatch (-want +got):\n%s", diff)
	}
	if Default() != "vulkan" {
		t.Errorf("Default() = %q, want vulkan", Default())
	}
}

func TestOpen(t *testing.T) {
	withRegistered(t, "software")

	b, err := Open("software")
	if err != nil {
		t.Fatalf("Open(software) error = %v", err)
	}
	if b.Name() != "software" {
		t.Errorf("Name() = %q", b.Name())
	}

	// Each Open returns a fresh backend.
	b2, _ := Open("software")
	if b == b2 {
		t.Error("Open returned the same backend twice")
	}

	if _, err := Open("auto"); err != nil {
		t.Errorf("Open(auto) error = %v", err)
	}

	_, err = Open("directx9")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(directx9) error = %v, want %v", err, ErrUnknownBackend)
	}
}

func TestGetUnknown(t *testing.T) {
	if b := Get("nope"); b != nil {
		t.Errorf("Get(nope) = %v, want nil", b)
	}
}
