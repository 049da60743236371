package gfx

import (
	"errors"
	"fmt"
)

// Sentinel errors for gfx package.
var (
	// ErrUnknownBackend is returned by Open for unregistered names.
	ErrUnknownBackend = errors.New("gfx: unknown backend")

	// ErrNoBackend is returned by Open when nothing is registered.
	ErrNoBackend = errors.New("gfx: no backend registered")

	// ErrNoAdapter is returned when no adapter can be opened.
	ErrNoAdapter = errors.New("gfx: no suitable adapter")

	// ErrNotInitialized is returned when a backend is used before Init.
	ErrNotInitialized = errors.New("gfx: backend not initialized")

	// ErrNoSurface is returned when a frame is started without a surface.
	ErrNoSurface = errors.New("gfx: no surface")

	// ErrNotInFrame is returned by Draw and Present outside BeginFrame.
	ErrNotInFrame = errors.New("gfx: no frame in progress")

	// ErrInFrame is returned by ReleaseTexture between Frame and Present.
	ErrInFrame = errors.New("gfx: frame in progress")

	// ErrClosed is returned when a closed context or backend is used.
	ErrClosed = errors.New("gfx: closed")

	// ErrForeignTexture is returned when a texture from another backend
	// is passed to Draw.
	ErrForeignTexture = errors.New("gfx: texture belongs to another backend")

	// ErrUnsupportedTarget is returned when a backend cannot use a target.
	ErrUnsupportedTarget = errors.New("gfx: unsupported target")

	// ErrInvalidSize is returned for non-positive texture or surface sizes.
	ErrInvalidSize = errors.New("gfx: size must be positive")
)

// StepError records which bring-up or frame step of a backend failed.
type StepError struct {
	Backend string
	Step    string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("gfx: %s: %s: %v", e.Backend, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Step wraps err in a *StepError, or returns nil if err is nil.
func Step(backend, step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Backend: backend, Step: step, Err: err}
}
