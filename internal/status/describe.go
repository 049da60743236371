package status

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

var halMessages = []struct {
	err error
	msg string
}{
	{hal.ErrDeviceLost, "the GPU device was lost (driver reset, removal or crash)"},
	{hal.ErrSurfaceOutdated, "the window surface no longer matches the window and must be reconfigured"},
	{hal.ErrSurfaceLost, "the window surface was destroyed"},
	{hal.ErrDeviceOutOfMemory, "the GPU ran out of memory"},
	{hal.ErrBackendNotFound, "the graphics backend is not compiled into this binary"},
	{hal.ErrZeroArea, "the surface has zero width or height"},
	{hal.ErrTimeout, "the GPU did not respond in time"},
	{hal.ErrDriverBug, "the driver violated the graphics API contract"},
}

// coder is implemented by errors that carry a native result code.
type coder interface {
	Code() int32
}

// Describe renders err for a fatal error report. Known HAL sentinels,
// HRESULTs and GL errors get a readable explanation appended. Any other
// error with a Code method is looked up in the HRESULT table and otherwise
// shown with its raw numeric value.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	text := err.Error()

	for _, m := range halMessages {
		if errors.Is(err, m.err) {
			return text + " (" + m.msg + ")"
		}
	}

	var hr *Error
	if errors.As(err, &hr) {
		if _, ok := Lookup(hr.HRESULT); ok {
			return text
		}
		return text + " (unknown HRESULT)"
	}

	var glErr *GLError
	if errors.As(err, &glErr) {
		return text
	}

	var c coder
	if errors.As(err, &c) {
		code := c.Code()
		if known, ok := Lookup(uint32(code)); ok { //nolint:gosec // reinterpret the bit pattern
			return fmt.Sprintf("%s (%s - %s)", text, known.Name, known.Description)
		}
		return fmt.Sprintf("%s (code %d)", text, code)
	}
	return text
}
