// Package status turns native status codes into readable errors.
//
// It knows Windows HRESULTs (COM, Direct3D 11 and DXGI), OpenGL error
// enums and the gogpu/wgpu HAL sentinels, and renders any of them through
// Describe for fatal error reports.
package status

import (
	"fmt"

	"github.com/gogpu/glyphlab"
)

// Code is a known HRESULT.
type Code struct {
	Value       uint32
	Name        string
	Description string
}

// Success codes.
const (
	SOK    uint32 = 0x00000000
	SFalse uint32 = 0x00000001
)

var codes = []Code{
	{SOK, "S_OK", "Operation successful."},
	{SFalse, "S_FALSE", "Successful but nonstandard completion (the precise meaning depends on context)."},

	{0x80004001, "E_NOTIMPL", "The method call isn't implemented with the passed parameter combination."},
	{0x80004002, "E_NOINTERFACE", "No such interface supported."},
	{0x80004003, "E_POINTER", "An invalid pointer was used."},
	{0x80004004, "E_ABORT", "Operation aborted."},
	{0x80004005, "E_FAIL", "Attempted to create a device with the debug layer enabled and the layer is not installed."},
	{0x8000000A, "E_PENDING", "The data necessary to complete this operation is not yet available."},
	{0x8000FFFF, "E_UNEXPECTED", "Catastrophic failure."},
	{0x80070005, "E_ACCESSDENIED", "General access denied error."},
	{0x80070006, "E_HANDLE", "The handle is invalid."},
	{0x8007000E, "E_OUTOFMEMORY", "Direct3D could not allocate sufficient memory to complete the call."},
	{0x80070057, "E_INVALIDARG", "An invalid parameter was passed to the returning function."},
	{0x80070070, "E_DISK_FULL", "The disk is full."},

	{0x887C0001, "D3D11_ERROR_TOO_MANY_UNIQUE_STATE_OBJECTS", "There are too many unique instances of a particular type of state object."},
	{0x887C0002, "D3D11_ERROR_FILE_NOT_FOUND", "The file was not found."},
	{0x887C0003, "D3D11_ERROR_TOO_MANY_UNIQUE_VIEW_OBJECTS", "There are too many unique instances of a particular type of view object."},
	{0x887C0004, "D3D11_ERROR_DEFERRED_CONTEXT_MAP_WITHOUT_INITIAL_DISCARD", "The first call to ID3D11DeviceContext::Map after either ID3D11Device::CreateDeferredContext or ID3D11DeviceContext::FinishCommandList per Resource was not D3D11_MAP_WRITE_DISCARD."},

	{0x887A0001, "DXGI_ERROR_INVALID_CALL", "The method call is invalid. For example, a method's parameter may not be a valid pointer."},
	{0x887A0002, "DXGI_ERROR_NOT_FOUND", "The enumerated ordinal is out of range, or the GUID passed to GetPrivateData is not recognized."},
	{0x887A0003, "DXGI_ERROR_MORE_DATA", "The buffer supplied by the application is not big enough to hold the requested data."},
	{0x887A0004, "DXGI_ERROR_UNSUPPORTED", "The requested functionality is not supported by the device or the driver."},
	{0x887A0005, "DXGI_ERROR_DEVICE_REMOVED", "The video card has been physically removed from the system, or a driver upgrade for the video card has occurred. The application should destroy and recreate the device."},
	{0x887A0006, "DXGI_ERROR_DEVICE_HUNG", "The application's device failed due to badly formed commands sent by the application. This is a design-time issue that should be investigated and fixed."},
	{0x887A0007, "DXGI_ERROR_DEVICE_RESET", "The device failed due to a badly formed command. This is a run-time issue; The application should destroy and recreate the device."},
	{0x887A000A, "DXGI_ERROR_WAS_STILL_DRAWING", "The GPU was busy at the moment when a call was made to perform an operation, and did not execute or schedule the operation."},
	{0x887A000B, "DXGI_ERROR_FRAME_STATISTICS_DISJOINT", "An event (for example, a power cycle) interrupted the gathering of presentation statistics."},
	{0x887A000C, "DXGI_ERROR_GRAPHICS_VIDPN_SOURCE_IN_USE", "The application attempted to acquire exclusive ownership of an output, but failed because some other application already acquired ownership."},
	{0x887A0020, "DXGI_ERROR_DRIVER_INTERNAL_ERROR", "The driver encountered a problem and was put into the device removed state."},
	{0x887A0021, "DXGI_ERROR_NONEXCLUSIVE", "A global counter resource is in use, and the Direct3D device can't currently use the counter resource."},
	{0x887A0022, "DXGI_ERROR_NOT_CURRENTLY_AVAILABLE", "The resource or request is not currently available, but it might become available later."},
	{0x887A0023, "DXGI_ERROR_REMOTE_CLIENT_DISCONNECTED", "Reserved."},
	{0x887A0024, "DXGI_ERROR_REMOTE_OUTOFMEMORY", "Reserved."},
	{0x887A0026, "DXGI_ERROR_ACCESS_LOST", "The desktop duplication interface is invalid."},
	{0x887A0027, "DXGI_ERROR_WAIT_TIMEOUT", "The time-out interval elapsed before the next desktop frame was available."},
	{0x887A0028, "DXGI_ERROR_SESSION_DISCONNECTED", "The Remote Desktop Services session is currently disconnected."},
	{0x887A0029, "DXGI_ERROR_RESTRICT_TO_OUTPUT_STALE", "The DXGI output (monitor) to which the swap chain content was restricted is now disconnected or changed."},
	{0x887A002A, "DXGI_ERROR_CANNOT_PROTECT_CONTENT", "DXGI can't provide content protection on the swap chain."},
	{0x887A002B, "DXGI_ERROR_ACCESS_DENIED", "You tried to use a resource to which you did not have the required access privileges."},
	{0x887A002C, "DXGI_ERROR_NAME_ALREADY_EXISTS", "The supplied name of a resource is already associated with some other resource."},
	{0x887A002D, "DXGI_ERROR_SDK_COMPONENT_MISSING", "The operation depends on an SDK component that is missing or mismatched."},
	{0x887A0036, "DXGI_ERROR_ALREADY_EXISTS", "The desired element already exists."},
}

var byValue = func() map[uint32]Code {
	m := make(map[uint32]Code, len(codes))
	for _, c := range codes {
		m[c.Value] = c
	}
	return m
}()

// Lookup returns the table entry for hr.
func Lookup(hr uint32) (Code, bool) {
	c, ok := byValue[hr]
	return c, ok
}

// Codes returns a copy of the HRESULT table.
func Codes() []Code {
	return append([]Code(nil), codes...)
}

// Error is a failed HRESULT.
type Error struct {
	HRESULT uint32
}

func (e *Error) Error() string {
	if c, ok := Lookup(e.HRESULT); ok {
		return fmt.Sprintf("%s - %s", c.Name, c.Description)
	}
	return fmt.Sprintf("HRESULT %#x", e.HRESULT)
}

// Code returns the raw HRESULT as a signed value.
func (e *Error) Code() int32 {
	return int32(e.HRESULT) //nolint:gosec // HRESULT is a signed 32-bit value
}

// Failed reports whether hr has the severity bit set.
func Failed(hr uint32) bool {
	return hr&0x80000000 != 0
}

// HRESULT converts a native result to an error. Success codes yield nil;
// S_FALSE additionally logs a warning naming op.
func HRESULT(op string, hr int32) error {
	v := uint32(hr) //nolint:gosec // reinterpret the bit pattern
	if v == SFalse {
		c, _ := Lookup(SFalse)
		glyphlab.Logger().Warn("status: nonstandard completion", "op", op, "code", c.Name, "detail", c.Description)
		return nil
	}
	if !Failed(v) {
		return nil
	}
	if op == "" {
		return &Error{HRESULT: v}
	}
	return fmt.Errorf("%s: %w", op, &Error{HRESULT: v})
}
