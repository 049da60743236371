//go:build linux && !cgo

package window

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Xlib entry points called through goffi, so the window works in binaries
// built with CGO_ENABLED=0 next to the HAL backends. Display* and every
// XID (Window, Atom, KeySym) are pointer-sized on LP64 and use the pointer
// descriptor; C int and Bool use SInt32.
type xproc struct {
	name string
	ret  *types.TypeDescriptor
	args []*types.TypeDescriptor

	sym unsafe.Pointer
	cif types.CallInterface
}

func (p *xproc) call(ret unsafe.Pointer, args ...unsafe.Pointer) error {
	if err := ffi.CallFunction(&p.cif, p.sym, ret, args); err != nil {
		return fmt.Errorf("window: %s: %w", p.name, err)
	}
	return nil
}

func sig(ret *types.TypeDescriptor, args ...*types.TypeDescriptor) xproc {
	return xproc{ret: ret, args: args}
}

var (
	tPtr = types.PointerTypeDescriptor
	tInt = types.SInt32TypeDescriptor
	tU32 = types.UInt32TypeDescriptor
)

var (
	// Display *XOpenDisplay(char *display_name)
	xOpenDisplay = sig(tPtr, tPtr)
	// int XCloseDisplay(Display *display)
	xCloseDisplay = sig(tInt, tPtr)
	// int XDefaultScreen(Display *display)
	xDefaultScreen = sig(tInt, tPtr)
	// Window XRootWindow(Display *display, int screen_number)
	xRootWindow = sig(tPtr, tPtr, tInt)
	// unsigned long XBlackPixel(Display *display, int screen_number)
	xBlackPixel = sig(tPtr, tPtr, tInt)
	// int XDisplayWidth(Display *display, int screen_number)
	xDisplayWidth = sig(tInt, tPtr, tInt)
	// int XDisplayHeight(Display *display, int screen_number)
	xDisplayHeight = sig(tInt, tPtr, tInt)
	// Window XCreateSimpleWindow(Display*, Window parent, int x, int y,
	//     unsigned int width, unsigned int height, unsigned int border_width,
	//     unsigned long border, unsigned long background)
	xCreateSimpleWindow = sig(tPtr, tPtr, tPtr, tInt, tInt, tU32, tU32, tU32, tPtr, tPtr)
	// int XDestroyWindow(Display*, Window)
	xDestroyWindow = sig(tInt, tPtr, tPtr)
	// int XStoreName(Display*, Window, char *window_name)
	xStoreName = sig(tInt, tPtr, tPtr, tPtr)
	// int XSelectInput(Display*, Window, long event_mask)
	xSelectInput = sig(tInt, tPtr, tPtr, tPtr)
	// Atom XInternAtom(Display*, char *atom_name, Bool only_if_exists)
	xInternAtom = sig(tPtr, tPtr, tPtr, tInt)
	// Status XSetWMProtocols(Display*, Window, Atom *protocols, int count)
	xSetWMProtocols = sig(tInt, tPtr, tPtr, tPtr, tInt)
	// int XChangeProperty(Display*, Window, Atom property, Atom type,
	//     int format, int mode, unsigned char *data, int nelements)
	xChangeProperty = sig(tInt, tPtr, tPtr, tPtr, tPtr, tInt, tInt, tPtr, tInt)
	// int XMapWindow(Display*, Window)
	xMapWindow = sig(tInt, tPtr, tPtr)
	// int XPending(Display*)
	xPending = sig(tInt, tPtr)
	// int XNextEvent(Display*, XEvent *event_return)
	xNextEvent = sig(tInt, tPtr, tPtr)
	// KeySym XLookupKeysym(XKeyEvent *key_event, int index)
	xLookupKeysym = sig(tPtr, tPtr, tInt)
	// int XLookupString(XKeyEvent*, char *buffer_return, int bytes_buffer,
	//     KeySym *keysym_return, XComposeStatus *status_in_out)
	xLookupString = sig(tInt, tPtr, tPtr, tInt, tPtr, tPtr)
	// int XFlush(Display*)
	xFlush = sig(tInt, tPtr)
)

var xprocs = map[string]*xproc{
	"XOpenDisplay":        &xOpenDisplay,
	"XCloseDisplay":       &xCloseDisplay,
	"XDefaultScreen":      &xDefaultScreen,
	"XRootWindow":         &xRootWindow,
	"XBlackPixel":         &xBlackPixel,
	"XDisplayWidth":       &xDisplayWidth,
	"XDisplayHeight":      &xDisplayHeight,
	"XCreateSimpleWindow": &xCreateSimpleWindow,
	"XDestroyWindow":      &xDestroyWindow,
	"XStoreName":          &xStoreName,
	"XSelectInput":        &xSelectInput,
	"XInternAtom":         &xInternAtom,
	"XSetWMProtocols":     &xSetWMProtocols,
	"XChangeProperty":     &xChangeProperty,
	"XMapWindow":          &xMapWindow,
	"XPending":            &xPending,
	"XNextEvent":          &xNextEvent,
	"XLookupKeysym":       &xLookupKeysym,
	"XLookupString":       &xLookupString,
	"XFlush":              &xFlush,
}

var (
	xlibOnce sync.Once
	xlibErr  error
)

// loadXlib opens libX11 and prepares every call interface once.
func loadXlib() error {
	xlibOnce.Do(func() {
		lib, err := ffi.LoadLibrary("libX11.so.6")
		if err != nil {
			lib, err = ffi.LoadLibrary("libX11.so")
			if err != nil {
				xlibErr = fmt.Errorf("window: load libX11: %w", err)
				return
			}
		}
		for name, p := range xprocs {
			p.name = name
			if p.sym, err = ffi.GetSymbol(lib, name); err != nil {
				xlibErr = fmt.Errorf("window: resolve %s: %w", name, err)
				return
			}
			if err = ffi.PrepareCallInterface(&p.cif, types.DefaultCall, p.ret, p.args); err != nil {
				xlibErr = fmt.Errorf("window: prepare %s: %w", name, err)
				return
			}
		}
	})
	return xlibErr
}

// cstring returns a NUL-terminated copy of s.
func cstring(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
