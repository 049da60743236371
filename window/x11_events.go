//go:build linux

package window

import (
	"encoding/binary"

	"github.com/gogpu/glyphlab"
	"github.com/gogpu/gpucontext"
)

// Core protocol event types (X.h).
const (
	xKeyPress        = 2
	xKeyRelease      = 3
	xButtonPress     = 4
	xButtonRelease   = 5
	xMotionNotify    = 6
	xFocusIn         = 9
	xFocusOut        = 10
	xDestroyNotify   = 17
	xConfigureNotify = 22
	xClientMessage   = 33
)

// Focus change modes caused by keyboard grabs.
const (
	xNotifyGrab   = 1
	xNotifyUngrab = 2
)

// xEventMask selects keys, buttons, pointer motion, structure and focus.
const xEventMask = 1<<0 | 1<<1 | 1<<2 | 1<<3 | 1<<6 | 1<<17 | 1<<21

// xevent is the 192-byte XEvent union as laid out on LP64.
type xevent [192]byte

func (e *xevent) kind() int32 {
	return e.int32At(0)
}

func (e *xevent) int32At(o int) int32 {
	return int32(binary.LittleEndian.Uint32(e[o:])) //nolint:gosec // C int
}

func (e *xevent) uint32At(o int) uint32 {
	return binary.LittleEndian.Uint32(e[o:])
}

func (e *xevent) longAt(o int) uint64 {
	return binary.LittleEndian.Uint64(e[o:])
}

// Field offsets shared by XKeyEvent, XButtonEvent and XMotionEvent.
const (
	xOffX      = 64
	xOffY      = 68
	xOffState  = 80
	xOffDetail = 84 // keycode or button
)

// xstate turns decoded X events into callbacks.
type xstate struct {
	events

	wmDelete      uintptr
	width, height int
	closing       bool
	destroyed     bool

	// lookup resolves a key event to its keysym and the Latin-1 text it
	// produces.
	lookup func(ev *xevent) (keysym uint64, text string)
}

func (s *xstate) handle(ev *xevent) {
	switch kind := ev.kind(); kind {
	case xKeyPress, xKeyRelease:
		pressed := kind == xKeyPress
		sym, text := s.lookup(ev)
		k, m := mapKeysym(sym), mapState(ev.uint32At(xOffState))
		if pressed && k == gpucontext.KeyEscape {
			s.closing = true
		}
		s.emitKey(pressed, k, m)
		if pressed {
			for _, r := range text {
				s.emitText(string(r))
			}
		}

	case xButtonPress, xButtonRelease:
		pressed := kind == xButtonPress
		x, y := float64(ev.int32At(xOffX)), float64(ev.int32At(xOffY))
		button := ev.uint32At(xOffDetail)
		if dx, dy, ok := scrollDelta(button); ok {
			if pressed {
				s.emitScroll(dx, dy)
			}
			return
		}
		if b, ok := mapXButton(button); ok {
			s.emitButton(pressed, b, x, y)
		}

	case xMotionNotify:
		s.emitMouseMove(float64(ev.int32At(xOffX)), float64(ev.int32At(xOffY)))

	case xConfigureNotify:
		w, h := int(ev.int32At(56)), int(ev.int32At(60))
		if w == s.width && h == s.height {
			return
		}
		s.width, s.height = w, h
		glyphlab.Logger().Debug("window: framebuffer resized", "width", w, "height", h)
		s.emitResize(w, h)

	case xFocusIn, xFocusOut:
		if mode := ev.int32At(40); mode == xNotifyGrab || mode == xNotifyUngrab {
			return
		}
		s.emitFocus(kind == xFocusIn)

	case xClientMessage:
		if s.wmDelete != 0 && uintptr(ev.longAt(56)) == s.wmDelete {
			s.closing = true
		}

	case xDestroyNotify:
		s.closing, s.destroyed = true, true
	}
}

// scrollDelta maps the wheel buttons 4 to 7 to scroll offsets.
func scrollDelta(button uint32) (dx, dy float64, ok bool) {
	switch button {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return 1, 0, true
	case 7:
		return -1, 0, true
	}
	return 0, 0, false
}

func mapXButton(button uint32) (gpucontext.MouseButton, bool) {
	switch button {
	case 1:
		return gpucontext.MouseButtonLeft, true
	case 2:
		return gpucontext.MouseButtonMiddle, true
	case 3:
		return gpucontext.MouseButtonRight, true
	case 8:
		return gpucontext.MouseButton4, true
	case 9:
		return gpucontext.MouseButton5, true
	}
	return 0, false
}

// mapState converts an X modifier state mask. Mod1 is Alt, Mod2 NumLock
// and Mod4 Super on every common keymap.
func mapState(state uint32) gpucontext.Modifiers {
	var m gpucontext.Modifiers
	if state&1 != 0 {
		m |= gpucontext.ModShift
	}
	if state&2 != 0 {
		m |= gpucontext.ModCapsLock
	}
	if state&4 != 0 {
		m |= gpucontext.ModControl
	}
	if state&8 != 0 {
		m |= gpucontext.ModAlt
	}
	if state&16 != 0 {
		m |= gpucontext.ModNumLock
	}
	if state&64 != 0 {
		m |= gpucontext.ModSuper
	}
	return m
}

var keysymTable = map[uint64]gpucontext.Key{
	0x0020: gpucontext.KeySpace,
	0x0027: gpucontext.KeyApostrophe,
	0x002c: gpucontext.KeyComma,
	0x002d: gpucontext.KeyMinus,
	0x002e: gpucontext.KeyPeriod,
	0x002f: gpucontext.KeySlash,
	0x003b: gpucontext.KeySemicolon,
	0x003d: gpucontext.KeyEqual,
	0x005b: gpucontext.KeyLeftBracket,
	0x005c: gpucontext.KeyBackslash,
	0x005d: gpucontext.KeyRightBracket,
	0x0060: gpucontext.KeyGrave,

	0xff08: gpucontext.KeyBackspace,
	0xff09: gpucontext.KeyTab,
	0xff0d: gpucontext.KeyEnter,
	0xff13: gpucontext.KeyPause,
	0xff14: gpucontext.KeyScrollLock,
	0xff1b: gpucontext.KeyEscape,
	0xff50: gpucontext.KeyHome,
	0xff51: gpucontext.KeyLeft,
	0xff52: gpucontext.KeyUp,
	0xff53: gpucontext.KeyRight,
	0xff54: gpucontext.KeyDown,
	0xff55: gpucontext.KeyPageUp,
	0xff56: gpucontext.KeyPageDown,
	0xff57: gpucontext.KeyEnd,
	0xff61: gpucontext.KeyPrintScreen,
	0xff63: gpucontext.KeyInsert,
	0xff7f: gpucontext.KeyNumLock,
	0xffff: gpucontext.KeyDelete,

	0xff8d: gpucontext.KeyNumpadEnter,
	0xffaa: gpucontext.KeyNumpadMultiply,
	0xffab: gpucontext.KeyNumpadAdd,
	0xffad: gpucontext.KeyNumpadSubtract,
	0xffae: gpucontext.KeyNumpadDecimal,
	0xffaf: gpucontext.KeyNumpadDivide,

	0xffe1: gpucontext.KeyLeftShift,
	0xffe2: gpucontext.KeyRightShift,
	0xffe3: gpucontext.KeyLeftControl,
	0xffe4: gpucontext.KeyRightControl,
	0xffe5: gpucontext.KeyCapsLock,
	0xffe9: gpucontext.KeyLeftAlt,
	0xffea: gpucontext.KeyRightAlt,
	0xffeb: gpucontext.KeyLeftSuper,
	0xffec: gpucontext.KeyRightSuper,
}

// mapKeysym converts an unshifted keysym to a key.
func mapKeysym(sym uint64) gpucontext.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return gpucontext.KeyA + gpucontext.Key(sym-'a')
	case sym >= 'A' && sym <= 'Z':
		return gpucontext.KeyA + gpucontext.Key(sym-'A')
	case sym >= '0' && sym <= '9':
		return gpucontext.Key0 + gpucontext.Key(sym-'0')
	case sym >= 0xffbe && sym <= 0xffc9: // F1..F12
		return gpucontext.KeyF1 + gpucontext.Key(sym-0xffbe)
	case sym >= 0xffb0 && sym <= 0xffb9: // KP_0..KP_9
		return gpucontext.KeyNumpad0 + gpucontext.Key(sym-0xffb0)
	}
	if k, ok := keysymTable[sym]; ok {
		return k
	}
	return gpucontext.KeyUnknown
}

// latin1 decodes XLookupString output, dropping control characters.
func latin1(b []byte) string {
	rs := make([]rune, 0, len(b))
	for _, c := range b {
		if c < 0x20 || (c >= 0x7f && c < 0xa0) {
			continue
		}
		rs = append(rs, rune(c))
	}
	return string(rs)
}
