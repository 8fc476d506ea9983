//go:build linux && !wayland

package wm

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
)

// namedKeysyms maps the fixed token names dispatch.Dispatcher emits
// (§4.6's string-representation rules) to their X11 keysym values.
// Printable ASCII and Latin-1 are not listed here: their keysym equals
// their own codepoint, same as their "0x"+hex(v) representation.
var namedKeysyms = map[string]uint32{
	"BackSpace": 0xff08,
	"Tab":       0xff09,
	"Return":    0xff0d,
	"Escape":    0xff1b,
	"Delete":    0xffff,
	"Up":        0xff52,
	"Down":      0xff54,
	"Left":      0xff51,
	"Right":     0xff53,
}

const f1Keysym uint32 = 0xffbe

func functionKeysym(name string) (uint32, bool) {
	if len(name) < 2 || name[0] != 'F' {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return f1Keysym + uint32(n-1), true
}

var modifierKeysyms = map[string]uint32{
	"control": 0xffe3, // Control_L
	"alt":     0xffe9, // Alt_L
	"shift":   0xffe1, // Shift_L
	"super":   0xffeb, // Super_L
}

func keysymFor(token string) (uint32, error) {
	if strings.HasPrefix(token, "0x") {
		n, err := strconv.ParseUint(token[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex token %q: %w", token, err)
		}
		return uint32(n), nil
	}
	if sym, ok := namedKeysyms[token]; ok {
		return sym, nil
	}
	if sym, ok := functionKeysym(token); ok {
		return sym, nil
	}
	return 0, fmt.Errorf("unrecognized key-sym token %q", token)
}

// XTestEmitter implements dispatch.Emitter by injecting synthetic key
// events directly through the XTEST extension, the library-linking
// replacement for shelling out to xdotool (§9's design note).
type XTestEmitter struct {
	conn *xgb.Conn
	root xproto.Window

	mu      sync.Mutex
	codeMap map[uint32]xproto.Keycode
	minCode xproto.Keycode
	maxCode xproto.Keycode
	spare   xproto.Keycode // a keycode temporarily remapped for keysyms with no native binding
}

// NewXTestEmitter opens its own X11 connection (kept separate from the
// adapter's so key injection never contends with property polling) and
// initializes the XTEST extension and the keysym/keycode table.
func NewXTestEmitter() (*XTestEmitter, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("xgb connect: %w", err)
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("xtest init: %w", err)
	}

	setup := xproto.Setup(conn)
	e := &XTestEmitter{
		conn:    conn,
		root:    setup.DefaultScreen(conn).Root,
		codeMap: map[uint32]xproto.Keycode{},
		minCode: setup.MinKeycode,
		maxCode: setup.MaxKeycode,
	}
	if err := e.loadKeyboardMapping(); err != nil {
		conn.Close()
		return nil, err
	}
	e.spare = e.maxCode // highest keycode is conventionally unassigned, xdotool's own trick
	return e, nil
}

// Close releases the emitter's X11 connection.
func (e *XTestEmitter) Close() {
	e.conn.Close()
}

func (e *XTestEmitter) loadKeyboardMapping() error {
	count := byte(e.maxCode - e.minCode + 1)
	reply, err := xproto.GetKeyboardMapping(e.conn, e.minCode, count).Reply()
	if err != nil {
		return fmt.Errorf("get keyboard mapping: %w", err)
	}
	perKeycode := int(reply.KeysymsPerKeycode)
	if perKeycode == 0 {
		return fmt.Errorf("keyboard mapping reports zero keysyms per keycode")
	}
	for i := 0; i < int(count); i++ {
		code := e.minCode + xproto.Keycode(i)
		for j := 0; j < perKeycode; j++ {
			sym := uint32(reply.Keysyms[i*perKeycode+j])
			if sym == 0 {
				continue
			}
			if _, exists := e.codeMap[sym]; !exists {
				e.codeMap[sym] = code
			}
		}
	}
	return nil
}

// keycodeFor returns the keycode bound to sym, temporarily remapping the
// spare keycode when sym has no existing binding (§4.6: the emitted
// CharValue set is larger than any single keyboard layout covers).
func (e *XTestEmitter) keycodeFor(sym uint32) (code xproto.Keycode, restore func(), err error) {
	if code, ok := e.codeMap[sym]; ok {
		return code, func() {}, nil
	}
	err = xproto.ChangeKeyboardMappingChecked(e.conn, 1, e.spare, 1, []xproto.Keysym{xproto.Keysym(sym)}).Check()
	if err != nil {
		return 0, nil, fmt.Errorf("remap spare keycode: %w", err)
	}
	e.conn.Sync()
	restore = func() {
		_ = xproto.ChangeKeyboardMappingChecked(e.conn, 1, e.spare, 1, []xproto.Keysym{0}).Check()
	}
	return e.spare, restore, nil
}

func (e *XTestEmitter) fakeKey(code xproto.Keycode, press bool) error {
	eventType := byte(xproto.KeyRelease)
	if press {
		eventType = byte(xproto.KeyPress)
	}
	return xtest.FakeInputChecked(e.conn, eventType, byte(code), 0, e.root, 0, 0, 0).Check()
}

// EmitKey injects one synthetic key event for keysym, a dispatch-built
// string of the form "control+shift+0x41" (zero or more fixed-order
// modifier prefixes followed by the token from §4.6's key-sym rules).
func (e *XTestEmitter) EmitKey(keysym string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	parts := strings.Split(keysym, "+")
	mainToken := parts[len(parts)-1]
	modTokens := parts[:len(parts)-1]

	mainSym, err := keysymFor(mainToken)
	if err != nil {
		return err
	}

	type pressed struct {
		code    xproto.Keycode
		restore func()
	}
	var held []pressed
	releaseAll := func() {
		for i := len(held) - 1; i >= 0; i-- {
			_ = e.fakeKey(held[i].code, false)
			held[i].restore()
		}
	}

	for _, mod := range modTokens {
		sym, ok := modifierKeysyms[mod]
		if !ok {
			releaseAll()
			return fmt.Errorf("unrecognized modifier token %q", mod)
		}
		code, restore, err := e.keycodeFor(sym)
		if err != nil {
			releaseAll()
			return err
		}
		if err := e.fakeKey(code, true); err != nil {
			restore()
			releaseAll()
			return fmt.Errorf("press modifier %q: %w", mod, err)
		}
		held = append(held, pressed{code: code, restore: restore})
	}

	mainCode, mainRestore, err := e.keycodeFor(mainSym)
	if err != nil {
		releaseAll()
		return err
	}
	pressErr := e.fakeKey(mainCode, true)
	if pressErr == nil {
		pressErr = e.fakeKey(mainCode, false)
	}
	mainRestore()
	releaseAll()
	if pressErr != nil {
		return fmt.Errorf("emit key-sym %q: %w", keysym, pressErr)
	}
	return nil
}
