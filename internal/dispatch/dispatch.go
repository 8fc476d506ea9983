// Package dispatch composes the focus controller with synthetic key
// emission (§4.6): focus the target window, emit one or more keys, and
// restore the capture window's focus and on-screen position afterward.
package dispatch

import (
	"fmt"
	"strings"

	"chordkey/internal/buffer"
	"chordkey/internal/charval"
	"chordkey/internal/diag"
	"chordkey/internal/focus"
	"chordkey/internal/wm"
)

// Emitter injects one synthetic key press into whatever window currently
// holds the platform's input focus.
type Emitter interface {
	EmitKey(keysym string) error
}

// Host prepares the capture window's on-screen state before handing
// focus to a target window, and returns a closure that restores it. The
// geometry placed during PrepareForSending is device-specific (§9 open
// question); Dispatcher only needs the snapshot/restore contract.
type Host interface {
	PrepareForSending() (restore func())
}

// Dispatcher implements the one-key and buffer-flush dispatch protocols.
type Dispatcher struct {
	adapter wm.Adapter
	focus   *focus.Controller
	emitter Emitter
	host    Host
	logger  *diag.Logger

	captureWindow wm.WindowID
}

// New returns a Dispatcher. logger may be nil to disable diagnostics.
func New(adapter wm.Adapter, fc *focus.Controller, emitter Emitter, host Host, captureWindow wm.WindowID, logger *diag.Logger) *Dispatcher {
	return &Dispatcher{adapter: adapter, focus: fc, emitter: emitter, host: host, captureWindow: captureWindow, logger: logger}
}

// modifierString builds the fixed-order "control+alt+shift+super+"
// subset for whichever of the four flags are set.
func modifierString(flags uint8) string {
	var b strings.Builder
	if flags&buffer.FlagControl != 0 {
		b.WriteString("control+")
	}
	if flags&buffer.FlagAlt != 0 {
		b.WriteString("alt+")
	}
	if flags&buffer.FlagShift != 0 {
		b.WriteString("shift+")
	}
	if flags&buffer.FlagSuper != 0 {
		b.WriteString("super+")
	}
	return b.String()
}

// escapeApostrophe backslash-escapes a literal apostrophe before a
// shell-quoted synthesis command, for Emitter implementations that shell
// out rather than linking the platform library directly.
func escapeApostrophe(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func (d *Dispatcher) emit(v charval.Value, modifierFlags uint8) bool {
	sym, ok := charval.KeySym(v)
	if !ok {
		if d.logger != nil {
			d.logger.Warnf(diag.ComponentDispatch, "no key-sym for value 0x%02x, skipping", uint8(v))
		}
		return false
	}
	full := escapeApostrophe(modifierString(modifierFlags) + sym)
	if err := d.emitter.EmitKey(full); err != nil {
		if d.logger != nil {
			d.logger.Warnf(diag.ComponentDispatch, "emit key-sym %q failed: %v", full, err)
		}
		return false
	}
	return true
}

// DispatchOne implements the one-key protocol of §4.6: focus target,
// emit a single synthetic key with the given modifiers, then restore the
// capture window's state and focus. done, if non-nil, is invoked exactly
// once with the outcome once the protocol completes (activation failures
// abort before any key is emitted, per §7's propagation rule).
func (d *Dispatcher) DispatchOne(target wm.WindowID, v charval.Value, modifierFlags uint8, done func(error)) {
	restore := d.host.PrepareForSending()
	finish := func(err error) {
		d.focus.FocusWindow(d.captureWindow, nil, nil)
		restore()
		if done != nil {
			done(err)
		}
	}

	d.focus.FocusWindow(target, func() {
		d.emit(v, modifierFlags)
		finish(nil)
	}, func() {
		finish(fmt.Errorf("dispatch: failed to activate target window %d", target))
	})
}

// DispatchBuffer implements the buffer-flush protocol: focus target,
// emit every buffered value in order (each preceded by the buffer's
// modifier string), restore capture focus, then clear the buffer
// regardless of how many keys were actually delivered — a failed
// activation still discards whatever was buffered, per §4.6.
func (d *Dispatcher) DispatchBuffer(target wm.WindowID, buf *buffer.Buffer, done func(error)) {
	restore := d.host.PrepareForSending()
	finish := func(err error) {
		d.focus.FocusWindow(d.captureWindow, nil, nil)
		restore()
		buf.Clear(false)
		if done != nil {
			done(err)
		}
	}

	d.focus.FocusWindow(target, func() {
		flags := buf.ModifierFlags()
		for _, v := range buf.Values() {
			d.emit(v, flags)
		}
		finish(nil)
	}, func() {
		finish(fmt.Errorf("dispatch: failed to activate target window %d, buffer discarded", target))
	})
}
