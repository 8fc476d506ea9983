// Package control implements the top-level input controller (§4.7): it
// wires the chord recognizer's events to the character-set registry,
// output buffer, and output dispatcher, and runs the bound-action table
// for unrelated key presses.
package control

import (
	"sync/atomic"

	"chordkey/internal/buffer"
	"chordkey/internal/charset"
	"chordkey/internal/charval"
	"chordkey/internal/chord"
	"chordkey/internal/dispatch"
	"chordkey/internal/recognizer"
	"chordkey/internal/wm"
)

// ActionFunc is a bound action run for an unrelated key press. release
// must be called exactly once, synchronously if the action completes
// immediately or from within a dispatch completion callback if it
// dispatches output.
type ActionFunc func(c *Controller, release func())

// Controller is the C10 coordinator. It owns no window-system state of
// its own; it only reacts to recognizer events and runs bound actions
// against the registry, buffer, and dispatcher it was built with.
type Controller struct {
	registry   *charset.Registry
	buf        *buffer.Buffer
	dispatcher *dispatch.Dispatcher
	target     wm.WindowID

	bindings map[string]ActionFunc

	immediateMode bool
	helpVisible   bool
	dispatching   int32 // atomic re-entrant dispatch guard (design note: flag over mutex, drop on contention)

	// OnRedraw is invoked after any state change a UI would need to
	// reflect (selection change, buffer mutation, mode toggle). It never
	// has output side effects.
	OnRedraw func()
	// OnHelpToggle is invoked with the new visibility whenever the help
	// overlay is toggled.
	OnHelpToggle func(visible bool)
	// OnToggleWindowEdge and OnToggleMinimize run the corresponding
	// window-chrome actions; both are window-system concerns owned by the
	// host program, not this package.
	OnToggleWindowEdge func()
	OnToggleMinimize   func()
	// OnQuit requests application shutdown.
	OnQuit func()
}

// New builds a Controller wired to the given registry, buffer,
// dispatcher, and target window, and registers it as a listener on rec.
// target is the previously active window the capture window hands
// output off to; like any window identifier it is fixed for the life of
// the Controller.
func New(registry *charset.Registry, buf *buffer.Buffer, rec *recognizer.Recognizer, disp *dispatch.Dispatcher, target wm.WindowID, bindings map[string]ActionFunc) *Controller {
	c := &Controller{
		registry:   registry,
		buf:        buf,
		dispatcher: disp,
		target:     target,
		bindings:   bindings,
	}
	rec.AddListener(c.onRecognizerEvent)
	return c
}

// ImmediateMode reports whether chord commits dispatch directly instead
// of buffering.
func (c *Controller) ImmediateMode() bool { return c.immediateMode }

// SetImmediateMode sets the mode directly, without the flush-first step
// the bound toggle action performs. Used to restore the persisted flag at
// startup, before any input has been buffered.
func (c *Controller) SetImmediateMode(on bool) { c.immediateMode = on }

// HelpVisible reports whether the help overlay is showing.
func (c *Controller) HelpVisible() bool { return c.helpVisible }

func (c *Controller) redraw() {
	if c.OnRedraw != nil {
		c.OnRedraw()
	}
}

func (c *Controller) onRecognizerEvent(ev recognizer.Event) {
	switch ev.Kind {
	case recognizer.SelectionChanged:
		// Selection changes only affect redraw state, never output.
		c.redraw()
	case recognizer.ChordCommitted:
		c.withGuard(func(release func()) { c.handleCommit(ev.Chord, release) })
	case recognizer.KeyPressed:
		c.withGuard(func(release func()) { c.handleUnrelatedKey(ev.Key, release) })
	}
}

// withGuard runs f under the non-blocking re-entrant dispatch guard: an
// event arriving while a prior handler is still in flight (including one
// waiting on an async dispatch completion) is silently dropped rather
// than queued, since a queued effect could surprise-delay by however
// long the in-flight dispatch takes.
func (c *Controller) withGuard(f func(release func())) {
	if !atomic.CompareAndSwapInt32(&c.dispatching, 0, 1) {
		return
	}
	var released int32
	release := func() {
		if atomic.CompareAndSwapInt32(&released, 0, 1) {
			atomic.StoreInt32(&c.dispatching, 0)
		}
	}
	f(release)
}

func (c *Controller) handleCommit(ch chord.Chord, release func()) {
	if c.helpVisible {
		c.closeHelp()
		release()
		return
	}

	v, ok := c.registry.ResolveChord(ch)
	if !ok {
		release()
		return
	}

	if charval.IsModifier(v) {
		c.buf.ToggleModifier(modifierFlagFor(v))
		c.redraw()
		release()
		return
	}

	if c.immediateMode {
		c.dispatcher.DispatchOne(c.target, v, c.buf.ModifierFlags(), func(error) {
			c.redraw()
			release()
		})
		return
	}

	c.buf.Append(v)
	c.redraw()
	release()
}

func (c *Controller) handleUnrelatedKey(key string, release func()) {
	if c.helpVisible {
		c.closeHelp()
		release()
		return
	}

	action, ok := c.bindings[key]
	if !ok {
		release()
		return
	}
	action(c, release)
}

func (c *Controller) closeHelp() {
	c.helpVisible = false
	if c.OnHelpToggle != nil {
		c.OnHelpToggle(false)
	}
}

func modifierFlagFor(v charval.Value) uint8 {
	switch v {
	case charval.Ctrl:
		return buffer.FlagControl
	case charval.Alt:
		return buffer.FlagAlt
	case charval.Shift:
		return buffer.FlagShift
	case charval.Super:
		return buffer.FlagSuper
	default:
		return 0
	}
}

// Standard bound actions, named so config can reference them by string
// identifier. The set of identifiers beyond these is config-defined and
// may be extended by the host program.
var StandardActions = map[string]ActionFunc{
	"select-main":           actionSelectKind(charset.KindMain),
	"select-alt":            actionSelectKind(charset.KindAlt),
	"select-special":        actionSelectKind(charset.KindSpecial),
	"select-modifier":       actionSelectKind(charset.KindModifier),
	"select-next":           actionSelectNext,
	"toggle-shift":          actionToggleShift,
	"backspace":             actionBackspace,
	"clear-all":             actionClearAll,
	"send-text":             actionSendText,
	"close-and-send":        actionCloseAndSend,
	"close":                 actionClose,
	"toggle-immediate-mode": actionToggleImmediateMode,
	"toggle-window-edge":    actionToggleWindowEdge,
	"toggle-minimize":       actionToggleMinimize,
	"show-help":             actionShowHelp,
}

func actionSelectKind(k charset.Kind) ActionFunc {
	return func(c *Controller, release func()) {
		c.registry.SetActive(k)
		c.redraw()
		release()
	}
}

func actionSelectNext(c *Controller, release func()) {
	c.registry.SelectNext()
	c.redraw()
	release()
}

func actionToggleShift(c *Controller, release func()) {
	c.registry.ToggleShift()
	c.redraw()
	release()
}

func actionBackspace(c *Controller, release func()) {
	if c.immediateMode {
		c.dispatcher.DispatchOne(c.target, charval.Back, c.buf.ModifierFlags(), func(error) {
			release()
		})
		return
	}
	c.buf.DeleteLast()
	c.redraw()
	release()
}

func actionClearAll(c *Controller, release func()) {
	c.buf.Clear(false)
	c.redraw()
	release()
}

// actionSendText dispatches the buffer; in immediate mode there is
// nothing buffered to send, so it sends a Return instead (§4.7).
func actionSendText(c *Controller, release func()) {
	if c.immediateMode {
		c.dispatcher.DispatchOne(c.target, charval.Enter, c.buf.ModifierFlags(), func(error) {
			release()
		})
		return
	}
	c.dispatcher.DispatchBuffer(c.target, c.buf, func(error) {
		release()
	})
}

func actionCloseAndSend(c *Controller, release func()) {
	quit := func() {
		if c.OnQuit != nil {
			c.OnQuit()
		}
		release()
	}
	if c.immediateMode {
		c.dispatcher.DispatchOne(c.target, charval.Enter, c.buf.ModifierFlags(), func(error) { quit() })
		return
	}
	c.dispatcher.DispatchBuffer(c.target, c.buf, func(error) { quit() })
}

func actionClose(c *Controller, release func()) {
	if c.OnQuit != nil {
		c.OnQuit()
	}
	release()
}

// actionToggleImmediateMode flushes a non-empty buffer before enabling
// immediate mode, so no buffered output is silently lost (§4.7).
func actionToggleImmediateMode(c *Controller, release func()) {
	if !c.immediateMode && !c.buf.IsEmpty() {
		c.dispatcher.DispatchBuffer(c.target, c.buf, func(error) {
			c.immediateMode = true
			c.redraw()
			release()
		})
		return
	}
	c.immediateMode = !c.immediateMode
	c.redraw()
	release()
}

func actionToggleWindowEdge(c *Controller, release func()) {
	if c.OnToggleWindowEdge != nil {
		c.OnToggleWindowEdge()
	}
	c.redraw()
	release()
}

func actionToggleMinimize(c *Controller, release func()) {
	if c.OnToggleMinimize != nil {
		c.OnToggleMinimize()
	}
	release()
}

func actionShowHelp(c *Controller, release func()) {
	c.helpVisible = !c.helpVisible
	if c.OnHelpToggle != nil {
		c.OnHelpToggle(c.helpVisible)
	}
	release()
}
