// Package focus composes the condition checker and the window-system
// adapter into the two §4.5 operations: activate a window and wait until
// it is truly active, and take keyboard focus back for the capture
// window.
package focus

import (
	"chordkey/internal/condition"
	"chordkey/internal/wm"
)

const (
	initialMs         = 100
	backoffMultiplier = 1.3
	timeoutMs         = 20000
)

// KeyboardFocusProbe reports whether the capture component currently
// holds keyboard focus and, as a side effect, attempts to grab it — the
// capture window has no window-system-visible "active" state of its own
// to poll, so TakeFocus needs this in addition to IsActiveWindow.
type KeyboardFocusProbe func() bool

// Controller focuses windows and waits for the window system to confirm
// the change, retrying on a backoff schedule per §4.5.
type Controller struct {
	adapter wm.Adapter
	checker *condition.Checker
	probe   KeyboardFocusProbe
}

// New returns a Controller. clock may be nil to use the production clock.
// probe may be nil; TakeFocus then only waits on IsActiveWindow.
func New(adapter wm.Adapter, clock condition.Clock, probe KeyboardFocusProbe) *Controller {
	checker := condition.New(clock)
	checker.SetInterval(initialMs, backoffMultiplier)
	return &Controller{adapter: adapter, checker: checker, probe: probe}
}

// FocusWindow activates w and waits until the adapter confirms it is
// active, retrying with geometric backoff up to an overall timeout.
// onSuccess runs once activation is confirmed; onTimeout runs instead if
// the deadline passes first. Either may be nil.
func (c *Controller) FocusWindow(w wm.WindowID, onSuccess func(), onTimeout func()) {
	c.focus(w, func() bool { return c.adapter.IsActiveWindow(w) }, onSuccess, onTimeout)
}

// TakeFocus re-activates the main capture window, additionally requiring
// the capture component to report (and attempt to grab) keyboard focus
// on each poll.
func (c *Controller) TakeFocus(onSuccess func(), onTimeout func()) {
	main := c.adapter.MainAppWindow()
	c.focus(main, func() bool {
		if !c.adapter.IsActiveWindow(main) {
			return false
		}
		if c.probe == nil {
			return true
		}
		return c.probe()
	}, onSuccess, onTimeout)
}

// focus activates w and polls predicate. ActivateWindow is best-effort
// per §4.4: the adapter itself never reports failure, so a non-nil error
// here is not treated specially — the condition checker's timeout is the
// only failure signal the caller sees.
func (c *Controller) focus(w wm.WindowID, predicate func() bool, onSuccess func(), onTimeout func()) {
	_ = c.adapter.ActivateWindow(w)
	c.checker.Start(predicate, func() {
		if onSuccess != nil {
			onSuccess()
		}
	}, timeoutMs, onTimeout)
}

// IsChecking reports whether a focus attempt is still in flight.
func (c *Controller) IsChecking() bool { return c.checker.IsChecking() }

// Cancel aborts any in-flight focus attempt. See condition.Checker.Cancel
// for the runTimeout/runFinalTest semantics.
func (c *Controller) Cancel(runTimeout, runFinalTest bool) {
	c.checker.Cancel(runTimeout, runFinalTest)
}
