package main

import (
	"fyne.io/fyne/v2"
)

// windowHost implements dispatch.Host: it snapshots and restores the
// capture window's on-screen geometry around a focus handoff. §4.6 step
// 1 calls this "a well-known geometry that makes window-manager focus
// transfer reliably succeed" and leaves the exact geometry device
// specific (§9 open question); this implementation resizes down to the
// window's minimum content size (the same size edgeState.toggle shrinks
// to) and leaves the window's position unchanged.
type windowHost struct {
	window fyne.Window
}

func newWindowHost(w fyne.Window) *windowHost {
	return &windowHost{window: w}
}

func (h *windowHost) PrepareForSending() (restore func()) {
	canvas := h.window.Canvas()
	prior := canvas.Size()
	ready := canvas.Content().MinSize()
	h.window.Resize(ready)
	return func() {
		h.window.Resize(prior)
	}
}

// edgeState tracks the snap-to-edge toggle (§4.7's toggleWindowEdge) and
// the geometry to restore when it's toggled off, following the teacher's
// restoreWindow/maximizeWindow save-then-restore pattern in
// window_x11_maximize.go's caller.
type edgeState struct {
	window  fyne.Window
	snapped bool
	prior   fyne.Size
}

func newEdgeState(w fyne.Window) *edgeState {
	return &edgeState{window: w}
}

// toggle shrinks the capture window to its content's minimum size, or
// restores the size it had before shrinking. The window's position on
// screen is not changed.
func (e *edgeState) toggle() {
	if e.snapped {
		e.window.Resize(e.prior)
		e.snapped = false
		return
	}
	e.prior = e.window.Canvas().Size()
	e.window.Resize(e.window.Canvas().Content().MinSize())
	e.snapped = true
}

// minimizeState tracks the best-effort minimize toggle (§4.7's
// toggleMinimize). Fyne has no cross-platform "iconify" call, so this
// hides/shows the window itself, the same degree of control
// window_x11_maximize.go has over its own window's chrome.
type minimizeState struct {
	window    fyne.Window
	minimized bool
}

func newMinimizeState(w fyne.Window) *minimizeState {
	return &minimizeState{window: w}
}

func (m *minimizeState) toggle() {
	if m.minimized {
		m.window.Show()
		m.minimized = false
		return
	}
	m.window.Hide()
	m.minimized = true
}
