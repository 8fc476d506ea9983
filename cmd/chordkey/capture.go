package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// captureOverlay is the always-on-top capture window's input surface: an
// invisible widget that exists purely to receive raw key-down/key-up
// events and hand them to the chord recognizer.
type captureOverlay struct {
	widget.BaseWidget
	onTap     func()
	onKeyDown func(*fyne.KeyEvent)
	onKeyUp   func(*fyne.KeyEvent)
}

func newCaptureOverlay(onTap func(), onKeyDown, onKeyUp func(*fyne.KeyEvent)) *captureOverlay {
	w := &captureOverlay{onTap: onTap, onKeyDown: onKeyDown, onKeyUp: onKeyUp}
	w.ExtendBaseWidget(w)
	return w
}

func (w *captureOverlay) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.Transparent)
	return widget.NewSimpleRenderer(rect)
}

func (w *captureOverlay) Tapped(*fyne.PointEvent) {
	if w.onTap != nil {
		w.onTap()
	}
}

func (w *captureOverlay) TappedSecondary(*fyne.PointEvent) {}
func (w *captureOverlay) FocusGained()                     {}
func (w *captureOverlay) FocusLost()                        {}
func (w *captureOverlay) TypedRune(rune)                    {}
func (w *captureOverlay) TypedKey(*fyne.KeyEvent)           {}

func (w *captureOverlay) KeyDown(ev *fyne.KeyEvent) {
	if w.onKeyDown != nil {
		w.onKeyDown(ev)
	}
}

func (w *captureOverlay) KeyUp(ev *fyne.KeyEvent) {
	if w.onKeyUp != nil {
		w.onKeyUp(ev)
	}
}
