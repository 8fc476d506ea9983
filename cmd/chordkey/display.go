package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chordkey/internal/buffer"
	"chordkey/internal/charset"
	"chordkey/internal/charval"
	"chordkey/internal/chord"
	"chordkey/internal/control"
)

// chordDisplay renders the in-scope state a capture window needs to
// show: which set/shift is active, the currently selected chord's key
// dots, the pending buffer text, and the current mode flags. Theming and
// layout polish beyond this are out of scope (§1).
type chordDisplay struct {
	setLabel    *widget.Label
	dotsLabel   *widget.Label
	bufferLabel *widget.Label
	modeLabel   *widget.Label
	content     fyne.CanvasObject
}

func newChordDisplay() *chordDisplay {
	d := &chordDisplay{
		setLabel:    widget.NewLabel(""),
		dotsLabel:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}),
		bufferLabel: widget.NewLabel(""),
		modeLabel:   widget.NewLabel(""),
	}
	d.bufferLabel.Wrapping = fyne.TextWrapWord
	d.content = container.NewVBox(d.setLabel, d.dotsLabel, d.bufferLabel, d.modeLabel)
	return d
}

func kindName(k charset.Kind) string {
	switch k {
	case charset.KindMain:
		return "main"
	case charset.KindAlt:
		return "alt"
	case charset.KindSpecial:
		return "special"
	case charset.KindModifier:
		return "modifier"
	default:
		return "?"
	}
}

// dots renders ch as five dots, filled for each held key, matching the
// "easiest to hardest" finger layout the convenience ordering assumes.
func dots(ch chord.Chord) string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		if ch.UsesKey(i) {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
		if i < 4 {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func bufferPreview(buf *buffer.Buffer) string {
	values := buf.Values()
	var b strings.Builder
	for _, v := range values {
		if charval.IsPrintableASCII(v) || charval.IsPrintableLatin1(v) {
			b.WriteRune(rune(v))
			continue
		}
		sym, ok := charval.KeySym(v)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "[%s]", sym)
	}
	return b.String()
}

func modeSummary(flags uint8, immediate bool) string {
	var parts []string
	if flags&buffer.FlagControl != 0 {
		parts = append(parts, "ctrl")
	}
	if flags&buffer.FlagAlt != 0 {
		parts = append(parts, "alt")
	}
	if flags&buffer.FlagShift != 0 {
		parts = append(parts, "shift")
	}
	if flags&buffer.FlagSuper != 0 {
		parts = append(parts, "super")
	}
	mode := "buffered"
	if immediate {
		mode = "immediate"
	}
	if len(parts) == 0 {
		return mode
	}
	return mode + " · " + strings.Join(parts, "+")
}

// refresh re-renders the display from current state. Called from
// Controller.OnRedraw and from the recognizer's selection-changed path;
// it has no output side effects, matching §4.7's redraw policy.
func (d *chordDisplay) refresh(registry *charset.Registry, buf *buffer.Buffer, rec selectedChord, ctrl *control.Controller) {
	shiftMark := ""
	if registry.Shift() {
		shiftMark = " (shift)"
	}
	d.setLabel.SetText(kindName(registry.Active()) + shiftMark)
	d.dotsLabel.SetText(dots(rec.Selected()))
	d.bufferLabel.SetText(bufferPreview(buf))
	d.modeLabel.SetText(modeSummary(buf.ModifierFlags(), ctrl.ImmediateMode()))
}

// selectedChord is the slice of *recognizer.Recognizer's API refresh
// needs, kept narrow so tests can supply a stub.
type selectedChord interface {
	Selected() chord.Chord
}
