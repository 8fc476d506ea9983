package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chordkey/internal/config"
)

// helpTopic is the simplified stand-in for help_center.go's helpDocItem:
// markdown rendering and a multi-file doc browser are out of scope
// (§1), so each topic is one short block of plain text.
type helpTopic struct {
	Title string
	Body  string
}

func staticHelpTopics() []helpTopic {
	return []helpTopic{
		{
			Title: "Chord basics",
			Body: "Hold any combination of the five chord keys and release " +
				"them together to commit a character. Releasing one key " +
				"slightly early is tolerated for a brief grace period; only " +
				"a genuine pause while keys are still held changes the " +
				"selection.",
		},
		{
			Title: "Character sets",
			Body: "Four sets are available: main, alt, special, and " +
				"modifier. Cycle through them with the bound 'next set' " +
				"key, or jump straight to one with its bound key. Toggling " +
				"shift swaps every character for its shifted variant " +
				"without rebuilding the set.",
		},
		{
			Title: "Immediate mode",
			Body: "Normally, committed chords append to an output buffer " +
				"you review and send as a whole. In immediate mode, each " +
				"commit is sent to the target window right away instead. " +
				"Turning immediate mode on flushes whatever is already " +
				"buffered first.",
		},
		{
			Title: "Key bindings",
			Body: "", // filled in at render time from the loaded bindings
		},
		{
			Title: "About",
			Body: "chordkey is a five-key chorded input method: hold a " +
				"subset of five keys, release together, and the matching " +
				"character is sent to whichever window was active before " +
				"this one took focus.",
		},
	}
}

func bindingsSummary(bindings []config.BindingEntry) string {
	var b strings.Builder
	for _, entry := range bindings {
		fmt.Fprintf(&b, "%s — %s (%s)\n", entry.Key, entry.Display, entry.Char)
	}
	if b.Len() == 0 {
		return "No key bindings configured."
	}
	return b.String()
}

// newHelpOverlay builds the toggle-to-close overlay (§4.7): a topic list
// on the left, the selected topic's text on the right. Any chord commit
// or bound key closes it instead of its usual action while it's showing
// (control.Controller.helpVisible already implements that gate); this
// function only builds the widget tree the input controller toggles.
func newHelpOverlay(bindings []config.BindingEntry) fyne.CanvasObject {
	topics := staticHelpTopics()
	for i := range topics {
		if topics[i].Title == "Key bindings" {
			topics[i].Body = bindingsSummary(bindings)
		}
	}

	body := widget.NewLabel(topics[0].Body)
	body.Wrapping = fyne.TextWrapWord

	list := widget.NewList(
		func() int { return len(topics) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(topics[id].Title)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		body.SetText(topics[id].Body)
	}
	list.Select(0)

	split := container.NewHSplit(list, container.NewVScroll(body))
	split.Offset = 0.3
	return container.NewBorder(widget.NewLabelWithStyle("Help (press again to close)", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}), nil, nil, nil, split)
}
