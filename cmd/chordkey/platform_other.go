//go:build !linux || wayland

package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"chordkey/internal/dispatch"
	"chordkey/internal/wm"
)

// noopEmitter satisfies dispatch.Emitter on platforms without an X11
// synthetic-key facility wired up yet, matching wm.NoopAdapter's
// "report the feature as unsupported" stance (§7).
type noopEmitter struct{}

func (noopEmitter) EmitKey(string) error {
	return fmt.Errorf("synthetic key emission unsupported on this platform")
}

func newPlatformBundle(w fyne.Window) (*platformBundle, error) {
	main := wm.WindowID(0)
	return &platformBundle{
		Adapter:    wm.NewNoopAdapter(main),
		Emitter:    noopEmitter{},
		MainWindow: main,
		Close:      func() {},
	}, nil
}

type platformBundle struct {
	Adapter    wm.Adapter
	Emitter    dispatch.Emitter
	MainWindow wm.WindowID
	Close      func()
}
