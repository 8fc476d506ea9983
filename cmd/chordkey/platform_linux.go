//go:build linux && !wayland

package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"chordkey/internal/dispatch"
	"chordkey/internal/wm"
)

// platformBundle is the set of platform-specific pieces main.go needs:
// the C7 window-system adapter and the synthetic-key emitter, plus the
// capture window's own handle (§3's fixed window identifier).
type platformBundle struct {
	Adapter    wm.Adapter
	Emitter    dispatch.Emitter
	MainWindow wm.WindowID
	Close      func()
}

func newPlatformBundle(w fyne.Window) (*platformBundle, error) {
	id, err := wm.NativeWindowID(w)
	if err != nil {
		return nil, fmt.Errorf("native window id: %w", err)
	}
	adapter, err := wm.NewX11Adapter(id)
	if err != nil {
		return nil, fmt.Errorf("x11 adapter: %w", err)
	}
	emitter, err := wm.NewXTestEmitter()
	if err != nil {
		adapter.Close()
		return nil, fmt.Errorf("xtest emitter: %w", err)
	}
	return &platformBundle{
		Adapter:    adapter,
		Emitter:    emitter,
		MainWindow: id,
		Close: func() {
			adapter.Close()
			emitter.Close()
		},
	}, nil
}
