//go:build linux && !wayland

package wm

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

// NativeWindowID reaches through Fyne's RunNative escape hatch to the
// live X11 window handle backing w, the same mechanism
// window_x11_maximize.go uses to set a size hint on its own window. Here
// it generalizes to "get the handle at all", since the adapter needs it
// once at startup to become the fixed capture-window identifier (§3).
func NativeWindowID(w fyne.Window) (WindowID, error) {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return 0, fmt.Errorf("window does not support RunNative")
	}
	var handle uintptr
	nw.RunNative(func(ctx any) {
		x11Ctx, ok := ctx.(driver.X11WindowContext)
		if ok {
			handle = x11Ctx.WindowHandle
		}
	})
	if handle == 0 {
		return 0, fmt.Errorf("no X11 window handle")
	}
	return WindowID(handle), nil
}
