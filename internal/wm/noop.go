package wm

import "fmt"

// NoopAdapter is the fallback adapter when no supported window system is
// reachable (non-X11 platforms, or an X11 connection that failed to
// open). Active-window, name, class and PID queries and ActivateWindow
// return an error; desktop queries return the NoDesktop sentinel, per §7;
// IsActiveWindow and SupportsFeature are always false. WindowAncestry
// returns the window alone, WindowChildren and WindowSiblings return
// nothing, and SetCurrentDesktop does nothing and returns nil.
type NoopAdapter struct {
	main WindowID
}

// NewNoopAdapter returns the fallback Adapter described on NoopAdapter.
func NewNoopAdapter(mainWindow WindowID) *NoopAdapter {
	return &NoopAdapter{main: mainWindow}
}

func (a *NoopAdapter) MainAppWindow() WindowID { return a.main }

func (a *NoopAdapter) ActiveWindow() (WindowID, error) {
	return 0, fmt.Errorf("window system unsupported on this platform")
}

func (a *NoopAdapter) WindowName(WindowID) (string, error)      { return "", fmt.Errorf("unsupported") }
func (a *NoopAdapter) WindowClass(WindowID) (string, error)     { return "", fmt.Errorf("unsupported") }
func (a *NoopAdapter) WindowClassName(WindowID) (string, error) { return "", fmt.Errorf("unsupported") }
func (a *NoopAdapter) WindowPID(WindowID) (int, error)          { return 0, fmt.Errorf("unsupported") }

func (a *NoopAdapter) WindowAncestry(w WindowID) ([]WindowID, error) { return []WindowID{w}, nil }
func (a *NoopAdapter) WindowChildren(WindowID) ([]WindowID, error)   { return nil, nil }
func (a *NoopAdapter) WindowSiblings(WindowID) ([]WindowID, error)   { return nil, nil }

func (a *NoopAdapter) IsActiveWindow(WindowID) bool { return false }
func (a *NoopAdapter) ActivateWindow(WindowID) error {
	return fmt.Errorf("activation unsupported on this platform")
}

func (a *NoopAdapter) GetDesktop(WindowID) int     { return NoDesktop }
func (a *NoopAdapter) CurrentDesktop() int         { return NoDesktop }
func (a *NoopAdapter) SetCurrentDesktop(int) error { return nil }

func (a *NoopAdapter) SupportsFeature(string) bool { return false }
