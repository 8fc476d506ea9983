package wm

import "fmt"

// FakeAdapter is an in-memory Adapter for tests: it lets a test script the
// sequence of "who is active" answers without a real X server, exercising
// the focus controller and dispatcher against deterministic responses.
type FakeAdapter struct {
	Main     WindowID
	Active   WindowID
	Desktops map[WindowID]int
	Current  int
	Features map[string]bool
	Names    map[WindowID]string

	ActivateCalls []WindowID
	ActivateErr   error
	// ActivateEffect, if set, runs after ActivateWindow records the call,
	// letting a test simulate the window manager actually changing focus.
	ActivateEffect func(w WindowID)
}

// NewFakeAdapter returns a FakeAdapter with every feature supported by
// default.
func NewFakeAdapter(main WindowID) *FakeAdapter {
	return &FakeAdapter{
		Main:     main,
		Desktops: map[WindowID]int{},
		Features: map[string]bool{
			FeatureActiveWindow: true, FeatureCurrentDesktop: true,
			FeatureWMDesktop: true, FeatureWMPID: true,
		},
		Names: map[WindowID]string{},
	}
}

func (a *FakeAdapter) MainAppWindow() WindowID { return a.Main }

func (a *FakeAdapter) ActiveWindow() (WindowID, error) { return a.Active, nil }

func (a *FakeAdapter) WindowName(w WindowID) (string, error)    { return a.Names[w], nil }
func (a *FakeAdapter) WindowClass(WindowID) (string, error)     { return "", nil }
func (a *FakeAdapter) WindowClassName(WindowID) (string, error) { return "", nil }
func (a *FakeAdapter) WindowPID(WindowID) (int, error)          { return 0, nil }

func (a *FakeAdapter) WindowAncestry(w WindowID) ([]WindowID, error) { return []WindowID{w}, nil }
func (a *FakeAdapter) WindowChildren(WindowID) ([]WindowID, error)   { return nil, nil }
func (a *FakeAdapter) WindowSiblings(w WindowID) ([]WindowID, error) { return []WindowID{w}, nil }

func (a *FakeAdapter) IsActiveWindow(w WindowID) bool {
	if a.Active != w {
		return false
	}
	if a.Desktops[w] != a.Current {
		return false
	}
	return true
}

func (a *FakeAdapter) ActivateWindow(w WindowID) error {
	a.ActivateCalls = append(a.ActivateCalls, w)
	if a.ActivateErr != nil {
		return a.ActivateErr
	}
	if a.ActivateEffect != nil {
		a.ActivateEffect(w)
	}
	return nil
}

func (a *FakeAdapter) GetDesktop(w WindowID) int {
	if !a.Features[FeatureWMDesktop] {
		return NoDesktop
	}
	return a.Desktops[w]
}

func (a *FakeAdapter) CurrentDesktop() int {
	if !a.Features[FeatureCurrentDesktop] {
		return NoDesktop
	}
	return a.Current
}

func (a *FakeAdapter) SetCurrentDesktop(i int) error {
	if !a.Features[FeatureCurrentDesktop] {
		return fmt.Errorf("unsupported")
	}
	a.Current = i
	return nil
}

func (a *FakeAdapter) SupportsFeature(name string) bool { return a.Features[name] }
