// Command chordkey runs the five-key chorded input method: a small
// always-on-top capture window that turns held chord-key combinations
// into characters sent to whichever window was active before it.
package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"chordkey/internal/buffer"
	"chordkey/internal/charset"
	"chordkey/internal/config"
	"chordkey/internal/control"
	"chordkey/internal/diag"
	"chordkey/internal/dispatch"
	"chordkey/internal/focus"
	"chordkey/internal/recognizer"
	"chordkey/internal/wm"
)

func main() {
	help := flag.Bool("help", false, "print usage and exit")
	runTests := flag.Bool("test", false, "run the built-in smoke-test suite and exit")
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *runTests {
		if runSmokeTests() {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chordkey:", err)
		os.Exit(1)
	}
}

func run() error {
	paths, err := resolveConfigPaths()
	if err != nil {
		return err
	}
	if err := ensureDefaultConfigFiles(paths); err != nil {
		return err
	}

	logger := diag.NewLogger(2000)
	defer logger.Shutdown()

	bindingsHandle := config.NewFileHandle(paths.bindings)
	chordKeys, bindingEntries, err := config.LoadKeyBindings(bindingsHandle)
	if err != nil {
		return fmt.Errorf("load key bindings: %w", err)
	}

	charsetHandle := config.NewFileHandle(paths.mainCharset)
	defs, warnings, err := config.LoadCharSetDefinitions(charsetHandle)
	if err != nil {
		return fmt.Errorf("load character sets: %w", err)
	}
	for _, w := range warnings {
		logger.Log(diag.ComponentConfig, diag.LevelWarning, w)
	}

	settingsHandle := config.NewFileHandle(paths.settings)
	mainSettings, err := config.LoadMainSettings(settingsHandle)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	cachedBuffer, err := config.TakeCachedBuffer(settingsHandle)
	if err != nil {
		logger.Logf(diag.ComponentConfig, diag.LevelWarning, "failed to take cached buffer: %v", err)
	}

	registry := charset.NewRegistry(defs.Main, defs.Alt, defs.Special, logger)
	registry.SetActive(kindFromName(mainSettings.LastCharSet))
	registry.SetShift(mainSettings.LastShift)

	buf := buffer.New()
	for _, v := range cachedBuffer {
		buf.Append(v)
	}

	fyneApp := app.New()
	fyneApp.Settings().SetTheme(newCompactTheme())

	window := fyneApp.NewWindow("chordkey")
	window.SetFixedSize(false)
	window.Resize(fyne.NewSize(260, 140))
	window.SetPadded(true)

	display := newChordDisplay()
	helpOverlay := newHelpOverlay(bindingEntries)
	content := container.NewStack(display.content)
	window.SetContent(content)

	var overlay *captureOverlay
	rec := recognizer.New(chordKeys, nil)
	overlay = newCaptureOverlay(nil,
		func(ev *fyne.KeyEvent) { rec.OnKeyDown(string(ev.Name)) },
		func(ev *fyne.KeyEvent) { rec.OnChordKeyUp(string(ev.Name)) },
	)
	content.Add(overlay)

	window.Show()

	bundle, err := newPlatformBundle(window)
	if err != nil {
		logger.Logf(diag.ComponentWM, diag.LevelWarning, "platform bundle unavailable, window-system features disabled: %v", err)
		bundle, err = fallbackBundle()
		if err != nil {
			return err
		}
	}
	defer bundle.Close()

	target, err := bundle.Adapter.ActiveWindow()
	if err != nil {
		logger.Logf(diag.ComponentWM, diag.LevelWarning, "no previously active window found, targeting self: %v", err)
		target = bundle.MainWindow
	}

	focusCtrl := focus.New(bundle.Adapter, nil, func() bool {
		window.Canvas().Focus(overlay)
		return true
	})
	host := newWindowHost(window)
	disp := dispatch.New(bundle.Adapter, focusCtrl, bundle.Emitter, host, bundle.MainWindow, logger)

	edge := newEdgeState(window)
	minimize := newMinimizeState(window)

	actionBindings := buildActionBindings(bindingEntries, logger)
	ctrl := control.New(registry, buf, rec, disp, target, actionBindings)
	// A recovered buffer takes precedence over the persisted mode flag:
	// immediate mode requires an empty buffer, and there is no target to
	// flush into this early.
	ctrl.SetImmediateMode(mainSettings.ImmediateMode && buf.IsEmpty())
	if mainSettings.SnapToBottom {
		edge.toggle()
	}
	if mainSettings.Minimized {
		minimize.toggle()
	}

	quit := func() {
		persistSettings(settingsHandle, registry, buf, edge, minimize, ctrl, mainSettings)
		fyneApp.Quit()
	}
	ctrl.OnQuit = quit
	ctrl.OnToggleWindowEdge = edge.toggle
	ctrl.OnToggleMinimize = minimize.toggle
	ctrl.OnHelpToggle = func(visible bool) {
		content.Objects = nil
		if visible {
			content.Add(helpOverlay)
		} else {
			content.Add(display.content)
			content.Add(overlay)
		}
		content.Refresh()
	}
	ctrl.OnRedraw = func() {
		display.refresh(registry, buf, rec, ctrl)
	}
	ctrl.OnRedraw()

	window.SetOnClosed(func() {
		persistSettings(settingsHandle, registry, buf, edge, minimize, ctrl, mainSettings)
	})
	window.Canvas().Focus(overlay)

	fyneApp.Run()
	return nil
}

func kindFromName(name string) charset.Kind {
	switch name {
	case "alt":
		return charset.KindAlt
	case "special":
		return charset.KindSpecial
	case "modifier":
		return charset.KindModifier
	default:
		return charset.KindMain
	}
}

func kindToName(k charset.Kind) string {
	switch k {
	case charset.KindAlt:
		return "alt"
	case charset.KindSpecial:
		return "special"
	case charset.KindModifier:
		return "modifier"
	default:
		return "main"
	}
}

// buildActionBindings turns the loaded key-binding table into the
// key -> ActionFunc map control.Controller dispatches against, skipping
// (with a logged warning) any action identifier the config names that
// isn't one of control.StandardActions — §7's "missing/invalid
// configuration entry" recovery applied to bound-key configuration.
func buildActionBindings(entries []config.BindingEntry, logger *diag.Logger) map[string]control.ActionFunc {
	actionNames, warnings := config.ActionMap(entries)
	for _, w := range warnings {
		logger.Log(diag.ComponentConfig, diag.LevelWarning, w)
	}

	bindings := make(map[string]control.ActionFunc, len(actionNames))
	for key, name := range actionNames {
		fn, ok := control.StandardActions[name]
		if !ok {
			logger.Logf(diag.ComponentConfig, diag.LevelWarning, "unknown bound action %q for key %q, ignoring", name, key)
			continue
		}
		bindings[key] = fn
	}
	return bindings
}

// persistSettings writes back the three persisted flags, the last-used
// set/shift state, and the cached buffer (§6) on quit or window close.
func persistSettings(h *config.FileHandle, registry *charset.Registry, buf *buffer.Buffer, edge *edgeState, minimize *minimizeState, ctrl *control.Controller, base config.MainSettings) {
	base.ImmediateMode = ctrl.ImmediateMode()
	base.SnapToBottom = edge.snapped
	base.Minimized = minimize.minimized
	base.LastCharSet = kindToName(registry.Active())
	base.LastShift = registry.Shift()
	base.CachedBuffer = nil
	_ = config.SaveMainSettings(h, base)

	if !buf.IsEmpty() {
		_ = config.StashCachedBuffer(h, buf.Values())
	}
}

func fallbackBundle() (*platformBundle, error) {
	return &platformBundle{
		Adapter:    wm.NewNoopAdapter(0),
		Emitter:    noopFallbackEmitter{},
		MainWindow: 0,
		Close:      func() {},
	}, nil
}

type noopFallbackEmitter struct{}

func (noopFallbackEmitter) EmitKey(string) error {
	return fmt.Errorf("synthetic key emission unsupported")
}
