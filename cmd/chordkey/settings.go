package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"chordkey/internal/config"
)

// configPaths mirrors the teacher's devKitSettingsPath: one directory
// under os.UserConfigDir, one file per config concern (§6).
type configPaths struct {
	dir         string
	bindings    string
	mainCharset string
	settings    string
}

func resolveConfigPaths() (configPaths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return configPaths{}, fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(base, "chordkey")
	return configPaths{
		dir:         dir,
		bindings:    filepath.Join(dir, "bindings.yaml"),
		mainCharset: filepath.Join(dir, "charsets.yaml"),
		settings:    filepath.Join(dir, "settings.toml"),
	}, nil
}

// defaultChordKeys names the five chord keys by Fyne key name: the four
// left-hand home-row keys A, S, D, F plus J under the right index finger.
var defaultChordKeys = [5]string{"A", "S", "D", "F", "J"}

var defaultBindings = []config.BindingEntry{
	{Action: "select-main", Key: "F1", Display: "Main set", Char: "1"},
	{Action: "select-alt", Key: "F2", Display: "Alt set", Char: "2"},
	{Action: "select-special", Key: "F3", Display: "Special set", Char: "3"},
	{Action: "select-modifier", Key: "F4", Display: "Modifier set", Char: "4"},
	{Action: "select-next", Key: "Tab", Display: "Next set", Char: "↻"},
	{Action: "toggle-shift", Key: "CapsLock", Display: "Shift", Char: "⇧"},
	{Action: "backspace", Key: "BackSpace", Display: "Backspace", Char: "⌫"},
	{Action: "clear-all", Key: "Escape", Display: "Clear", Char: "✕"},
	{Action: "send-text", Key: "Return", Display: "Send", Char: "⏎"},
	{Action: "close-and-send", Key: "KPEnter", Display: "Send & close", Char: "⏎"},
	{Action: "close", Key: "Q", Display: "Quit", Char: "q"},
	{Action: "toggle-immediate-mode", Key: "I", Display: "Immediate mode", Char: "i"},
	{Action: "toggle-window-edge", Key: "E", Display: "Snap to edge", Char: "e"},
	{Action: "toggle-minimize", Key: "M", Display: "Minimize", Char: "m"},
	{Action: "show-help", Key: "F12", Display: "Help", Char: "?"},
}

// defaultCharsetYAML seeds the main character set with the 26 letters and
// space under automatic priority assignment (vowels get convenient
// chords), the alt set with the digits plus enter and backspace, and the
// special set with common punctuation and the arrow keys. This is the
// file a fresh install writes so the registry never starts out blank.
const defaultCharsetYAML = `
main:
  - primary: a
    priority: 10
  - primary: e
    priority: 9
  - primary: i
    priority: 9
  - primary: o
    priority: 9
  - primary: u
    priority: 8
  - primary: t
    priority: 7
  - primary: n
    priority: 7
  - primary: s
    priority: 7
  - primary: r
    priority: 6
  - primary: h
    priority: 6
  - primary: l
    priority: 5
  - primary: d
    priority: 5
  - primary: c
    priority: 5
  - primary: m
    priority: 4
  - primary: " "
    priority: 10
  - primary: b
    priority: 4
  - primary: f
    priority: 3
  - primary: g
    priority: 3
  - primary: p
    priority: 3
  - primary: w
    priority: 3
  - primary: y
    priority: 3
  - primary: k
    priority: 2
  - primary: v
    priority: 2
  - primary: x
    priority: 1
  - primary: j
    priority: 1
  - primary: q
    priority: 1
  - primary: z
    priority: 1
alt:
  - primary: "1"
    priority: 10
  - primary: "2"
    priority: 9
  - primary: "3"
    priority: 9
  - primary: "4"
    priority: 8
  - primary: "5"
    priority: 8
  - primary: "6"
    priority: 7
  - primary: "7"
    priority: 7
  - primary: "8"
    priority: 6
  - primary: "9"
    priority: 6
  - primary: "0"
    priority: 5
  - primary: enter
    priority: 10
  - primary: backspace
    priority: 9
special:
  - primary: "."
    priority: 9
  - primary: ","
    priority: 8
  - primary: "!"
    priority: 7
  - primary: "?"
    priority: 7
  - primary: "'"
    priority: 6
  - primary: "-"
    priority: 5
  - primary: up
    priority: 4
  - primary: down
    priority: 4
  - primary: left
    priority: 4
  - primary: right
    priority: 4
`

// ensureDefaultConfigFiles writes the bindings and character-set files
// when the config directory doesn't exist yet, following the teacher's
// loadDevKitSettings "default, then let the caller read it back" idiom
// rather than hard-coding the defaults into the running process.
func ensureDefaultConfigFiles(paths configPaths) error {
	if err := os.MkdirAll(paths.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if _, err := os.Stat(paths.bindings); os.IsNotExist(err) {
		data, err := yaml.Marshal(struct {
			ChordKeys [5]string             `yaml:"chord_keys"`
			Bindings  []config.BindingEntry `yaml:"bindings"`
		}{defaultChordKeys, defaultBindings})
		if err != nil {
			return fmt.Errorf("marshal default bindings: %w", err)
		}
		if err := os.WriteFile(paths.bindings, data, 0o644); err != nil {
			return fmt.Errorf("write default bindings: %w", err)
		}
	}

	if _, err := os.Stat(paths.mainCharset); os.IsNotExist(err) {
		if err := os.WriteFile(paths.mainCharset, []byte(defaultCharsetYAML), 0o644); err != nil {
			return fmt.Errorf("write default charsets: %w", err)
		}
	}

	return nil
}
