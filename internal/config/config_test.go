package config

import (
	"os"
	"path/filepath"
	"testing"

	"chordkey/internal/charval"
)

func TestParseCharValueVariants(t *testing.T) {
	cases := []struct {
		in   string
		want charval.Value
	}{
		{"a", charval.Value('a')},
		{"0x41", 0x41},
		{"enter", charval.Enter},
		{"f1", charval.F(1)},
		{"f12", charval.F(12)},
		{"ctrl", charval.Ctrl},
	}
	for _, c := range cases {
		got, err := ParseCharValue(c.in)
		if err != nil {
			t.Fatalf("ParseCharValue(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseCharValue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseCharValueRejectsGarbage(t *testing.T) {
	if _, err := ParseCharValue("not-a-real-token"); err == nil {
		t.Fatalf("expected an error for an unrecognized token")
	}
	if _, err := ParseCharValue(""); err == nil {
		t.Fatalf("expected an error for an empty value")
	}
}

func TestActionMapSkipsDuplicateKeyBindings(t *testing.T) {
	bindings := []BindingEntry{
		{Action: "select-next", Key: "Tab", Display: "Next", Char: "n"},
		{Action: "toggle-shift", Key: "Tab", Display: "Shift", Char: "s"},
	}
	actions, warnings := ActionMap(bindings)
	if len(actions) != 1 || actions["Tab"] != "select-next" {
		t.Fatalf("expected first binding to win, got %+v", actions)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning about the duplicate, got %v", warnings)
	}
}

func TestLoadKeyBindingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.yaml")
	content := `
chord_keys: ["a", "s", "d", "f", "j"]
bindings:
  - action: select-next
    key: Tab
    display: "Next set"
    char: n
  - action: clear-all
    key: Escape
    display: "Clear"
    char: c
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	keys, bindings, err := LoadKeyBindings(NewFileHandle(path))
	if err != nil {
		t.Fatalf("LoadKeyBindings: %v", err)
	}
	if keys != [5]string{"a", "s", "d", "f", "j"} {
		t.Fatalf("got chord keys %v", keys)
	}
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
}

func TestLoadCharSetDefinitionsSkipsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charsets.yaml")
	content := `
main:
  - primary: a
    priority: 5
  - primary: "not-a-real-token"
    priority: 4
  - primary: b
    chord: 31
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	defs, warnings, err := LoadCharSetDefinitions(NewFileHandle(path))
	if err != nil {
		t.Fatalf("LoadCharSetDefinitions: %v", err)
	}
	if len(defs.Main) != 2 {
		t.Fatalf("expected the invalid entry to be dropped, got %d entries", len(defs.Main))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning for the invalid entry, got %v", warnings)
	}
}

func TestMainSettingsDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandle(filepath.Join(dir, "does-not-exist.toml"))
	settings, err := LoadMainSettings(h)
	if err != nil {
		t.Fatalf("expected missing file to fall back to defaults, got %v", err)
	}
	if settings.LastCharSet != "main" {
		t.Fatalf("expected default settings, got %+v", settings)
	}
}

func TestMainSettingsSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandle(filepath.Join(dir, "settings.toml"))

	settings := DefaultMainSettings()
	settings.ImmediateMode = true
	settings.SnapToBottom = true
	settings.LastCharSet = "alt"
	settings.LastShift = true

	if err := SaveMainSettings(h, settings); err != nil {
		t.Fatalf("SaveMainSettings: %v", err)
	}
	loaded, err := LoadMainSettings(h)
	if err != nil {
		t.Fatalf("LoadMainSettings: %v", err)
	}
	if loaded.ImmediateMode != settings.ImmediateMode ||
		loaded.SnapToBottom != settings.SnapToBottom ||
		loaded.Minimized != settings.Minimized ||
		loaded.LastCharSet != settings.LastCharSet ||
		loaded.LastShift != settings.LastShift {
		t.Fatalf("got %+v, want %+v", loaded, settings)
	}
}

func TestCachedBufferConsumedExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	h := NewFileHandle(filepath.Join(dir, "settings.toml"))

	values := []charval.Value{charval.Value('a'), charval.Value('b'), charval.Enter}
	if err := StashCachedBuffer(h, values); err != nil {
		t.Fatalf("StashCachedBuffer: %v", err)
	}

	got, err := TakeCachedBuffer(h)
	if err != nil {
		t.Fatalf("TakeCachedBuffer: %v", err)
	}
	if len(got) != len(values) {
		t.Fatalf("got %v, want %v", got, values)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], values[i])
		}
	}

	again, err := TakeCachedBuffer(h)
	if err != nil {
		t.Fatalf("second TakeCachedBuffer: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected the cached buffer to be consumed exactly once, got %v", again)
	}
}
