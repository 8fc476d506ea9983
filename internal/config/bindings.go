package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BindingEntry is one row of the key-binding table: a named action bound
// to a platform key descriptor, with the display metadata §6 requires
// (display name, single display character) for a help overlay or key
// legend to render.
type BindingEntry struct {
	Action  string `yaml:"action"`
	Key     string `yaml:"key"`
	Display string `yaml:"display"`
	Char    string `yaml:"char"`
}

type bindingsFile struct {
	ChordKeys [5]string      `yaml:"chord_keys"`
	Bindings  []BindingEntry `yaml:"bindings"`
}

// LoadKeyBindings reads the key-binding table and the five chord-key
// descriptors from path.
func LoadKeyBindings(h *FileHandle) (chordKeys [5]string, bindings []BindingEntry, err error) {
	var parsed bindingsFile
	readErr := h.Read(func(data []byte) error {
		return yaml.Unmarshal(data, &parsed)
	})
	if readErr != nil {
		return chordKeys, nil, readErr
	}
	if len(parsed.Bindings) == 0 {
		return parsed.ChordKeys, nil, fmt.Errorf("key-binding file %s defines no bindings", h.Path())
	}
	return parsed.ChordKeys, parsed.Bindings, nil
}

// ActionMap builds a key-descriptor -> action-identifier lookup from a
// parsed binding list, skipping and reporting duplicate key assignments
// to the caller via the returned warnings slice (missing/invalid entries
// are a config problem, not a crash, per §7).
func ActionMap(bindings []BindingEntry) (actions map[string]string, warnings []string) {
	actions = make(map[string]string, len(bindings))
	for _, b := range bindings {
		if b.Key == "" || b.Action == "" {
			warnings = append(warnings, fmt.Sprintf("skipping binding with empty key or action: %+v", b))
			continue
		}
		if _, exists := actions[b.Key]; exists {
			warnings = append(warnings, fmt.Sprintf("key %q already bound, ignoring duplicate action %q", b.Key, b.Action))
			continue
		}
		actions[b.Key] = b.Action
	}
	return actions, warnings
}
