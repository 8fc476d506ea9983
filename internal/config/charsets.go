package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"chordkey/internal/charset"
)

// CharSetEntryConfig is the YAML-friendly form of a character-set entry:
// characters are written as names or literal runes (see ParseCharValue)
// and an explicit chord is an optional 5-bit mask.
type CharSetEntryConfig struct {
	Primary  string `yaml:"primary"`
	Shifted  string `yaml:"shifted,omitempty"`
	Chord    *uint8 `yaml:"chord,omitempty"`
	Priority int    `yaml:"priority,omitempty"`
}

// ToEntry resolves the config form into a charset.Entry, the form the
// cache builder consumes.
func (e CharSetEntryConfig) ToEntry() (charset.Entry, error) {
	primary, err := ParseCharValue(e.Primary)
	if err != nil {
		return charset.Entry{}, fmt.Errorf("primary: %w", err)
	}
	entry := charset.Entry{Primary: primary, Chord: e.Chord, Priority: e.Priority}
	if e.Shifted != "" {
		shifted, err := ParseCharValue(e.Shifted)
		if err != nil {
			return charset.Entry{}, fmt.Errorf("shifted: %w", err)
		}
		entry.Shifted = &shifted
	}
	return entry, nil
}

type charSetDefinitionsFile struct {
	Main    []CharSetEntryConfig `yaml:"main"`
	Alt     []CharSetEntryConfig `yaml:"alt"`
	Special []CharSetEntryConfig `yaml:"special"`
}

// CharSetDefinitions holds the three configurable character-set entry
// lists (the modifier set is always the hard-coded one, per §4.2).
type CharSetDefinitions struct {
	Main    []charset.Entry
	Alt     []charset.Entry
	Special []charset.Entry
}

// LoadCharSetDefinitions reads main/alt/special entry lists. An entry
// with an unresolvable character value is dropped with a warning rather
// than failing the whole load, matching §7's "missing/invalid config
// entry" recovery.
func LoadCharSetDefinitions(h *FileHandle) (defs CharSetDefinitions, warnings []string, err error) {
	var parsed charSetDefinitionsFile
	readErr := h.Read(func(data []byte) error {
		return yaml.Unmarshal(data, &parsed)
	})
	if readErr != nil {
		return defs, nil, readErr
	}

	convert := func(kind string, in []CharSetEntryConfig) []charset.Entry {
		out := make([]charset.Entry, 0, len(in))
		for i, cfg := range in {
			entry, err := cfg.ToEntry()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s[%d]: %v, skipping", kind, i, err))
				continue
			}
			out = append(out, entry)
		}
		return out
	}

	defs.Main = convert("main", parsed.Main)
	defs.Alt = convert("alt", parsed.Alt)
	defs.Special = convert("special", parsed.Special)
	return defs, warnings, nil
}
