package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"chordkey/internal/charval"
)

// MainSettings mirrors §6's main settings file: the three persisted
// flags, the last-used character-set kind and shift state, and the
// transient cached output buffer that survives exactly one restart.
type MainSettings struct {
	Minimized     bool    `toml:"minimized"`
	SnapToBottom  bool    `toml:"snap_to_bottom"`
	ImmediateMode bool    `toml:"immediate_mode"`
	LastCharSet   string  `toml:"last_char_set"`
	LastShift     bool    `toml:"last_shift"`
	CachedBuffer  []uint8 `toml:"cached_buffer,omitempty"`
}

// DefaultMainSettings returns the settings a fresh install starts with.
func DefaultMainSettings() MainSettings {
	return MainSettings{LastCharSet: "main"}
}

// LoadMainSettings reads settings from h, falling back to defaults when
// the file doesn't exist yet or fails to parse.
func LoadMainSettings(h *FileHandle) (MainSettings, error) {
	settings := DefaultMainSettings()
	err := h.Read(func(data []byte) error {
		return toml.Unmarshal(data, &settings)
	})
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultMainSettings(), nil
		}
		return DefaultMainSettings(), err
	}
	return settings, nil
}

// SaveMainSettings writes settings to h.
func SaveMainSettings(h *FileHandle, settings MainSettings) error {
	return h.Write(func() ([]byte, error) {
		return toml.Marshal(settings)
	})
}

// TakeCachedBuffer loads the settings file, extracts and clears
// CachedBuffer, and writes the file back without it — consuming it
// exactly once, per §6. Returns an empty slice if there was nothing
// cached (including when the file doesn't exist at all).
func TakeCachedBuffer(h *FileHandle) ([]charval.Value, error) {
	settings, err := LoadMainSettings(h)
	if err != nil {
		return nil, err
	}
	if len(settings.CachedBuffer) == 0 {
		return nil, nil
	}

	cached := settings.CachedBuffer
	settings.CachedBuffer = nil
	if err := SaveMainSettings(h, settings); err != nil {
		return nil, err
	}

	values := make([]charval.Value, len(cached))
	for i, b := range cached {
		values[i] = charval.Value(b)
	}
	return values, nil
}

// StashCachedBuffer writes values into the settings file's CachedBuffer
// field, for the shutdown path to call when the output buffer is
// non-empty at quit time.
func StashCachedBuffer(h *FileHandle, values []charval.Value) error {
	settings, err := LoadMainSettings(h)
	if err != nil {
		return err
	}
	bytes := make([]uint8, len(values))
	for i, v := range values {
		bytes[i] = uint8(v)
	}
	settings.CachedBuffer = bytes
	return SaveMainSettings(h, settings)
}
