// Package charval defines the CharValue domain: the small integer space the
// rest of chordkey uses to denote emitted characters, semantic tokens, and
// modifiers, plus the platform key-sym strings they map to.
package charval

import "fmt"

// Value is a domain integer in [0, 0xFF]. Printable ASCII and printable
// Latin-1 extended ranges denote themselves; reserved low values denote
// non-printable semantic tokens and modifiers.
type Value uint8

// Semantic tokens (reserved low values). Printable ASCII starts at 0x20,
// so values below that are free for non-printable meanings.
const (
	Outline Value = 0x01
	Fill    Value = 0x02
	Back    Value = 0x03
	Enter   Value = 0x04
	Tab     Value = 0x05
	Up      Value = 0x06
	Down    Value = 0x07
	Left    Value = 0x08
	Right   Value = 0x09
)

// Double-width glyphs and modifier tokens.
const (
	Ctrl        Value = 0x10
	Alt         Value = 0x12
	Shift       Value = 0x14
	Super       Value = 0x16
	Escape      Value = 0x18
	Delete      Value = 0x1A
	WideFill    Value = 0x1C
	WideOutline Value = 0x1E
)

// F1..F12 occupy 0x80..0x8B.
const f1Base Value = 0x80

// F is the CharValue denoting function key n (1-indexed, 1..12).
func F(n int) Value {
	if n < 1 || n > 12 {
		return 0
	}
	return f1Base + Value(n-1)
}

// IsPrintableASCII reports whether v denotes itself as printable ASCII.
func IsPrintableASCII(v Value) bool {
	return v >= 0x20 && v <= 0x7F
}

// IsPrintableLatin1 reports whether v denotes itself as printable Latin-1
// extended.
func IsPrintableLatin1(v Value) bool {
	return v >= 0xA1 && v <= 0xFF
}

// IsFunctionKey reports whether v denotes F1..F12.
func IsFunctionKey(v Value) bool {
	return v >= 0x80 && v <= 0x8B
}

// IsWide reports whether v is one of the double-width glyph/modifier
// tokens in [0x10, 0x1E].
func IsWide(v Value) bool {
	return v >= 0x10 && v <= 0x1E
}

// IsModifier reports whether v is one of the four modifier tokens.
func IsModifier(v Value) bool {
	switch v {
	case Ctrl, Alt, Shift, Super:
		return true
	default:
		return false
	}
}

// KeySym returns the platform key-sym string for v, and false if v maps to
// nothing the system can emit.
func KeySym(v Value) (string, bool) {
	if IsPrintableASCII(v) || (v >= 0xA1 && v <= 0xFE) {
		return fmt.Sprintf("0x%02x", uint8(v)), true
	}
	switch v {
	case Back:
		return "BackSpace", true
	case Enter:
		return "Return", true
	case Tab:
		return "Tab", true
	case Up:
		return "Up", true
	case Down:
		return "Down", true
	case Left:
		return "Left", true
	case Right:
		return "Right", true
	case Escape:
		return "Escape", true
	case Delete:
		return "Delete", true
	}
	if IsFunctionKey(v) {
		return fmt.Sprintf("F%d", int(v-f1Base)+1), true
	}
	return "", false
}

// Pair is a primary/shifted CharValue pair. Shifted defaults to Primary
// when the caller does not specify one.
type Pair struct {
	Primary Value
	Shifted Value
}

// NewPair builds a Pair, defaulting Shifted to Primary.
func NewPair(primary Value, shifted *Value) Pair {
	p := Pair{Primary: primary, Shifted: primary}
	if shifted != nil {
		p.Shifted = *shifted
	}
	return p
}

// Resolve returns the primary or shifted value depending on shiftActive.
func (p Pair) Resolve(shiftActive bool) Value {
	if shiftActive {
		return p.Shifted
	}
	return p.Primary
}
