// Package buffer implements the output buffer: an append-only ordered
// sequence of committed CharValues plus a modifier-flag bitfield.
package buffer

import "chordkey/internal/charval"

// Modifier bit flags. Only these four bits are ever set.
const (
	FlagControl uint8 = 1 << iota
	FlagShift
	FlagAlt
	FlagSuper

	flagMask = FlagControl | FlagShift | FlagAlt | FlagSuper
)

// Buffer holds the pending output: a sequence of CharValues and an
// independent modifier-flag bitfield.
type Buffer struct {
	values        []charval.Value
	modifierFlags uint8
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds v to the end of the sequence.
func (b *Buffer) Append(v charval.Value) {
	b.values = append(b.values, v)
}

// DeleteLast removes the last value, if any. Reports whether a value was
// removed.
func (b *Buffer) DeleteLast() bool {
	if len(b.values) == 0 {
		return false
	}
	b.values = b.values[:len(b.values)-1]
	return true
}

// Clear empties the sequence. When preserveModifiers is false, the
// modifier flags are reset to zero as well.
func (b *Buffer) Clear(preserveModifiers bool) {
	b.values = nil
	if !preserveModifiers {
		b.modifierFlags = 0
	}
}

// Values returns a copy of the current sequence.
func (b *Buffer) Values() []charval.Value {
	out := make([]charval.Value, len(b.values))
	copy(out, b.values)
	return out
}

// IsEmpty reports whether the sequence is empty. Modifier flags do not
// count towards emptiness.
func (b *Buffer) IsEmpty() bool {
	return len(b.values) == 0
}

// ModifierFlags returns the current modifier bitfield.
func (b *Buffer) ModifierFlags() uint8 {
	return b.modifierFlags
}

// SetModifierFlags replaces the modifier bitfield, masking to the four
// defined bits.
func (b *Buffer) SetModifierFlags(flags uint8) {
	b.modifierFlags = flags & flagMask
}

// ToggleModifier XORs a single modifier bit into the bitfield, matching
// the "committing the same modifier token twice leaves modifierFlags
// unchanged" invariant.
func (b *Buffer) ToggleModifier(flag uint8) {
	b.modifierFlags ^= (flag & flagMask)
}
