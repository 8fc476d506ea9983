package buffer

import (
	"testing"

	"chordkey/internal/charval"
)

func TestAppendDeleteLastRoundTrip(t *testing.T) {
	b := New()
	b.Append(charval.Value('a'))
	b.Append(charval.Value('b'))
	before := b.Values()

	b.Append(charval.Value('c'))
	if !b.DeleteLast() {
		t.Fatalf("expected DeleteLast to report success")
	}
	after := b.Values()

	if len(before) != len(after) {
		t.Fatalf("round trip changed length: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("round trip changed contents at %d: %v vs %v", i, before[i], after[i])
		}
	}
}

func TestDeleteLastOnEmpty(t *testing.T) {
	b := New()
	if b.DeleteLast() {
		t.Fatalf("DeleteLast on empty buffer should report false")
	}
}

func TestClearPreservesModifiers(t *testing.T) {
	b := New()
	b.Append(charval.Value('x'))
	b.SetModifierFlags(FlagShift | FlagControl)

	b.Clear(true)
	if !b.IsEmpty() {
		t.Fatalf("expected values cleared")
	}
	if b.ModifierFlags() != (FlagShift | FlagControl) {
		t.Fatalf("expected modifiers preserved, got %b", b.ModifierFlags())
	}

	b.Clear(false)
	if b.ModifierFlags() != 0 {
		t.Fatalf("expected modifiers reset, got %b", b.ModifierFlags())
	}
}

func TestToggleModifierXOR(t *testing.T) {
	b := New()
	b.ToggleModifier(FlagShift)
	if b.ModifierFlags() != FlagShift {
		t.Fatalf("expected shift set")
	}
	b.ToggleModifier(FlagShift)
	if b.ModifierFlags() != 0 {
		t.Fatalf("expected second toggle to clear shift")
	}
}

func TestSetModifierFlagsMasksUnknownBits(t *testing.T) {
	b := New()
	b.SetModifierFlags(0xFF)
	if b.ModifierFlags() != (FlagControl | FlagShift | FlagAlt | FlagSuper) {
		t.Fatalf("expected only the four defined bits, got %b", b.ModifierFlags())
	}
}
