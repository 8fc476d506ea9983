package charval

import "testing"

func TestIsWideRange(t *testing.T) {
	for v := Value(0x10); v <= 0x1E; v++ {
		if !IsWide(v) {
			t.Fatalf("expected %#x to be wide", v)
		}
	}
	if IsWide(0x0F) || IsWide(0x1F) {
		t.Fatalf("boundary values should not be wide")
	}
}

func TestIsModifier(t *testing.T) {
	for _, v := range []Value{Ctrl, Alt, Shift, Super} {
		if !IsModifier(v) {
			t.Fatalf("expected %#x to be a modifier", v)
		}
	}
	if IsModifier(Escape) || IsModifier('a') {
		t.Fatalf("non-modifiers should not be reported as modifiers")
	}
}

func TestKeySymPrintable(t *testing.T) {
	sym, ok := KeySym(Value('a'))
	if !ok || sym != "0x61" {
		t.Fatalf("KeySym('a') = %q, %v, want 0x61, true", sym, ok)
	}
	sym, ok = KeySym(Value(0xA1))
	if !ok || sym != "0xa1" {
		t.Fatalf("KeySym(0xA1) = %q, %v, want 0xa1, true", sym, ok)
	}
}

func TestKeySymSemanticTokens(t *testing.T) {
	cases := map[Value]string{
		Back:   "BackSpace",
		Enter:  "Return",
		Tab:    "Tab",
		Up:     "Up",
		Down:   "Down",
		Left:   "Left",
		Right:  "Right",
		Escape: "Escape",
		Delete: "Delete",
	}
	for v, want := range cases {
		got, ok := KeySym(v)
		if !ok || got != want {
			t.Fatalf("KeySym(%#x) = %q, %v, want %q, true", v, got, ok, want)
		}
	}
}

func TestKeySymFunctionKeys(t *testing.T) {
	sym, ok := KeySym(F(1))
	if !ok || sym != "F1" {
		t.Fatalf("KeySym(F(1)) = %q, %v, want F1, true", sym, ok)
	}
	sym, ok = KeySym(F(12))
	if !ok || sym != "F12" {
		t.Fatalf("KeySym(F(12)) = %q, %v, want F12, true", sym, ok)
	}
}

func TestKeySymFailure(t *testing.T) {
	if _, ok := KeySym(Outline); ok {
		t.Fatalf("Outline has no platform key-sym")
	}
	if _, ok := KeySym(0xFF); ok {
		t.Fatalf("0xFF is outside the emittable Latin-1 range")
	}
}

func TestPairDefaultsShiftedToPrimary(t *testing.T) {
	p := NewPair(Value('a'), nil)
	if p.Shifted != p.Primary {
		t.Fatalf("shifted should default to primary")
	}
	shifted := Value('A')
	p2 := NewPair(Value('a'), &shifted)
	if p2.Shifted != shifted {
		t.Fatalf("shifted should use explicit value")
	}
	if p2.Resolve(false) != Value('a') || p2.Resolve(true) != Value('A') {
		t.Fatalf("Resolve should pick primary/shifted by flag")
	}
}
