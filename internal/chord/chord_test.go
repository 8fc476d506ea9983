package chord

import "testing"

func TestNewRejectsOutOfRange(t *testing.T) {
	if New(32) != Invalid {
		t.Fatalf("New(32) should be invalid")
	}
	if New(200) != Invalid {
		t.Fatalf("New(200) should be invalid")
	}
	if !New(31).IsValid() {
		t.Fatalf("New(31) should be valid")
	}
}

func TestAlgebra(t *testing.T) {
	for b := uint8(0); b <= 31; b++ {
		c := New(b)
		d := New(b)
		if c != Invalid && !c.LessOrEqual(d) {
			t.Fatalf("c <= c should hold for %v", c)
		}
	}

	c := New(0b00011)
	d := New(0b00111)
	if !c.IsSubChord(d) {
		t.Fatalf("expected %v to be a sub-chord of %v", c, d)
	}
	if !d.IsSuperChord(c) {
		t.Fatalf("expected %v to be a super-chord of %v", d, c)
	}
	if c.IsSubChord(c) {
		t.Fatalf("sub-chord must be strict")
	}
	if !c.LessOrEqual(d) {
		t.Fatalf("c <= d should hold")
	}
	if d.IsSubChord(c) {
		t.Fatalf("d should not be a sub-chord of c")
	}
}

func TestHeldReleasedRoundTrip(t *testing.T) {
	c := New(0b01010)
	for i := 0; i < 5; i++ {
		if c.UsesKey(i) {
			continue
		}
		held := c.WithKeyHeld(i)
		back := held.WithKeyReleased(i)
		if back != c {
			t.Fatalf("withKeyHeld(%d).withKeyReleased(%d) = %v, want %v", i, i, back, c)
		}
	}
}

func TestUsesKeyOutOfRange(t *testing.T) {
	c := New(0b11111)
	if c.UsesKey(-1) || c.UsesKey(5) {
		t.Fatalf("UsesKey should be false for out-of-range indices")
	}
}
