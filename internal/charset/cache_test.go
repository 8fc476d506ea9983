package charset

import (
	"testing"

	"chordkey/internal/charval"
	"chordkey/internal/chord"
)

func chordBits(b uint8) *uint8 { return &b }

func TestBuildBijection(t *testing.T) {
	c := Build([]Entry{
		{Primary: charval.Value('a'), Priority: 1},
		{Primary: charval.Value('b'), Priority: 2},
		{Primary: charval.Value('c'), Priority: 3},
	}, nil)

	for _, pair := range c.Pairs() {
		ch, ok := c.ChordOf(pair.Primary)
		if !ok {
			t.Fatalf("expected chord for %v", pair.Primary)
		}
		got, ok := c.PairOf(ch)
		if !ok || got.Primary != pair.Primary {
			t.Fatalf("pairOf[chordOf[%v]] = %+v, want %+v", pair.Primary, got, pair)
		}
	}
}

func TestExplicitAssignmentPrecedence(t *testing.T) {
	c := Build([]Entry{
		{Primary: charval.Value('a'), Chord: chordBits(0b11111), Priority: 9},
		{Primary: charval.Value('b'), Priority: 9},
	}, nil)

	ch, _ := c.ChordOf(charval.Value('a'))
	if ch != chord.New(0b11111) {
		t.Fatalf("expected explicit chord honored, got %v", ch)
	}
	ch, _ = c.ChordOf(charval.Value('b'))
	if ch != chord.New(0b00001) {
		t.Fatalf("expected 'b' to take first convenience chord, got %v", ch)
	}
}

func TestPriorityOrdering(t *testing.T) {
	c := Build([]Entry{
		{Primary: charval.Value('x'), Priority: 1},
		{Primary: charval.Value('y'), Priority: 5},
		{Primary: charval.Value('z'), Priority: 3},
	}, nil)

	cases := map[rune]chord.Chord{
		'y': chord.New(0b00001),
		'z': chord.New(0b00010),
		'x': chord.New(0b00100),
	}
	for r, want := range cases {
		got, ok := c.ChordOf(charval.Value(r))
		if !ok || got != want {
			t.Fatalf("chordOf[%q] = %v, want %v", r, got, want)
		}
	}
}

func TestChordCollisionFallsThroughToAutomatic(t *testing.T) {
	c := Build([]Entry{
		{Primary: charval.Value('a'), Chord: chordBits(0b00001), Priority: 9},
		{Primary: charval.Value('b'), Chord: chordBits(0b00001), Priority: 9},
	}, nil)

	chA, _ := c.ChordOf(charval.Value('a'))
	chB, _ := c.ChordOf(charval.Value('b'))
	if chA != chord.New(0b00001) {
		t.Fatalf("expected 'a' to keep its explicit chord")
	}
	if chB == chA || !chB.IsValid() {
		t.Fatalf("expected 'b' to be demoted to a different automatic chord, got %v", chB)
	}
}

func TestOverflowTruncates(t *testing.T) {
	entries := make([]Entry, 40)
	for i := range entries {
		entries[i] = Entry{Primary: charval.Value(0x20 + i), Priority: i}
	}
	c := Build(entries, nil)
	if len(c.Pairs()) != maxEntries {
		t.Fatalf("expected truncation to %d entries, got %d", maxEntries, len(c.Pairs()))
	}
}

func TestShiftedDefaultsToPrimary(t *testing.T) {
	c := Build([]Entry{{Primary: charval.Value('a'), Priority: 1}}, nil)
	pairs := c.Pairs()
	if pairs[0].Shifted != pairs[0].Primary {
		t.Fatalf("expected shifted to default to primary")
	}
}

func TestModifierCache(t *testing.T) {
	c := BuildModifierCache()
	want := []charval.Value{charval.Shift, charval.Ctrl, charval.Alt, charval.Super}
	for _, v := range want {
		ch, ok := c.ChordOf(v)
		if !ok || chord.IndexOf(ch) > 3 {
			t.Fatalf("expected %v bound to one of the first four convenience chords, got %v", v, ch)
		}
		pair, _ := c.PairOf(ch)
		if pair.Shifted != pair.Primary {
			t.Fatalf("modifier pairs should have shifted == primary")
		}
	}
}
