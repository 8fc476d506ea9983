package chord

// Convenience is the fixed 31-element permutation of the valid chord
// bitmaps, ordered from easiest to hardest to type: the five singletons,
// the four adjacent pairs, the six gapped pairs, the three adjacent
// triples, the seven gapped triples, the five quads, and finally the
// all-keys chord. This ordering is part of the specification
// and must be reproduced exactly.
var Convenience = [31]Chord{
	// singletons
	0b00001, 0b00010, 0b00100, 0b01000, 0b10000,
	// adjacent pairs
	0b00011, 0b00110, 0b01100, 0b11000,
	// gapped pairs
	0b00101, 0b01010, 0b01001, 0b10100, 0b10010, 0b10001,
	// adjacent triples
	0b00111, 0b01110, 0b11100,
	// gapped triples
	0b01011, 0b01101, 0b10110, 0b10011, 0b11001, 0b11010, 0b10101,
	// quads
	0b01111, 0b10111, 0b11011, 0b11101, 0b11110,
	// all keys
	0b11111,
}

// IndexOf returns the position of c within Convenience, or -1 if c is not
// a valid chord.
func IndexOf(c Chord) int {
	for i, v := range Convenience {
		if v == c {
			return i
		}
	}
	return -1
}
