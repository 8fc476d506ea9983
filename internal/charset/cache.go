// Package charset builds and serves the character-set caches (§4.2): the
// ordered character list for one set, its bidirectional character/chord
// maps, and the registry of the four built-in kinds.
package charset

import (
	"sort"

	"chordkey/internal/charval"
	"chordkey/internal/chord"
	"chordkey/internal/diag"
)

// maxEntries is the largest number of pairs a single cache may hold: one
// slot per valid chord.
const maxEntries = 31

// Entry describes one source-configuration row before a Cache is built.
type Entry struct {
	Primary  charval.Value
	Shifted  *charval.Value // nil means "defaults to Primary"
	Chord    *uint8         // explicit chord bitmap, nil means automatic
	Priority int            // used when Chord is nil, invalid, or already reserved
}

// Cache is the immutable, built character-set cache for one kind: an
// ordered CharPair list plus the bidirectional chord/character maps.
type Cache struct {
	pairs         []charval.Pair
	chordOf       map[charval.Value]chord.Chord
	pairOf        [32]*charval.Pair // indexed by chord bitmap, 0 unused
	wideDrawCount int
}

type resolvedEntry struct {
	pair     charval.Pair
	priority int
	chord    chord.Chord // Invalid until resolved
}

// Build runs the §4.2 construction algorithm over entries in source order,
// logging and recovering from the documented error cases rather than
// failing the whole build.
func Build(entries []Entry, logger *diag.Logger) *Cache {
	c := &Cache{chordOf: make(map[charval.Value]chord.Chord)}

	if len(entries) > maxEntries {
		if logger != nil {
			logger.Warnf(diag.ComponentCharSet, "character set has %d entries, truncating to %d", len(entries), maxEntries)
		}
		entries = entries[:maxEntries]
	}

	resolved := make([]resolvedEntry, 0, len(entries))
	for _, e := range entries {
		re := resolvedEntry{
			pair:     charval.NewPair(e.Primary, e.Shifted),
			priority: e.Priority,
		}
		resolved = append(resolved, re)
	}

	// Step 2: honor explicit chord assignments first.
	for i := range resolved {
		e := entries[i]
		if e.Chord == nil {
			continue
		}
		candidate := chord.New(*e.Chord)
		if !candidate.IsValid() || c.pairOf[candidate.Bits()] != nil {
			if logger != nil {
				logger.Warnf(diag.ComponentCharSet, "explicit chord %05b already reserved or invalid, demoting entry for %v to automatic assignment", *e.Chord, e.Primary)
			}
			continue
		}
		c.reserve(candidate, resolved[i].pair)
		resolved[i].chord = candidate
		resolved[i].priority = -1
	}

	// Step 3: stable-sort the unresolved entries by descending priority.
	unresolvedIdx := make([]int, 0, len(resolved))
	for i, re := range resolved {
		if !re.chord.IsValid() {
			unresolvedIdx = append(unresolvedIdx, i)
		}
	}
	sort.SliceStable(unresolvedIdx, func(a, b int) bool {
		return resolved[unresolvedIdx[a]].priority > resolved[unresolvedIdx[b]].priority
	})

	// Step 4: walk the convenience ordering, skipping already-reserved
	// chords, assigning one per unresolved entry in priority order.
	convIdx := 0
	for _, idx := range unresolvedIdx {
		for convIdx < len(chord.Convenience) && c.pairOf[chord.Convenience[convIdx].Bits()] != nil {
			convIdx++
		}
		if convIdx >= len(chord.Convenience) {
			if logger != nil {
				logger.Warnf(diag.ComponentCharSet, "ran out of convenience chords while assigning %v", resolved[idx].pair.Primary)
			}
			break
		}
		c.reserve(chord.Convenience[convIdx], resolved[idx].pair)
		resolved[idx].chord = chord.Convenience[convIdx]
		convIdx++
	}

	// Step 5: append every entry's pair in original source order.
	for _, re := range resolved {
		c.pairs = append(c.pairs, re.pair)
		if charval.IsWide(re.pair.Primary) || charval.IsWide(re.pair.Shifted) {
			c.wideDrawCount++
		}
	}

	return c
}

// reserve records the bijection for one pair under chord c.
func (c *Cache) reserve(ch chord.Chord, pair charval.Pair) {
	p := pair
	c.pairOf[ch.Bits()] = &p
	c.chordOf[pair.Primary] = ch
	c.chordOf[pair.Shifted] = ch
}

// Pairs returns the ordered CharPair list.
func (c *Cache) Pairs() []charval.Pair {
	out := make([]charval.Pair, len(c.pairs))
	copy(out, c.pairs)
	return out
}

// ChordOf returns the chord bound to a CharValue, and whether one exists.
func (c *Cache) ChordOf(v charval.Value) (chord.Chord, bool) {
	ch, ok := c.chordOf[v]
	return ch, ok
}

// PairOf returns the CharPair bound to a chord, and whether one exists.
func (c *Cache) PairOf(ch chord.Chord) (charval.Pair, bool) {
	p := c.pairOf[ch.Bits()]
	if p == nil {
		return charval.Pair{}, false
	}
	return *p, true
}

// WideDrawCount returns the number of pairs containing a double-width
// glyph, used by the (out-of-scope) rendering layer to size its grid.
func (c *Cache) WideDrawCount() int {
	return c.wideDrawCount
}
