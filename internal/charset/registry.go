package charset

import (
	"chordkey/internal/charval"
	"chordkey/internal/chord"
	"chordkey/internal/diag"
)

// Kind identifies one of the four built-in character-set kinds.
type Kind int

const (
	KindMain Kind = iota
	KindAlt
	KindSpecial
	KindModifier
)

// BuildModifierCache returns the hard-coded modifier set: shift, ctrl,
// alt, super mapped to the first four convenience chords, shifted equal
// to primary for every pair.
func BuildModifierCache() *Cache {
	return Build([]Entry{
		{Primary: charval.Shift, Priority: 4},
		{Primary: charval.Ctrl, Priority: 3},
		{Primary: charval.Alt, Priority: 2},
		{Primary: charval.Super, Priority: 1},
	}, nil)
}

// Registry holds the four immutable caches plus the mutable active-kind
// selector and shift flag. Switching kinds or toggling shift never
// rebuilds a cache.
type Registry struct {
	caches map[Kind]*Cache
	active Kind
	shift  bool
}

// NewRegistry builds a Registry from per-kind entry lists. The modifier
// cache is always the hard-coded one; main/alt/special are built from the
// supplied configuration. Default active kind is main, default shift is
// off.
func NewRegistry(main, alt, special []Entry, logger *diag.Logger) *Registry {
	return &Registry{
		caches: map[Kind]*Cache{
			KindMain:     Build(main, logger),
			KindAlt:      Build(alt, logger),
			KindSpecial:  Build(special, logger),
			KindModifier: BuildModifierCache(),
		},
		active: KindMain,
	}
}

// Active returns the currently selected kind.
func (r *Registry) Active() Kind {
	return r.active
}

// SetActive mutates the selector. Pure state update; no cache rebuild.
func (r *Registry) SetActive(k Kind) {
	r.active = k
}

// NextKind cycles main -> alt -> special -> modifier -> main.
func NextKind(k Kind) Kind {
	switch k {
	case KindMain:
		return KindAlt
	case KindAlt:
		return KindSpecial
	case KindSpecial:
		return KindModifier
	default:
		return KindMain
	}
}

// SelectNext advances the active kind cyclically over the four kinds.
func (r *Registry) SelectNext() {
	r.active = NextKind(r.active)
}

// Shift returns the current shift flag.
func (r *Registry) Shift() bool {
	return r.shift
}

// SetShift sets the shift flag.
func (r *Registry) SetShift(on bool) {
	r.shift = on
}

// ToggleShift flips the shift flag.
func (r *Registry) ToggleShift() {
	r.shift = !r.shift
}

// Cache returns the built cache for a kind.
func (r *Registry) Cache(k Kind) *Cache {
	return r.caches[k]
}

// ActiveCache returns the cache for the currently active kind.
func (r *Registry) ActiveCache() *Cache {
	return r.caches[r.active]
}

// ResolveChord looks up the CharValue for a chord under the active kind
// and current shift flag.
func (r *Registry) ResolveChord(ch chord.Chord) (charval.Value, bool) {
	pair, ok := r.ActiveCache().PairOf(ch)
	if !ok {
		return 0, false
	}
	return pair.Resolve(r.shift), true
}
