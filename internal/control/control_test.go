package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordkey/internal/buffer"
	"chordkey/internal/charset"
	"chordkey/internal/charval"
	"chordkey/internal/dispatch"
	"chordkey/internal/focus"
	"chordkey/internal/recognizer"
	"chordkey/internal/wm"
)

type recordingEmitter struct{ keys []string }

func (e *recordingEmitter) EmitKey(keysym string) error {
	e.keys = append(e.keys, keysym)
	return nil
}

type recordingHost struct{}

func (recordingHost) PrepareForSending() func() { return func() {} }

func newTestEntries() []charset.Entry {
	return []charset.Entry{
		{Primary: charval.Value('a'), Priority: 5},
		{Primary: charval.Value('b'), Priority: 4},
	}
}

func buildHarness(t *testing.T) (*Controller, *recognizer.Recognizer, *buffer.Buffer, *charset.Registry, *recordingEmitter) {
	t.Helper()
	keys := [5]string{"k0", "k1", "k2", "k3", "k4"}
	rec := recognizer.New(keys, nil)

	reg := charset.NewRegistry(newTestEntries(), newTestEntries(), newTestEntries(), nil)
	buf := buffer.New()

	a := wm.NewFakeAdapter(1)
	a.ActivateEffect = func(w wm.WindowID) { a.Active = w }
	fc := focus.New(a, nil, nil)
	emitter := &recordingEmitter{}
	disp := dispatch.New(a, fc, emitter, recordingHost{}, 1, nil)

	bindings := map[string]ActionFunc{
		"next":  StandardActions["select-next"],
		"shift": StandardActions["toggle-shift"],
		"bksp":  StandardActions["backspace"],
		"clear": StandardActions["clear-all"],
		"send":  StandardActions["send-text"],
		"imm":   StandardActions["toggle-immediate-mode"],
		"help":  StandardActions["show-help"],
	}
	c := New(reg, buf, rec, disp, 9, bindings)
	return c, rec, buf, reg, emitter
}

func commit(rec *recognizer.Recognizer, bit int) {
	rec.OnKeyDown([5]string{"k0", "k1", "k2", "k3", "k4"}[bit])
	rec.OnChordKeyUp([5]string{"k0", "k1", "k2", "k3", "k4"}[bit])
}

func TestChordCommitAppendsToBufferWhenNotImmediate(t *testing.T) {
	_, rec, buf, _, _ := buildHarness(t)
	commit(rec, 0) // chordOf['a'] lands on the first convenience singleton

	require.False(t, buf.IsEmpty(), "expected commit to append to the buffer")
	assert.Equal(t, []charval.Value{'a'}, buf.Values())
}

func TestImmediateModeInvariantBufferStaysEmpty(t *testing.T) {
	c, rec, buf, _, emitter := buildHarness(t)
	c.withGuard(func(release func()) { actionToggleImmediateMode(c, release) })
	require.True(t, c.ImmediateMode(), "expected immediate mode enabled")

	commit(rec, 0)
	commit(rec, 1)

	assert.True(t, buf.IsEmpty(), "OutputBuffer.IsEmpty() must stay true in immediate mode")
	assert.Equal(t, []string{"0x61", "0x62"}, emitter.keys, "both keys dispatched directly")
}

func TestModifierCommitTwiceLeavesFlagsUnchanged(t *testing.T) {
	_, rec, buf, reg, _ := buildHarness(t)
	reg.SetActive(charset.KindModifier)

	before := buf.ModifierFlags()
	commit(rec, 0) // modifier chord: shift lands on first convenience singleton
	commit(rec, 0)

	assert.Equal(t, before, buf.ModifierFlags(), "XOR-twice must restore modifier flags")
}

func TestHelpOverlayClosesOnAnyCommitOrKey(t *testing.T) {
	c, rec, buf, reg, _ := buildHarness(t)
	c.withGuard(func(release func()) { actionShowHelp(c, release) })
	require.True(t, c.HelpVisible(), "expected help overlay open")

	commit(rec, 0)
	assert.False(t, c.HelpVisible(), "any chord commit closes the help overlay")
	assert.True(t, buf.IsEmpty(), "the commit that closed help must not also append to the buffer")

	c.withGuard(func(release func()) { actionShowHelp(c, release) })
	require.True(t, c.HelpVisible(), "expected help overlay reopened")

	rec.OnKeyDown("next")
	assert.False(t, c.HelpVisible(), "any bound key closes the help overlay")
	assert.Equal(t, charset.KindMain, reg.Active(), "the key that closed help must not also run its action")
}

func TestReentrantDispatchDropsEvent(t *testing.T) {
	c, rec, buf, _, _ := buildHarness(t)

	c.withGuard(func(release func()) {
		// Simulate a still-in-flight handler: a nested recognizer event
		// arriving now must be dropped, not queued.
		commit(rec, 1)
		assert.True(t, buf.IsEmpty(), "nested commit silently dropped while guard held")
		release()
	})

	commit(rec, 0)
	assert.False(t, buf.IsEmpty(), "a commit after the guard is released is handled normally")
}

func TestToggleImmediateModeFlushesNonEmptyBufferFirst(t *testing.T) {
	c, rec, buf, _, emitter := buildHarness(t)

	commit(rec, 0)
	require.False(t, buf.IsEmpty())

	c.withGuard(func(release func()) { actionToggleImmediateMode(c, release) })

	assert.True(t, c.ImmediateMode(), "mode enabled after the flush completes")
	assert.True(t, buf.IsEmpty(), "buffered output flushed, not dropped")
	assert.Equal(t, []string{"0x61"}, emitter.keys, "the buffered value was dispatched")
}

func TestSetImmediateModeSkipsFlush(t *testing.T) {
	c, _, _, _, emitter := buildHarness(t)

	c.SetImmediateMode(true)

	assert.True(t, c.ImmediateMode())
	assert.Empty(t, emitter.keys, "direct mode restore dispatches nothing")
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	_, rec, buf, _, _ := buildHarness(t)
	rec.OnKeyDown("unbound-key")
	// No panic, no effect: invalid bound-key press is ignored per §7.
	assert.True(t, buf.IsEmpty())
}
