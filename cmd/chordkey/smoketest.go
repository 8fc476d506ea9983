package main

import (
	"fmt"
	"time"

	"chordkey/internal/buffer"
	"chordkey/internal/charset"
	"chordkey/internal/charval"
	"chordkey/internal/chord"
	"chordkey/internal/condition"
	"chordkey/internal/dispatch"
	"chordkey/internal/focus"
	"chordkey/internal/recognizer"
	"chordkey/internal/wm"
)

// testClock is a deterministic condition.Clock for the --test harness,
// the same shape as the fakeClock each package's own tests use, so the
// scenarios below reproduce §8's end-to-end examples without sleeping.
type testClock struct {
	now     time.Time
	pending []pendingFire
}

type pendingFire struct {
	at time.Time
	f  func()
}

type testTimer struct {
	clock *testClock
	fire  func()
	fired bool
}

func newTestClock() *testClock { return &testClock{now: time.Unix(0, 0)} }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) AfterFunc(d time.Duration, f func()) condition.Timer {
	t := &testTimer{clock: c, fire: f}
	c.pending = append(c.pending, pendingFire{at: c.now.Add(d), f: func() {
		if !t.fired {
			t.fired = true
			f()
		}
	}})
	return t
}

func (t *testTimer) Stop() bool {
	t.fired = true
	return true
}

// advance moves the clock forward by d, firing any timers due at or
// before the new time, in order.
func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
	for {
		fired := false
		for i, p := range c.pending {
			if !p.at.After(c.now) {
				c.pending = append(c.pending[:i], c.pending[i+1:]...)
				p.f()
				fired = true
				break
			}
		}
		if !fired {
			return
		}
	}
}

// runSmokeTests runs §8's six end-to-end scenarios as a standalone
// harness, grounded on test_corelx_features/main.go's
// run-and-print-PASS/FAIL pattern, and returns whether every scenario
// passed.
func runSmokeTests() bool {
	results := []struct {
		name string
		ok   bool
	}{
		{"single-key chord", testSingleKeyChord()},
		{"tolerated late release", testToleratedLateRelease()},
		{"genuine selection reduction", testGenuineSelectionReduction()},
		{"explicit chord honored", testExplicitChordHonored()},
		{"priority ordering", testPriorityOrdering()},
		{"dispatcher buffer flush", testDispatcherBufferFlush()},
	}

	allOK := true
	fmt.Println("=== chordkey built-in smoke tests ===")
	for _, r := range results {
		status := "PASS"
		if !r.ok {
			status = "FAIL"
			allOK = false
		}
		fmt.Printf("[%s] %s\n", status, r.name)
	}
	return allOK
}

func testSingleKeyChord() bool {
	keys := [5]string{"a", "s", "d", "f", "j"}
	clock := newTestClock()
	rec := recognizer.New(keys, clock)

	var events []recognizer.Event
	rec.AddListener(func(ev recognizer.Event) { events = append(events, ev) })

	rec.OnKeyDown("a")
	rec.OnChordKeyUp("a")

	if len(events) != 2 {
		return false
	}
	if events[0].Kind != recognizer.SelectionChanged || events[0].Chord != chord.New(0b00001) {
		return false
	}
	if events[1].Kind != recognizer.ChordCommitted || events[1].Chord != chord.New(0b00001) {
		return false
	}
	return !rec.Held().IsValid() && !rec.Selected().IsValid()
}

func testToleratedLateRelease() bool {
	keys := [5]string{"a", "s", "d", "f", "j"}
	clock := newTestClock()
	rec := recognizer.New(keys, clock)

	var events []recognizer.Event
	rec.AddListener(func(ev recognizer.Event) { events = append(events, ev) })

	rec.OnKeyDown("a")
	rec.OnKeyDown("s")
	rec.OnChordKeyUp("s")
	clock.advance(50 * time.Millisecond)
	rec.OnChordKeyUp("a")

	if len(events) != 3 {
		return false
	}
	return events[0].Kind == recognizer.SelectionChanged && events[0].Chord == chord.New(0b00001) &&
		events[1].Kind == recognizer.SelectionChanged && events[1].Chord == chord.New(0b00011) &&
		events[2].Kind == recognizer.ChordCommitted && events[2].Chord == chord.New(0b00011)
}

func testGenuineSelectionReduction() bool {
	keys := [5]string{"a", "s", "d", "f", "j"}
	clock := newTestClock()
	rec := recognizer.New(keys, clock)

	var events []recognizer.Event
	rec.AddListener(func(ev recognizer.Event) { events = append(events, ev) })

	rec.OnKeyDown("a")
	rec.OnKeyDown("s")
	rec.OnChordKeyUp("s")
	clock.advance(recognizer.SettleInterval + time.Millisecond)

	if len(events) != 3 {
		return false
	}
	for _, ev := range events {
		if ev.Kind == recognizer.ChordCommitted {
			return false
		}
	}
	return events[0].Chord == chord.New(0b00001) &&
		events[1].Chord == chord.New(0b00011) &&
		events[2].Chord == chord.New(0b00001)
}

func testExplicitChordHonored() bool {
	explicit := uint8(0b11111)
	cache := charset.Build([]charset.Entry{
		{Primary: charval.Value('a'), Chord: &explicit, Priority: 9},
		{Primary: charval.Value('b'), Priority: 9},
	}, nil)

	aChord, ok := cache.ChordOf(charval.Value('a'))
	if !ok || aChord != chord.New(0b11111) {
		return false
	}
	bChord, ok := cache.ChordOf(charval.Value('b'))
	return ok && bChord == chord.New(0b00001)
}

func testPriorityOrdering() bool {
	cache := charset.Build([]charset.Entry{
		{Primary: charval.Value('x'), Priority: 1},
		{Primary: charval.Value('y'), Priority: 5},
		{Primary: charval.Value('z'), Priority: 3},
	}, nil)

	yChord, _ := cache.ChordOf(charval.Value('y'))
	zChord, _ := cache.ChordOf(charval.Value('z'))
	xChord, _ := cache.ChordOf(charval.Value('x'))
	return yChord == chord.New(0b00001) && zChord == chord.New(0b00010) && xChord == chord.New(0b00100)
}

func testDispatcherBufferFlush() bool {
	clock := newTestClock()
	adapter := wm.NewFakeAdapter(1)
	adapter.Active = 1
	adapter.ActivateEffect = func(w wm.WindowID) { adapter.Active = w }

	fc := focus.New(adapter, clock, nil)
	var emitted []string
	emitter := fakeEmitterFunc(func(keysym string) error {
		emitted = append(emitted, keysym)
		return nil
	})
	host := fakeHostFunc(func() func() { return func() {} })

	disp := dispatch.New(adapter, fc, emitter, host, 1, nil)

	buf := buffer.New()
	buf.Append(charval.Value(0x41))
	buf.Append(charval.Value(0x42))
	buf.SetModifierFlags(buffer.FlagShift | buffer.FlagControl)

	done := false
	disp.DispatchBuffer(2, buf, func(error) { done = true })

	if !done {
		return false
	}
	if len(emitted) != 2 {
		return false
	}
	if emitted[0] != "control+shift+0x41" || emitted[1] != "control+shift+0x42" {
		return false
	}
	return buf.IsEmpty()
}

type fakeEmitterFunc func(keysym string) error

func (f fakeEmitterFunc) EmitKey(keysym string) error { return f(keysym) }

type fakeHostFunc func() func()

func (f fakeHostFunc) PrepareForSending() func() { return f() }
