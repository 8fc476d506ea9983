package diag

import (
	"testing"
	"time"
)

func TestLoggerRecordsEnabledComponent(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()

	l.Warnf(ComponentCharSet, "chord collision for %q", "a")

	var entries []Entry
	for i := 0; i < 100; i++ {
		entries = l.Entries()
		if len(entries) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != LevelWarning || entries[0].Component != ComponentCharSet {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestLoggerDropsDisabledComponent(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()

	l.SetComponentEnabled(ComponentWM, false)
	l.Warnf(ComponentWM, "should be dropped")
	time.Sleep(10 * time.Millisecond)

	if len(l.Entries()) != 0 {
		t.Fatalf("expected disabled component to produce no entries")
	}
}

func TestLoggerMinLevelFilters(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()

	l.SetMinLevel(LevelError)
	l.Logf(ComponentBuffer, LevelWarning, "below threshold")
	time.Sleep(10 * time.Millisecond)

	if len(l.Entries()) != 0 {
		t.Fatalf("expected entries below min level to be filtered")
	}
}

func TestLoggerCircularBuffer(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()

	for i := 0; i < 5; i++ {
		l.Logf(ComponentControl, LevelInfo, "entry %d", i)
	}
	var entries []Entry
	for i := 0; i < 200; i++ {
		entries = l.Entries()
		if len(entries) == 5 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	l.Clear()
	if len(l.Entries()) != 0 {
		t.Fatalf("expected clear to empty the buffer")
	}
}
