// Package condition implements the one-shot, self-scheduling condition
// checker (§4.3): poll a predicate until it succeeds or a deadline
// elapses, firing exactly one of two callbacks.
package condition

import (
	"sync"
	"time"
)

const minIntervalMs = 10

// Clock abstracts the timer facility the checker reschedules itself on.
// The production Clock is backed by time.AfterFunc; tests substitute a
// fake clock to drive firings deterministically without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (realClock) Now() time.Time                            { return time.Now() }

// RealClock is the production Clock backed by the standard library timer
// facility.
var RealClock Clock = realClock{}

// Checker is a one-shot, self-scheduling poller.
type Checker struct {
	clock Clock

	mu           sync.Mutex
	checking     bool
	predicate    func() bool
	onSuccess    func()
	onTimeout    func()
	deadline     time.Time
	hasDeadline  bool
	nextInterval time.Duration
	initialMs    int
	multiplier   float64
	timer        Timer
	armSeq       uint64
}

// New returns an idle Checker using the given Clock. Pass nil to use
// RealClock.
func New(clock Clock) *Checker {
	if clock == nil {
		clock = RealClock
	}
	return &Checker{clock: clock, initialMs: 100, multiplier: 1}
}

// SetInterval configures the initial poll interval (clamped to >= 10ms)
// and backoff multiplier (non-positive falls back to 1). Takes effect on
// the next Start.
func (c *Checker) SetInterval(intervalMs int, multiplier float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if intervalMs < minIntervalMs {
		intervalMs = minIntervalMs
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	c.initialMs = intervalMs
	c.multiplier = multiplier
}

// IsChecking reports whether a check is in flight.
func (c *Checker) IsChecking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checking
}

// Start begins polling predicate. Returns false without doing anything if
// a check is already in flight. timeoutMs <= 0 means no timeout.
func (c *Checker) Start(predicate func() bool, onSuccess func(), timeoutMs int, onTimeout func()) bool {
	c.mu.Lock()
	if c.checking {
		c.mu.Unlock()
		return false
	}
	c.checking = true
	c.predicate = predicate
	c.onSuccess = onSuccess
	c.onTimeout = onTimeout
	c.nextInterval = time.Duration(c.initialMs) * time.Millisecond
	if timeoutMs > 0 {
		c.hasDeadline = true
		c.deadline = c.clock.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	} else {
		c.hasDeadline = false
	}
	c.mu.Unlock()

	if predicate() {
		c.finish(true)
		return true
	}

	c.arm()
	return true
}

// arm schedules the next timer firing, clamped so it cannot overshoot the
// deadline. Caller must not hold c.mu.
func (c *Checker) arm() {
	c.mu.Lock()
	if !c.checking {
		c.mu.Unlock()
		return
	}
	interval := c.nextInterval
	if c.hasDeadline {
		remaining := c.deadline.Sub(c.clock.Now())
		if remaining < 0 {
			remaining = 0
		}
		if interval > remaining {
			interval = remaining
		}
	}
	c.armSeq++
	seq := c.armSeq
	c.mu.Unlock()

	// c.mu is not held across AfterFunc: a Clock may run fire before
	// returning, and fire takes c.mu itself.
	t := c.clock.AfterFunc(interval, c.fire)

	c.mu.Lock()
	if c.checking && c.armSeq == seq {
		c.timer = t
	} else {
		t.Stop()
	}
	c.mu.Unlock()
}

func (c *Checker) fire() {
	c.mu.Lock()
	if !c.checking {
		c.mu.Unlock()
		return
	}
	predicate := c.predicate
	hasDeadline := c.hasDeadline
	deadline := c.deadline
	c.mu.Unlock()

	if predicate() {
		c.finish(true)
		return
	}

	if hasDeadline && !c.clock.Now().Before(deadline) {
		c.finish(false)
		return
	}

	c.mu.Lock()
	next := time.Duration(float64(c.nextInterval) * c.multiplier)
	if next < time.Duration(minIntervalMs)*time.Millisecond {
		next = time.Duration(minIntervalMs) * time.Millisecond
	}
	c.nextInterval = next
	c.mu.Unlock()

	c.arm()
}

// finish runs the terminal callback and clears checking state. success
// selects onSuccess vs onTimeout (the latter only if non-nil).
func (c *Checker) finish(success bool) {
	c.mu.Lock()
	if !c.checking {
		c.mu.Unlock()
		return
	}
	c.checking = false
	onSuccess := c.onSuccess
	onTimeout := c.onTimeout
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.onSuccess, c.onTimeout, c.predicate = nil, nil, nil
	c.mu.Unlock()

	if success {
		if onSuccess != nil {
			onSuccess()
		}
	} else if onTimeout != nil {
		onTimeout()
	}
}

// Cancel clears any in-flight check. If idle, it is a no-op. When
// runFinalTest is true, the predicate is evaluated once more: a true
// result runs onSuccess instead of the requested outcome. Otherwise, if
// runTimeout is true, onTimeout runs.
func (c *Checker) Cancel(runTimeout, runFinalTest bool) {
	c.mu.Lock()
	if !c.checking {
		c.mu.Unlock()
		return
	}
	predicate := c.predicate
	onSuccess := c.onSuccess
	onTimeout := c.onTimeout
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.checking = false
	c.predicate, c.onSuccess, c.onTimeout = nil, nil, nil
	c.mu.Unlock()

	if runFinalTest && predicate != nil && predicate() {
		if onSuccess != nil {
			onSuccess()
		}
		return
	}
	if runTimeout && onTimeout != nil {
		onTimeout()
	}
}
