// Package clock abstracts cancellable delayed tasks so timer-driven
// components can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending delayed task.
type Timer interface {
	// Stop cancels the task. It reports whether the call prevented the task from running.
	Stop() bool
}

// Clock schedules delayed tasks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by time.AfterFunc.
func Real() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manual is a Clock whose time only moves when Advance is called.
// Due tasks run synchronously on the goroutine calling Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
	delays []time.Duration
}

type manualTimer struct {
	clock *Manual
	at    time.Duration
	seq   int
	f     func()
	done  bool
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, at: m.now + d, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	m.delays = append(m.delays, d)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.removeLocked(t)
	return true
}

// removeLocked drops t from the pending list. Caller must hold m.mu.
func (m *Manual) removeLocked(t *manualTimer) {
	for i, p := range m.timers {
		if p == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, running every task that becomes due
// in deadline order. Tasks scheduled by running tasks are honored if they fall
// inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		next := m.nextDueLocked(target)
		if next == nil {
			break
		}
		next.done = true
		m.removeLocked(next)
		m.now = next.at

		m.mu.Unlock()
		next.f()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// nextDueLocked returns the earliest pending task due at or before target.
func (m *Manual) nextDueLocked(target time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at == m.timers[j].at {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at < m.timers[j].at
	})
	if m.timers[0].at > target {
		return nil
	}
	return m.timers[0]
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of tasks not yet run or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Delays returns every delay passed to AfterFunc, in call order.
func (m *Manual) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.delays))
	copy(out, m.delays)
	return out
}
