// Package bubble delays the reveal of each transcript entry: an entry shows a
// typing placeholder for a kind-specific delay before its content appears.
package bubble

import (
	"sync"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/clock"
	"github.com/raphaelgruber/aisite-go/internal/models"
)

// MinDelay is the shortest placeholder time for any non-divider entry.
const MinDelay = 120 * time.Millisecond

var kindDelays = map[models.ItemKind]time.Duration{
	models.KindUser:      520 * time.Millisecond,
	models.KindAssistant: 720 * time.Millisecond,
	models.KindCard:      650 * time.Millisecond,
	models.KindTail:      520 * time.Millisecond,
}

// Delay returns how long an entry of the given kind shows its placeholder.
// Dividers reveal immediately.
func Delay(kind models.ItemKind) time.Duration {
	if kind == models.KindDivider {
		return 0
	}
	return max(kindDelays[kind], MinDelay)
}

type entry struct {
	timer    clock.Timer
	revealed bool
}

// Tracker owns one reveal timer per visible instance key.
type Tracker struct {
	mu       sync.Mutex
	clock    clock.Clock
	onReveal func(instanceKey string)
	entries  map[string]*entry
	stopped  bool
}

// NewTracker creates a tracker. onReveal is called outside the tracker's lock
// when an entry's placeholder is replaced by its content.
func NewTracker(c clock.Clock, onReveal func(instanceKey string)) *Tracker {
	if c == nil {
		c = clock.Real()
	}
	return &Tracker{
		clock:    c,
		onReveal: onReveal,
		entries:  make(map[string]*entry),
	}
}

// Track starts the reveal timer of an entry that entered the window. Tracking
// a key twice keeps the first timer. It reports whether the entry is already
// revealed.
func (t *Tracker) Track(instanceKey string, kind models.ItemKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[instanceKey]; ok {
		return e.revealed
	}

	d := Delay(kind)
	if d == 0 || t.stopped {
		// Stopped trackers never schedule; dividers need no placeholder.
		t.entries[instanceKey] = &entry{revealed: d == 0}
		return d == 0
	}

	e := &entry{}
	e.timer = t.clock.AfterFunc(d, func() { t.fire(instanceKey, e) })
	t.entries[instanceKey] = e
	return false
}

func (t *Tracker) fire(instanceKey string, e *entry) {
	t.mu.Lock()
	if t.stopped || t.entries[instanceKey] != e || e.revealed {
		t.mu.Unlock()
		return
	}
	e.revealed = true
	e.timer = nil
	t.mu.Unlock()

	if t.onReveal != nil {
		t.onReveal(instanceKey)
	}
}

// Prune cancels the timers of entries whose keys are not in live.
func (t *Tracker) Prune(live map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, e := range t.entries {
		if _, ok := live[key]; ok {
			continue
		}
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(t.entries, key)
	}
}

// Revealed reports whether an entry shows its content.
func (t *Tracker) Revealed(instanceKey string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[instanceKey]
	return ok && e.revealed
}

// Len returns the number of tracked entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear cancels every timer and forgets all entries. The tracker stays usable.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearLocked()
}

// StopAll cancels every timer. A stopped tracker schedules nothing further.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.clearLocked()
}

func (t *Tracker) clearLocked() {
	for key, e := range t.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(t.entries, key)
	}
}
