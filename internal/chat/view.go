// Package chat composes the chat-sale demo: it binds the reveal scheduler,
// the looping timeline window, the scroll controller and the bubble reveal
// tracker into one view that front ends render from snapshots.
package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/bubble"
	"github.com/raphaelgruber/aisite-go/internal/clock"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/reveal"
	"github.com/raphaelgruber/aisite-go/internal/scroll"
	"github.com/raphaelgruber/aisite-go/internal/timeline"
)

var (
	ErrNotRunning     = errors.New("chat view is not running")
	ErrAlreadyMounted = errors.New("chat view already mounted")
)

// Phase is the lifecycle state of a View.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseRunning       Phase = "running"
	PhaseTransitioning Phase = "transitioning"
	PhaseStopped       Phase = "stopped"
)

// Timelines resolves the flattened timeline of a group.
type Timelines interface {
	Get(key models.GroupKey) ([]models.TimelineItem, error)
}

// Config tunes a View. A zero Clock, BaseDelay or WindowCap falls back to
// the demo default. Jitter and the thresholds honor zero; only negative
// values (and a jitter of 1 or more) fall back.
type Config struct {
	Clock            clock.Clock
	Rand             func() float64
	BaseDelay        time.Duration
	Jitter           float64
	WindowCap        int
	GestureThreshold float64
	JumpThreshold    float64
	Logger           *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = reveal.DefaultBaseDelay
	}
	if c.Jitter < 0 || c.Jitter >= 1 {
		c.Jitter = reveal.DefaultJitter
	}
	if c.WindowCap <= 0 {
		c.WindowCap = timeline.DefaultWindowCap
	}
	if c.GestureThreshold < 0 {
		c.GestureThreshold = scroll.DefaultGestureThreshold
	}
	if c.JumpThreshold < 0 {
		c.JumpThreshold = scroll.DefaultJumpThreshold
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// View is the composed chat demo. All state is guarded by one mutex; timer
// callbacks re-enter through it.
type View struct {
	mu        sync.Mutex
	cfg       Config
	timelines Timelines
	logger    *slog.Logger

	phase  Phase
	group  models.GroupKey
	items  []models.TimelineItem
	window []models.WindowEntry
	newest string

	sched   *reveal.Scheduler
	scroll  *scroll.Controller
	bubbles *bubble.Tracker

	version uint64
	subs    map[int]chan Snapshot
	nextSub int
}

// NewView creates an idle view.
func NewView(timelines Timelines, cfg Config) *View {
	cfg = cfg.withDefaults()
	v := &View{
		cfg:       cfg,
		timelines: timelines,
		logger:    cfg.Logger,
		phase:     PhaseIdle,
		scroll: scroll.NewController(
			scroll.WithGestureThreshold(cfg.GestureThreshold),
			scroll.WithJumpThreshold(cfg.JumpThreshold),
		),
		subs: make(map[int]chan Snapshot),
	}

	opts := []reveal.Option{
		reveal.WithClock(cfg.Clock),
		reveal.WithDelay(cfg.BaseDelay, cfg.Jitter),
	}
	if cfg.Rand != nil {
		opts = append(opts, reveal.WithRand(cfg.Rand))
	}
	v.sched = reveal.New(func(int) { v.onAdvance() }, opts...)
	v.bubbles = bubble.NewTracker(cfg.Clock, v.onReveal)
	return v
}

// Mount starts playing the given group.
func (v *View) Mount(group models.GroupKey) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch v.phase {
	case PhaseStopped:
		return ErrNotRunning
	case PhaseRunning, PhaseTransitioning:
		return ErrAlreadyMounted
	}

	items, err := v.timelines.Get(group)
	if err != nil {
		return fmt.Errorf("mount %s: %w", group, err)
	}

	v.group = group
	v.items = items
	v.sched.Reset()
	v.scroll.Reset()
	v.phase = PhaseRunning
	v.refreshLocked()
	v.startLocked()
	v.publishLocked()

	v.logger.Debug("chat view mounted", "group", group, "timeline_len", len(items))
	return nil
}

// SelectGroup switches the demo to another group. Sequence, offset,
// auto-follow and the visible window are reset in one step; selecting the
// current group does nothing.
func (v *View) SelectGroup(group models.GroupKey) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseRunning {
		return ErrNotRunning
	}
	if group == v.group {
		return nil
	}

	items, err := v.timelines.Get(group)
	if err != nil {
		return fmt.Errorf("select %s: %w", group, err)
	}

	old := v.group
	v.phase = PhaseTransitioning
	v.sched.Stop()
	v.bubbles.Clear()

	v.group = group
	v.items = items
	v.window = nil
	v.newest = ""
	v.sched.Reset()
	v.scroll.Reset()

	v.phase = PhaseRunning
	v.refreshLocked()
	v.startLocked()
	v.publishLocked()

	v.logger.Debug("chat group selected", "from", old, "to", group)
	return nil
}

// Unmount stops every timer and closes all subscriptions. The view cannot be
// mounted again. Calling Unmount more than once is safe.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase == PhaseStopped {
		return
	}
	v.phase = PhaseStopped
	v.sched.Stop()
	v.bubbles.StopAll()
	v.version++

	for id, ch := range v.subs {
		close(ch)
		delete(v.subs, id)
	}
	v.logger.Debug("chat view unmounted", "group", v.group, "seq", v.sched.Seq())
}

// Measure reports the rendered viewport and content heights.
func (v *View) Measure(viewportHeight, contentHeight float64) error {
	return v.mutate(func() { v.scroll.Measure(viewportHeight, contentHeight) })
}

// Wheel applies a mouse wheel delta.
func (v *View) Wheel(deltaY float64) error {
	return v.mutate(func() { v.scroll.Wheel(deltaY) })
}

// Drag applies a touch or pointer drag delta.
func (v *View) Drag(deltaY float64) error {
	return v.mutate(func() { v.scroll.Drag(deltaY) })
}

// ScrollToLatest jumps to the newest entry and resumes auto-follow.
func (v *View) ScrollToLatest() error {
	return v.mutate(v.scroll.ScrollToLatest)
}

// ImageLoaded reports that the image of a chart card finished loading.
func (v *View) ImageLoaded(instanceKey string) error {
	return v.mutate(func() { v.scroll.ImageLoaded(instanceKey) })
}

func (v *View) mutate(fn func()) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseRunning {
		return ErrNotRunning
	}
	before := v.scrollState()
	fn()
	if v.scrollState() != before {
		v.publishLocked()
	}
	return nil
}

type scrollState struct {
	offset, minOffset float64
	autoFollow        bool
	pending           string
}

func (v *View) scrollState() scrollState {
	return scrollState{
		offset:     v.scroll.Offset(),
		minOffset:  v.scroll.MinOffset(),
		autoFollow: v.scroll.AutoFollow(),
		pending:    v.scroll.PendingImage(),
	}
}

// Group returns the group being played.
func (v *View) Group() models.GroupKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.group
}

// Phase returns the lifecycle phase.
func (v *View) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// startLocked arms the scheduler unless the timeline is empty, in which case
// the view stays on an empty window with no timers. Caller must hold v.mu.
func (v *View) startLocked() {
	if len(v.items) == 0 {
		v.logger.Warn("chat timeline is empty, not scheduling", "group", v.group)
		return
	}
	v.sched.Start()
}

// onAdvance runs after each scheduler step. The window is recomputed from the
// scheduler's current sequence, so a late callback from before a group switch
// only repeats work.
func (v *View) onAdvance() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseRunning {
		return
	}
	v.refreshLocked()
	v.publishLocked()
}

func (v *View) onReveal(instanceKey string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.phase != PhaseRunning {
		return
	}
	for _, e := range v.window {
		if e.InstanceKey == instanceKey {
			v.publishLocked()
			return
		}
	}
}

// refreshLocked recomputes the window, starts bubble timers for new entries,
// prunes the ones that left and lets the scroll controller react to a new
// newest entry. Caller must hold v.mu.
func (v *View) refreshLocked() {
	v.window = timeline.Window(v.items, v.sched.Seq(), v.cfg.WindowCap)

	live := make(map[string]struct{}, len(v.window))
	for _, e := range v.window {
		live[e.InstanceKey] = struct{}{}
	}
	v.bubbles.Prune(live)
	for _, e := range v.window {
		v.bubbles.Track(e.InstanceKey, e.Item.Kind)
	}

	if n := len(v.window); n > 0 {
		last := v.window[n-1]
		if last.InstanceKey != v.newest {
			v.newest = last.InstanceKey
			v.scroll.Appended(last.InstanceKey, last.Item.AwaitsImage())
		}
	}
}

// publishLocked bumps the version and hands the latest snapshot to every
// subscriber, replacing any snapshot they have not read yet.
func (v *View) publishLocked() {
	v.version++
	if len(v.subs) == 0 {
		return
	}
	snap := v.snapshotLocked()
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Entry is a window entry with its reveal state.
type Entry struct {
	models.WindowEntry
	Revealed bool `json:"revealed"`
}

// Snapshot is a consistent copy of the view state.
type Snapshot struct {
	Group            models.GroupKey `json:"group"`
	Phase            Phase           `json:"phase"`
	Sequence         int             `json:"sequence"`
	Entries          []Entry         `json:"entries"`
	Offset           float64         `json:"offset"`
	MinOffset        float64         `json:"minOffset"`
	AutoFollow       bool            `json:"autoFollow"`
	ShowJumpToLatest bool            `json:"showJumpToLatest"`
	PendingImage     string          `json:"pendingImage,omitempty"`
	Version          uint64          `json:"version"`
}

// Newest returns the newest entry, if any.
func (s Snapshot) Newest() (Entry, bool) {
	if len(s.Entries) == 0 {
		return Entry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	entries := make([]Entry, len(v.window))
	for i, e := range v.window {
		entries[i] = Entry{WindowEntry: e, Revealed: v.bubbles.Revealed(e.InstanceKey)}
	}
	offset := v.scroll.Offset()
	if offset == 0 {
		offset = math.Abs(offset) // no negative zero on the wire
	}
	return Snapshot{
		Group:            v.group,
		Phase:            v.phase,
		Sequence:         v.sched.Seq(),
		Entries:          entries,
		Offset:           offset,
		MinOffset:        v.scroll.MinOffset(),
		AutoFollow:       v.scroll.AutoFollow(),
		ShowJumpToLatest: v.scroll.ShowJumpToLatest(),
		PendingImage:     v.scroll.PendingImage(),
		Version:          v.version,
	}
}

// Subscribe returns a channel receiving the latest snapshot after each
// change, and a function that cancels the subscription. The channel is closed
// on unmount or cancel. Subscribing to a stopped view yields a closed channel.
func (v *View) Subscribe() (<-chan Snapshot, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if v.phase == PhaseStopped {
		close(ch)
		return ch, func() {}
	}

	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch
	ch <- v.snapshotLocked()

	return ch, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if c, ok := v.subs[id]; ok {
			close(c)
			delete(v.subs, id)
		}
	}
}
