package search

import (
	"strings"
	"sync"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/clock"
)

// Demo timing defaults.
const (
	DefaultTypeInterval = 100 * time.Millisecond
	DefaultPagePause    = 1200 * time.Millisecond
	DefaultIdleResume   = 5 * time.Second
)

// State is one frame of the search demo.
type State struct {
	Page        int    `json:"page"`
	Text        string `json:"text"`
	Typing      bool   `json:"typing"`
	Interacting bool   `json:"interacting"`
	Result      Result `json:"result"`
}

// DemoOption configures a Demo.
type DemoOption func(*Demo)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) DemoOption {
	return func(d *Demo) { d.clock = c }
}

// WithTiming sets the per-character delay, the pause on a finished query and
// the idle time before the demo resumes. Non-positive values keep the default.
func WithTiming(typeEvery, pause, idle time.Duration) DemoOption {
	return func(d *Demo) {
		if typeEvery > 0 {
			d.typeEvery = typeEvery
		}
		if pause > 0 {
			d.pause = pause
		}
		if idle > 0 {
			d.idle = idle
		}
	}
}

// Demo types each page query one character at a time, holds it, then moves
// to the next page, looping. Any user input pauses the loop; it resumes once
// the query has been empty for the idle time.
type Demo struct {
	mu      sync.Mutex
	catalog *Catalog
	clock   clock.Clock

	typeEvery time.Duration
	pause     time.Duration
	idle      time.Duration

	page        int
	typed       int
	text        string
	running     bool
	interacting bool
	stopped     bool
	result      Result
	brands      []BrandOption

	loop     clock.Timer
	loopGen  uint64
	idleTime clock.Timer
	idleGen  uint64

	updates chan State
}

// NewDemo returns a demo on the first page with an empty query. Call Start to
// begin typing.
func NewDemo(c *Catalog, opts ...DemoOption) *Demo {
	d := &Demo{
		catalog:   c,
		clock:     clock.Real(),
		typeEvery: DefaultTypeInterval,
		pause:     DefaultPagePause,
		idle:      DefaultIdleResume,
		running:   true,
		updates:   make(chan State, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.setTextLocked("")
	return d
}

// Start arms the typing loop. It does nothing while the user is interacting,
// after Stop, or when the loop already runs.
func (d *Demo) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.startLocked()
}

func (d *Demo) startLocked() {
	if d.stopped || !d.running || d.loop != nil {
		return
	}
	d.typed = 0
	d.armLoopLocked(d.typeEvery, d.typeLocked)
}

// Stop cancels every timer and closes Updates. It is safe to call more than
// once.
func (d *Demo) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.cancelLoopLocked()
	d.cancelIdleLocked()
	close(d.updates)
}

// Input replaces the query as if the visitor typed it. A non-empty query
// pauses the loop.
func (d *Demo) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.setTextLocked(text)
	if text != "" {
		d.takeOverLocked()
	}
	if d.interacting {
		d.armIdleLocked()
	}
	d.publishLocked()
}

// Pick applies a category or spec chip.
func (d *Demo) Pick(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pickLocked(query)
}

// PickBrand applies a brand chip: the brand keyword is appended to the
// current category name.
func (d *Demo) PickBrand(keyword string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := keyword
	if d.result.Noun.IsBase() {
		next = string(d.result.Noun) + " " + keyword
	}
	d.pickLocked(strings.TrimSpace(next))
}

func (d *Demo) pickLocked(query string) {
	if d.stopped {
		return
	}
	d.setTextLocked(query)
	d.takeOverLocked()
	d.armIdleLocked()
	d.publishLocked()
}

// State returns the current frame.
func (d *Demo) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Updates delivers frames after each change. Only the latest unread frame is
// kept. The channel is closed by Stop.
func (d *Demo) Updates() <-chan State {
	return d.updates
}

func (d *Demo) takeOverLocked() {
	d.running = false
	d.interacting = true
	d.cancelLoopLocked()
}

func (d *Demo) setTextLocked(text string) {
	d.text = text
	d.result = d.catalog.Search(text)
	d.brands = HoldBrands(d.brands, d.result.Brands)
}

func (d *Demo) stateLocked() State {
	res := d.result
	res.Brands = append([]BrandOption(nil), d.brands...)
	return State{
		Page:        d.page,
		Text:        d.text,
		Typing:      d.running,
		Interacting: d.interacting,
		Result:      res,
	}
}

func (d *Demo) publishLocked() {
	if d.stopped {
		return
	}
	select {
	case <-d.updates:
	default:
	}
	d.updates <- d.stateLocked()
}

// typeLocked reveals one more character of the current page query.
func (d *Demo) typeLocked() {
	target := []rune(string(d.catalog.Pages()[d.page]))
	d.typed = min(d.typed+1, len(target))
	d.setTextLocked(string(target[:d.typed]))
	if d.typed >= len(target) {
		d.armLoopLocked(d.pause, d.turnPageLocked)
		return
	}
	d.armLoopLocked(d.typeEvery, d.typeLocked)
}

// turnPageLocked shows the next page query in full, then retypes it.
func (d *Demo) turnPageLocked() {
	pages := d.catalog.Pages()
	d.page = (d.page + 1) % len(pages)
	d.typed = 0
	d.setTextLocked(string(pages[d.page]))
	d.armLoopLocked(d.typeEvery, d.typeLocked)
}

func (d *Demo) armLoopLocked(delay time.Duration, step func()) {
	d.cancelLoopLocked()
	gen := d.loopGen
	d.loop = d.clock.AfterFunc(delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped || gen != d.loopGen {
			return
		}
		d.loop = nil
		step()
		d.publishLocked()
	})
}

func (d *Demo) cancelLoopLocked() {
	d.loopGen++
	if d.loop != nil {
		d.loop.Stop()
		d.loop = nil
	}
}

// armIdleLocked restarts the idle countdown. When it runs out with an empty
// query the loop resumes on the current page.
func (d *Demo) armIdleLocked() {
	d.cancelIdleLocked()
	gen := d.idleGen
	d.idleTime = d.clock.AfterFunc(d.idle, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.stopped || gen != d.idleGen {
			return
		}
		d.idleTime = nil
		if d.text != "" {
			return
		}
		d.interacting = false
		d.running = true
		d.startLocked()
		d.publishLocked()
	})
}

func (d *Demo) cancelIdleLocked() {
	d.idleGen++
	if d.idleTime != nil {
		d.idleTime.Stop()
		d.idleTime = nil
	}
}
