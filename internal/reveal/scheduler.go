// Package reveal paces the chat-sale demo: a scheduler that advances a
// sequence number one step at a time after a jittered delay.
package reveal

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/clock"
)

const (
	DefaultBaseDelay = 2000 * time.Millisecond
	DefaultJitter    = 0.18
)

// Scheduler owns a single cancellable delayed task that increments the
// sequence number and re-arms itself after every firing.
type Scheduler struct {
	mu        sync.Mutex
	clock     clock.Clock
	baseDelay time.Duration
	jitter    float64
	rand      func() float64
	onAdvance func(seq int)

	seq     int
	timer   clock.Timer
	gen     uint64
	running bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the real clock.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithDelay sets the base delay and jitter fraction.
func WithDelay(base time.Duration, jitter float64) Option {
	return func(s *Scheduler) {
		if base > 0 {
			s.baseDelay = base
		}
		if jitter >= 0 && jitter < 1 {
			s.jitter = jitter
		}
	}
}

// WithRand sets the uniform [0,1) source used for jitter.
func WithRand(r func() float64) Option {
	return func(s *Scheduler) { s.rand = r }
}

// New creates a stopped scheduler at sequence 1. onAdvance is called with the
// new sequence number after each increment, outside the scheduler's lock.
func New(onAdvance func(seq int), opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:     clock.Real(),
		baseDelay: DefaultBaseDelay,
		jitter:    DefaultJitter,
		rand:      rand.Float64,
		onAdvance: onAdvance,
		seq:       1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextDelay draws a delay uniformly from base*(1-jitter) to base*(1+jitter).
func (s *Scheduler) NextDelay() time.Duration {
	f := 1 + (s.rand()*2-1)*s.jitter
	return time.Duration(float64(s.baseDelay) * f)
}

// Bounds returns the smallest and largest delay NextDelay can produce.
func (s *Scheduler) Bounds() (lo, hi time.Duration) {
	return time.Duration(float64(s.baseDelay) * (1 - s.jitter)),
		time.Duration(float64(s.baseDelay) * (1 + s.jitter))
}

// Start arms the scheduler. Starting a running scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.gen++
	s.armLocked()
}

// Stop cancels the pending task. It is safe to call any number of times.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Reset rewinds the sequence to 1 without changing the running state.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 1
}

// Seq returns the current sequence number.
func (s *Scheduler) Seq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Running reports whether a task is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// armLocked schedules the next firing. Caller must hold s.mu.
func (s *Scheduler) armLocked() {
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.NextDelay(), func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if !s.running || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.armLocked()
	s.mu.Unlock()

	if s.onAdvance != nil {
		s.onAdvance(seq)
	}
}
