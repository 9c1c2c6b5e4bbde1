// Package typewriter drives the OCR showcase: a scan sweep followed by two
// paragraphs typed out token by token, looping forever.
package typewriter

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Unit is the granularity text is typed in.
type Unit string

const (
	UnitChar     Unit = "char"
	UnitWord     Unit = "word"
	UnitSentence Unit = "sentence"
)

var sentenceRe = regexp.MustCompile(`[^.?!…]+[.?!…]\s*|.+$`)

// Tokenize splits text into typing units. Words keep their trailing
// whitespace and sentences keep their terminator plus trailing whitespace, so
// joining the tokens yields the input.
func Tokenize(text string, unit Unit) []string {
	if text == "" {
		return nil
	}

	switch unit {
	case UnitSentence:
		if tokens := sentenceRe.FindAllString(text, -1); len(tokens) > 0 {
			return tokens
		}
		return []string{text}
	case UnitWord:
		return words(text)
	default:
		runes := []rune(text)
		tokens := make([]string, len(runes))
		for i, r := range runes {
			tokens[i] = string(r)
		}
		return tokens
	}
}

func words(text string) []string {
	var tokens []string
	var cur strings.Builder
	inSpace := false

	for _, r := range text {
		space := unicode.IsSpace(r)
		// A word ends once the whitespace after it does.
		if !space && inSpace && cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		inSpace = space
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// Phase is a state of the OCR loop.
type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseScan  Phase = "scan"
	PhaseType1 Phase = "type1"
	PhaseType2 Phase = "type2"
	PhaseHold  Phase = "hold"
)

const (
	DefaultScan  = 1500 * time.Millisecond
	DefaultHold  = 200 * time.Millisecond
	DefaultSpeed = 4 * time.Millisecond
)

// Options tunes a Machine. Zero values use the defaults.
type Options struct {
	Unit  Unit
	Scan  time.Duration
	Hold  time.Duration
	Speed time.Duration
}

// Machine is the scan/type/hold state machine. It has no timers of its own;
// the caller feeds elapsed time through Step.
type Machine struct {
	opts       Options
	paras      [2][]string
	phase      Phase
	cycle      int
	shown      [2]int
	inPhase    time.Duration
	sinceToken time.Duration
}

// New creates an idle machine typing the two paragraphs.
func New(p1, p2 string, opts Options) *Machine {
	if opts.Unit == "" {
		opts.Unit = UnitChar
	}
	if opts.Scan <= 0 {
		opts.Scan = DefaultScan
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Speed <= 0 {
		opts.Speed = DefaultSpeed
	}
	return &Machine{
		opts:  opts,
		paras: [2][]string{Tokenize(p1, opts.Unit), Tokenize(p2, opts.Unit)},
		phase: PhaseIdle,
	}
}

// Start leaves idle and begins scanning. It does nothing once started.
func (m *Machine) Start() {
	if m.phase != PhaseIdle {
		return
	}
	m.enter(PhaseScan)
}

// Step advances the machine by elapsed time and reports whether anything
// visible changed.
func (m *Machine) Step(elapsed time.Duration) bool {
	if elapsed < 0 {
		elapsed = 0
	}

	switch m.phase {
	case PhaseScan:
		m.inPhase += elapsed
		if m.inPhase >= m.opts.Scan {
			m.enter(PhaseType1)
		}
		return true
	case PhaseType1:
		if m.typeStep(0, elapsed) {
			m.enter(PhaseType2)
		}
		return true
	case PhaseType2:
		if m.typeStep(1, elapsed) {
			m.enter(PhaseHold)
		}
		return true
	case PhaseHold:
		m.inPhase += elapsed
		if m.inPhase >= m.opts.Hold {
			m.cycle++
			m.shown = [2]int{}
			m.enter(PhaseScan)
			return true
		}
	}
	return false
}

// typeStep reveals at least one token per elapsed Speed interval and reports
// whether paragraph i is complete.
func (m *Machine) typeStep(i int, elapsed time.Duration) bool {
	total := len(m.paras[i])
	m.sinceToken += elapsed
	if m.sinceToken >= m.opts.Speed {
		inc := max(1, int(m.sinceToken/m.opts.Speed))
		m.shown[i] = min(total, m.shown[i]+inc)
		m.sinceToken = 0
	}
	return m.shown[i] >= total
}

func (m *Machine) enter(p Phase) {
	m.phase = p
	m.inPhase = 0
	m.sinceToken = 0
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Cycle counts completed loops.
func (m *Machine) Cycle() int { return m.cycle }

// ScanProgress returns the scan sweep position in [0, 1].
func (m *Machine) ScanProgress() float64 {
	switch m.phase {
	case PhaseScan:
		return min(1, float64(m.inPhase)/float64(m.opts.Scan))
	case PhaseIdle:
		return 0
	}
	return 1
}

// Text returns the typed portion of paragraph i (0 or 1).
func (m *Machine) Text(i int) string {
	if i < 0 || i > 1 {
		return ""
	}
	return strings.Join(m.paras[i][:m.shown[i]], "")
}

// Typing reports whether paragraph i is being typed, for cursor display.
func (m *Machine) Typing(i int) bool {
	return (i == 0 && m.phase == PhaseType1) || (i == 1 && m.phase == PhaseType2)
}
