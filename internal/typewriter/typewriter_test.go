package typewriter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		unit Unit
		want []string
	}{
		{"empty", "", UnitWord, nil},
		{"chars", "héllo", UnitChar, []string{"h", "é", "l", "l", "o"}},
		{"words keep trailing space", "Tablets showed  growth", UnitWord, []string{"Tablets ", "showed  ", "growth"}},
		{"leading space is its own token", "  hi there", UnitWord, []string{"  ", "hi ", "there"}},
		{"sentences", "Growth was steady. Was it? Yes! And more", UnitSentence,
			[]string{"Growth was steady. ", "Was it? ", "Yes! ", "And more"}},
		{"ellipsis ends a sentence", "Wait… then go.", UnitSentence, []string{"Wait… ", "then go."}},
		{"unknown unit falls back to chars", "ab", Unit("glyph"), []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.unit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, strings.Join(got, ""), "tokens rejoin to the input")
		})
	}
}

func TestMachine_Loop(t *testing.T) {
	m := New("one two three", "four five", Options{Unit: UnitWord})
	assert.Equal(t, PhaseIdle, m.Phase())
	assert.False(t, m.Step(time.Second), "idle ignores time")

	m.Start()
	require.Equal(t, PhaseScan, m.Phase())

	m.Step(750 * time.Millisecond)
	assert.InDelta(t, 0.5, m.ScanProgress(), 1e-9)

	m.Step(750 * time.Millisecond)
	require.Equal(t, PhaseType1, m.Phase())
	assert.Empty(t, m.Text(0))
	assert.True(t, m.Typing(0))

	m.Step(4 * time.Millisecond)
	assert.Equal(t, "one ", m.Text(0))

	// A long frame reveals several tokens at once.
	m.Step(8 * time.Millisecond)
	assert.Equal(t, "one two three", m.Text(0))
	require.Equal(t, PhaseType2, m.Phase())

	m.Step(100 * time.Millisecond)
	assert.Equal(t, "four five", m.Text(1))
	require.Equal(t, PhaseHold, m.Phase())
	assert.Equal(t, 0, m.Cycle())

	m.Step(200 * time.Millisecond)
	assert.Equal(t, PhaseScan, m.Phase())
	assert.Equal(t, 1, m.Cycle())
	assert.Empty(t, m.Text(0), "new cycle restarts typing")
}

func TestMachine_SubSpeedFramesAccumulate(t *testing.T) {
	m := New("abc", "d", Options{Scan: time.Millisecond})
	m.Start()
	m.Step(time.Millisecond)
	require.Equal(t, PhaseType1, m.Phase())

	m.Step(2 * time.Millisecond)
	assert.Empty(t, m.Text(0))
	m.Step(2 * time.Millisecond)
	assert.Equal(t, "a", m.Text(0))
}

func TestMachine_StartIsIdempotent(t *testing.T) {
	m := New("a", "b", Options{})
	m.Start()
	m.Step(time.Second)
	m.Start()
	assert.Equal(t, PhaseScan, m.Phase())
	assert.Equal(t, "", m.Text(5))
}
