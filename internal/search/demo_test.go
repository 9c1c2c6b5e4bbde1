package search_test

import (
	"testing"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/clock"
	"github.com/raphaelgruber/aisite-go/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = search.DefaultTypeInterval

func newDemo(t *testing.T) (*search.Demo, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual()
	d := search.NewDemo(defaultCatalog(t), search.WithClock(clk))
	t.Cleanup(d.Stop)
	return d, clk
}

func TestDemo_TypesPagesInOrder(t *testing.T) {
	d, clk := newDemo(t)

	st := d.State()
	assert.Empty(t, st.Text)
	assert.True(t, st.Typing)
	assert.Equal(t, search.NounNotebook, st.Result.Noun)

	d.Start()
	require.Equal(t, 1, clk.Pending())

	tests := []struct {
		advance time.Duration
		text    string
		page    int
	}{
		{step, "N", 0},
		{2 * step, "Not", 0},
		{5 * step, "Notebook", 0},
		{search.DefaultPagePause - time.Millisecond, "Notebook", 0},
		{time.Millisecond, "Tablet", 1},
		{step, "T", 1},
		{5*step + search.DefaultPagePause, "Smartwatch", 2},
		{10*step + search.DefaultPagePause, "Notebook", 0},
	}

	for _, tt := range tests {
		clk.Advance(tt.advance)
		st := d.State()
		assert.Equal(t, tt.text, st.Text, "at %s", clk.Now())
		assert.Equal(t, tt.page, st.Page, "at %s", clk.Now())
	}
}

func TestDemo_StartTwiceKeepsOneTimer(t *testing.T) {
	d, clk := newDemo(t)
	d.Start()
	d.Start()
	assert.Equal(t, 1, clk.Pending())
}

func TestDemo_InputPausesUntilIdleWithEmptyQuery(t *testing.T) {
	d, clk := newDemo(t)
	d.Start()
	clk.Advance(3 * step)
	require.Equal(t, "Not", d.State().Text)

	d.Input("lap")
	st := d.State()
	assert.False(t, st.Typing)
	assert.True(t, st.Interacting)
	assert.Equal(t, "lap", st.Text)

	clk.Advance(10 * time.Second)
	st = d.State()
	assert.Equal(t, "lap", st.Text, "a non-empty query keeps the loop paused")
	assert.True(t, st.Interacting)
	assert.Equal(t, 0, clk.Pending())

	d.Input("")
	clk.Advance(search.DefaultIdleResume - time.Millisecond)
	assert.True(t, d.State().Interacting)

	clk.Advance(time.Millisecond)
	st = d.State()
	assert.False(t, st.Interacting)
	assert.True(t, st.Typing)
	assert.Empty(t, st.Text)

	clk.Advance(step)
	assert.Equal(t, "N", d.State().Text)
}

func TestDemo_Picks(t *testing.T) {
	tests := []struct {
		name  string
		pick  func(d *search.Demo)
		text  string
		noun  search.Noun
		brand string
	}{
		{"brand joins current category", func(d *search.Demo) { d.PickBrand("dell") }, "Notebook dell", search.NounNotebook, "Dell"},
		{"category chip", func(d *search.Demo) { d.Pick("Performance Tablet") }, "Performance Tablet", search.NounTablet, "Apple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, clk := newDemo(t)
			d.Start()
			tt.pick(d)

			st := d.State()
			assert.Equal(t, tt.text, st.Text)
			assert.Equal(t, tt.noun, st.Result.Noun)
			assert.False(t, st.Typing)
			require.Len(t, st.Result.Brands, search.MaxBrands, "brand row stays full")
			assert.Equal(t, tt.brand, st.Result.Brands[0].Brand)
			assert.Equal(t, 1, clk.Pending(), "only the idle countdown remains")
		})
	}
}

func TestDemo_UpdatesKeepLatest(t *testing.T) {
	d, clk := newDemo(t)
	d.Start()
	clk.Advance(4 * step)

	select {
	case st := <-d.Updates():
		assert.Equal(t, "Note", st.Text)
	default:
		t.Fatal("no update published")
	}

	select {
	case st := <-d.Updates():
		t.Fatalf("unexpected stale update %q", st.Text)
	default:
	}
}

func TestDemo_StopClosesUpdates(t *testing.T) {
	d, clk := newDemo(t)
	d.Start()
	d.Input("x")

	d.Stop()
	d.Stop()
	assert.Equal(t, 0, clk.Pending())

	for range d.Updates() {
	}
	_, ok := <-d.Updates()
	assert.False(t, ok)

	d.Input("y")
	assert.Equal(t, "x", d.State().Text)
}
