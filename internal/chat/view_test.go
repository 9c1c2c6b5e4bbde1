package chat_test

import (
	"testing"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/clock"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/scenario"
	"github.com/raphaelgruber/aisite-go/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 2 * time.Second

func newView(t *testing.T) (*chat.View, *clock.Manual) {
	t.Helper()

	cat, err := scenario.Default()
	require.NoError(t, err)
	cache, err := timeline.NewCache(cat, 0)
	require.NoError(t, err)

	clk := clock.NewManual()
	v := chat.NewView(cache, chat.Config{
		Clock: clk,
		Rand:  func() float64 { return 0.5 },
	})
	t.Cleanup(v.Unmount)
	return v, clk
}

// drain returns the last snapshot waiting on ch.
func drain(t *testing.T, ch <-chan chat.Snapshot) chat.Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return s
	default:
		t.Fatal("no snapshot published")
		return chat.Snapshot{}
	}
}

func keys(s chat.Snapshot) []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.InstanceKey
	}
	return out
}

func TestMount_AdvancesOneEntryPerStep(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))

	snap := v.Snapshot()
	assert.Equal(t, chat.PhaseRunning, snap.Phase)
	assert.Equal(t, 1, snap.Sequence)
	assert.Equal(t, []string{"c1-u1#0"}, keys(snap))

	clk.Advance(3 * step)
	snap = v.Snapshot()
	assert.Equal(t, 4, snap.Sequence)
	assert.Equal(t, []string{"c1-u1#0", "s1-a#0", "s1-c#0", "s1-t#0"}, keys(snap))

	clk.Advance(step)
	assert.Equal(t, "c1-u1#1", keys(v.Snapshot())[4], "timeline loops with a new cycle")

	assert.ErrorIs(t, v.Mount(models.GroupCustomers), chat.ErrAlreadyMounted)
}

func TestMount_WindowCapped(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupExecutives))

	clk.Advance(100 * step)
	snap := v.Snapshot()
	assert.Equal(t, 101, snap.Sequence)
	assert.Len(t, snap.Entries, timeline.DefaultWindowCap)
}

func TestMount_UnknownGroup(t *testing.T) {
	v, _ := newView(t)
	err := v.Mount(models.GroupKey("pirates"))
	assert.ErrorIs(t, err, scenario.ErrUnknownGroup)
	assert.Equal(t, chat.PhaseIdle, v.Phase())
}

func TestSelectGroup_ResetsAtomically(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupExecutives))
	require.NoError(t, v.Measure(300, 900))

	clk.Advance(7 * step)
	require.NoError(t, v.Wheel(-100))
	before := v.Snapshot()
	require.False(t, before.AutoFollow)
	require.Equal(t, 8, before.Sequence)

	ch, cancel := v.Subscribe()
	defer cancel()
	drain(t, ch)

	require.NoError(t, v.SelectGroup(models.GroupConsultants))

	snap := drain(t, ch)
	assert.Equal(t, models.GroupConsultants, snap.Group)
	assert.Equal(t, chat.PhaseRunning, snap.Phase)
	assert.Equal(t, 1, snap.Sequence)
	assert.True(t, snap.AutoFollow)
	assert.Equal(t, []string{"s4-u1#0"}, keys(snap))
	assert.Empty(t, snap.PendingImage)
	assert.Equal(t, 1, clk.Pending()-countBubbleTimers(snap), "one scheduler timer after the switch")

	// The next step continues the new group from 1.
	clk.Advance(step)
	assert.Equal(t, 2, v.Snapshot().Sequence)
}

// countBubbleTimers counts entries still waiting on their reveal timer.
func countBubbleTimers(s chat.Snapshot) int {
	n := 0
	for _, e := range s.Entries {
		if !e.Revealed {
			n++
		}
	}
	return n
}

func TestSelectGroup_SameGroupIsNoop(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))
	clk.Advance(2 * step)

	require.NoError(t, v.SelectGroup(models.GroupCustomers))
	assert.Equal(t, 3, v.Snapshot().Sequence)
}

func TestSelectGroup_RequiresRunning(t *testing.T) {
	v, _ := newView(t)
	assert.ErrorIs(t, v.SelectGroup(models.GroupExecutives), chat.ErrNotRunning)
}

func TestUnmount_StopsEverything(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))
	ch, _ := v.Subscribe()

	clk.Advance(step + 100*time.Millisecond)
	seq := v.Snapshot().Sequence

	v.Unmount()
	v.Unmount()
	assert.Equal(t, 0, clk.Pending(), "no timers survive unmount")

	clk.Advance(time.Minute)
	snap := v.Snapshot()
	assert.Equal(t, seq, snap.Sequence, "no increments after unmount")
	assert.Equal(t, chat.PhaseStopped, snap.Phase)

	for range ch {
	}
	_, ok := <-ch
	assert.False(t, ok, "subscription closed on unmount")

	assert.ErrorIs(t, v.Wheel(10), chat.ErrNotRunning)
	assert.ErrorIs(t, v.Mount(models.GroupCustomers), chat.ErrNotRunning)

	late, _ := v.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestAutoFollowSnapsToNewest(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))

	require.NoError(t, v.Measure(300, 1000))
	assert.Equal(t, -700.0, v.Snapshot().Offset)

	clk.Advance(step)
	require.NoError(t, v.Measure(300, 1100))
	snap := v.Snapshot()
	assert.Equal(t, snap.MinOffset, snap.Offset)
	assert.Equal(t, -800.0, snap.Offset)
	assert.False(t, snap.ShowJumpToLatest)
}

func TestManualScrollKeepsPosition(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))
	require.NoError(t, v.Measure(300, 1000))

	require.NoError(t, v.Drag(150))
	clk.Advance(step)
	require.NoError(t, v.Measure(300, 1200))

	snap := v.Snapshot()
	assert.False(t, snap.AutoFollow)
	assert.Equal(t, -550.0, snap.Offset)
	assert.True(t, snap.ShowJumpToLatest)

	require.NoError(t, v.ScrollToLatest())
	snap = v.Snapshot()
	assert.True(t, snap.AutoFollow)
	assert.Equal(t, -900.0, snap.Offset)
}

func TestChartCardDefersSnapUntilImageLoads(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupExecutives))
	require.NoError(t, v.Measure(300, 600))

	// e1-u1, e1-u2, s1-a, s1-c: the fourth entry is a chart card.
	clk.Advance(3 * step)
	snap := v.Snapshot()
	newest, ok := snap.Newest()
	require.True(t, ok)
	require.Equal(t, models.KindCard, newest.Item.Kind)
	assert.Equal(t, "s1-c#0", snap.PendingImage)

	require.NoError(t, v.Measure(300, 1000))
	assert.Equal(t, -300.0, v.Snapshot().Offset, "no snap while the image loads")

	require.NoError(t, v.ImageLoaded("s9-c#0"))
	assert.Equal(t, -300.0, v.Snapshot().Offset)

	require.NoError(t, v.ImageLoaded("s1-c#0"))
	snap = v.Snapshot()
	assert.Empty(t, snap.PendingImage)
	assert.Equal(t, -700.0, snap.Offset)
}

func TestBubblesRevealAfterDelay(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupCustomers))

	snap := v.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.False(t, snap.Entries[0].Revealed)

	ch, cancel := v.Subscribe()
	defer cancel()
	drain(t, ch)

	clk.Advance(520 * time.Millisecond)
	snap = drain(t, ch)
	assert.True(t, snap.Entries[0].Revealed)
}

func TestSubscribeLatestWins(t *testing.T) {
	v, clk := newView(t)
	require.NoError(t, v.Mount(models.GroupExecutives))

	ch, cancel := v.Subscribe()
	clk.Advance(5 * step)

	snap := drain(t, ch)
	assert.Equal(t, v.Snapshot().Version, snap.Version)
	assert.Equal(t, 6, snap.Sequence)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

type stubTimelines map[models.GroupKey][]models.TimelineItem

func (s stubTimelines) Get(key models.GroupKey) ([]models.TimelineItem, error) {
	items, ok := s[key]
	if !ok {
		return nil, scenario.ErrUnknownGroup
	}
	return items, nil
}

func TestEmptyTimelineSchedulesNothing(t *testing.T) {
	cat, err := scenario.Default()
	require.NoError(t, err)
	execs, err := cat.Scenarios(models.GroupExecutives)
	require.NoError(t, err)

	clk := clock.NewManual()
	v := chat.NewView(stubTimelines{
		models.GroupCustomers:  nil,
		models.GroupExecutives: timeline.Build(execs, cat.ClosingRemark()),
	}, chat.Config{Clock: clk, Rand: func() float64 { return 0.5 }})
	t.Cleanup(v.Unmount)

	require.NoError(t, v.Mount(models.GroupCustomers))
	assert.Equal(t, 0, clk.Pending())

	clk.Advance(20 * time.Second)
	snap := v.Snapshot()
	assert.Equal(t, chat.PhaseRunning, snap.Phase)
	assert.Equal(t, 1, snap.Sequence)
	assert.Empty(t, snap.Entries)

	require.NoError(t, v.SelectGroup(models.GroupExecutives))
	clk.Advance(step)
	assert.Equal(t, 2, v.Snapshot().Sequence)

	require.NoError(t, v.SelectGroup(models.GroupCustomers))
	clk.Advance(20 * time.Second)
	snap = v.Snapshot()
	assert.Equal(t, 1, snap.Sequence)
	assert.Empty(t, snap.Entries)
	assert.Equal(t, 0, clk.Pending(), "switching to an empty group leaves no timers")
}

func TestConfigHonorsZeroJitterAndThreshold(t *testing.T) {
	cat, err := scenario.Default()
	require.NoError(t, err)
	cache, err := timeline.NewCache(cat, 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		cfg        chat.Config
		wantSeq    int
		wantFollow bool
	}{
		{
			name:       "zero jitter and threshold",
			cfg:        chat.Config{Jitter: 0, GestureThreshold: 0},
			wantSeq:    2,
			wantFollow: false,
		},
		{
			name:       "negative values use defaults",
			cfg:        chat.Config{Jitter: -1, GestureThreshold: -1},
			wantSeq:    1,
			wantFollow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewManual()
			cfg := tt.cfg
			cfg.Clock = clk
			cfg.Rand = func() float64 { return 0.99 }
			v := chat.NewView(cache, cfg)
			t.Cleanup(v.Unmount)

			require.NoError(t, v.Mount(models.GroupCustomers))
			require.NoError(t, v.Measure(300, 1000))
			require.NoError(t, v.Drag(1))

			clk.Advance(step)
			snap := v.Snapshot()
			assert.Equal(t, tt.wantSeq, snap.Sequence)
			assert.Equal(t, tt.wantFollow, snap.AutoFollow)
		})
	}
}
