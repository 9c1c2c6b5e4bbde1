package scroll

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure_IgnoresUnmountedViewport(t *testing.T) {
	c := NewController()
	c.Measure(0, 500)
	c.Measure(-10, 500)
	assert.Equal(t, 0.0, c.MinOffset())
	assert.Equal(t, 0.0, c.Offset())
}

func TestMeasure_SnapsWhileFollowing(t *testing.T) {
	c := NewController()
	c.Measure(300, 1000)
	assert.Equal(t, -700.0, c.MinOffset())
	assert.Equal(t, -700.0, c.Offset())

	// Content shorter than the viewport never scrolls.
	c.Measure(300, 100)
	assert.Equal(t, 0.0, c.MinOffset())
	assert.Equal(t, 0.0, c.Offset())
}

func TestOffsetAlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	c := NewController()

	for i := 0; i < 5000; i++ {
		switch rng.IntN(6) {
		case 0:
			c.Measure(rng.Float64()*800-100, rng.Float64()*3000)
		case 1:
			c.Wheel(rng.Float64()*400 - 200)
		case 2:
			c.Drag(rng.Float64()*400 - 200)
		case 3:
			c.Appended("k", rng.IntN(2) == 0)
		case 4:
			c.ImageLoaded("k")
		case 5:
			c.ScrollToLatest()
		}
		require.LessOrEqual(t, c.Offset(), 0.0, "step %d", i)
		require.GreaterOrEqual(t, c.Offset(), c.MinOffset(), "step %d", i)
		require.LessOrEqual(t, c.MinOffset(), 0.0, "step %d", i)
	}
}

func TestGesturesDisableAutoFollow(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(c *Controller)
		wantFollow bool
		wantOffset float64
	}{
		{"wheel toward older past threshold", func(c *Controller) { c.Wheel(-50) }, false, -450},
		{"wheel toward older within threshold", func(c *Controller) { c.Wheel(-2) }, true, -498},
		{"wheel toward newer", func(c *Controller) { c.Wheel(50) }, true, -500},
		{"drag toward older past threshold", func(c *Controller) { c.Drag(30) }, false, -470},
		{"drag toward newer", func(c *Controller) { c.Drag(-30) }, true, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.Measure(500, 1000)
			tt.apply(c)
			assert.Equal(t, tt.wantFollow, c.AutoFollow())
			assert.Equal(t, tt.wantOffset, c.Offset())
		})
	}
}

func TestAppended_FollowsOnlyWhenEnabled(t *testing.T) {
	c := NewController()
	c.Measure(500, 1000)
	c.Wheel(-200)
	require.False(t, c.AutoFollow())

	c.Measure(500, 1200)
	c.Appended("s1-a#0", false)
	assert.Equal(t, -300.0, c.Offset(), "manual position kept")
	assert.True(t, c.ShowJumpToLatest())

	c.ScrollToLatest()
	assert.True(t, c.AutoFollow())
	assert.Equal(t, -700.0, c.Offset())
	assert.False(t, c.ShowJumpToLatest())

	c.Measure(500, 1400)
	c.Appended("s1-t#0", false)
	assert.Equal(t, -900.0, c.Offset())
}

func TestImageDeferral(t *testing.T) {
	c := NewController()
	c.Measure(500, 1000)

	c.Appended("s1-c#0", true)
	assert.Equal(t, "s1-c#0", c.PendingImage())

	// Content grows while the image is still loading: no snap.
	c.Measure(500, 1300)
	assert.Equal(t, -500.0, c.Offset())

	assert.False(t, c.ImageLoaded("s2-c#0"), "superseded key is ignored")
	assert.Equal(t, -500.0, c.Offset())

	assert.True(t, c.ImageLoaded("s1-c#0"))
	assert.Empty(t, c.PendingImage())
	assert.Equal(t, -800.0, c.Offset())
	assert.False(t, c.ImageLoaded("s1-c#0"), "second load is a no-op")
}

func TestImageLoadedReenablesFollow(t *testing.T) {
	c := NewController()
	c.Measure(500, 1000)
	c.Appended("s1-c#0", true)
	c.Wheel(-100)
	require.False(t, c.AutoFollow())

	c.ImageLoaded("s1-c#0")
	assert.True(t, c.AutoFollow())
	assert.Equal(t, c.MinOffset(), c.Offset())
}

func TestReset(t *testing.T) {
	c := NewController()
	c.Measure(500, 1000)
	c.Appended("s1-c#0", true)
	c.Wheel(-100)

	c.Reset()
	assert.Equal(t, 0.0, c.Offset())
	assert.True(t, c.AutoFollow())
	assert.Empty(t, c.PendingImage())
	assert.Equal(t, -500.0, c.MinOffset(), "layout survives reset")
}

func TestSmootherConverges(t *testing.T) {
	s := NewSmoother(60)
	target := -120.0

	frames := 0
	for !s.Settled(target) && frames < 120 {
		s.Step(target)
		frames++
	}
	assert.True(t, s.Settled(target))
	assert.Less(t, frames, 60, "spring settles within a second")
	assert.Equal(t, target, s.Position())

	s.Jump(10)
	assert.True(t, s.Settled(10))
}
