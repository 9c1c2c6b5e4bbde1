// Package scroll tracks the scroll offset of the chat transcript: clamping,
// auto-follow of new entries and the deferred snap for cards that wait on an
// image.
//
// Offsets are zero or negative. Zero shows the top of the content and
// MinOffset shows its bottom. Units are whatever the renderer measures in
// (pixels in the browser, lines in the terminal).
package scroll

import "math"

// Defaults for the gesture and jump-to-latest thresholds.
const (
	DefaultGestureThreshold = 2.0
	DefaultJumpThreshold    = 6.0
)

// Controller holds the scroll state of one transcript. It is not safe for
// concurrent use; the owning view serializes access.
type Controller struct {
	gestureThreshold float64
	jumpThreshold    float64

	viewportHeight float64
	contentHeight  float64
	offset         float64
	minOffset      float64
	autoFollow     bool
	pendingImage   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithGestureThreshold sets how far a gesture must move toward older content
// before auto-follow is switched off.
func WithGestureThreshold(v float64) Option {
	return func(c *Controller) {
		if v >= 0 {
			c.gestureThreshold = v
		}
	}
}

// WithJumpThreshold sets the distance from the bottom beyond which the
// jump-to-latest affordance is shown.
func WithJumpThreshold(v float64) Option {
	return func(c *Controller) {
		if v >= 0 {
			c.jumpThreshold = v
		}
	}
}

// NewController returns a controller at offset 0 with auto-follow on.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		gestureThreshold: DefaultGestureThreshold,
		jumpThreshold:    DefaultJumpThreshold,
		autoFollow:       true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Measure records the current layout. A non-positive viewport means the
// element is not laid out yet and is ignored.
func (c *Controller) Measure(viewportHeight, contentHeight float64) {
	if viewportHeight <= 0 || math.IsNaN(viewportHeight) || math.IsNaN(contentHeight) {
		return
	}
	if contentHeight < 0 {
		contentHeight = 0
	}
	c.viewportHeight = viewportHeight
	c.contentHeight = contentHeight
	c.minOffset = math.Min(0, viewportHeight-contentHeight)
	c.offset = c.clamp(c.offset)

	if c.autoFollow && c.pendingImage == "" {
		c.offset = c.minOffset
	}
}

// Appended notes that a new entry became the newest one. Entries awaiting an
// image defer the snap until ImageLoaded is called with the same key.
func (c *Controller) Appended(instanceKey string, awaitsImage bool) {
	if awaitsImage {
		c.pendingImage = instanceKey
		return
	}
	c.pendingImage = ""
	if c.autoFollow {
		c.offset = c.minOffset
	}
}

// Wheel applies a wheel delta. Positive deltas move toward newer content.
func (c *Controller) Wheel(deltaY float64) {
	if math.IsNaN(deltaY) {
		return
	}
	c.offset = c.clamp(c.offset - deltaY)
	if deltaY < -c.gestureThreshold {
		c.autoFollow = false
	}
}

// Drag applies a drag delta. Positive deltas (dragging down) move toward
// older content.
func (c *Controller) Drag(deltaY float64) {
	if math.IsNaN(deltaY) {
		return
	}
	c.offset = c.clamp(c.offset + deltaY)
	if deltaY > c.gestureThreshold {
		c.autoFollow = false
	}
}

// ScrollToLatest re-enables auto-follow and snaps to the bottom.
func (c *Controller) ScrollToLatest() {
	c.autoFollow = true
	c.offset = c.minOffset
}

// ImageLoaded completes a deferred snap. Keys other than the pending one are
// ignored.
func (c *Controller) ImageLoaded(instanceKey string) bool {
	if instanceKey == "" || instanceKey != c.pendingImage {
		return false
	}
	c.pendingImage = ""
	c.autoFollow = true
	c.offset = c.minOffset
	return true
}

// ShowJumpToLatest reports whether the view is far enough from the bottom to
// offer a jump back.
func (c *Controller) ShowJumpToLatest() bool {
	return math.Abs(c.offset-c.minOffset) > c.jumpThreshold
}

// Reset returns to the initial state. The last measured layout is kept.
func (c *Controller) Reset() {
	c.offset = 0
	c.autoFollow = true
	c.pendingImage = ""
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 { return c.offset }

// MinOffset returns the offset that shows the bottom of the content.
func (c *Controller) MinOffset() float64 { return c.minOffset }

// AutoFollow reports whether new entries snap the view to the bottom.
func (c *Controller) AutoFollow() bool { return c.autoFollow }

// PendingImage returns the instance key whose image load the snap waits on.
func (c *Controller) PendingImage() string { return c.pendingImage }

// ViewportHeight returns the last measured viewport height.
func (c *Controller) ViewportHeight() float64 { return c.viewportHeight }

// ContentHeight returns the last measured content height.
func (c *Controller) ContentHeight() float64 { return c.contentHeight }

func (c *Controller) clamp(v float64) float64 {
	if v > 0 {
		return 0
	}
	if v < c.minOffset {
		return c.minOffset
	}
	return v
}
