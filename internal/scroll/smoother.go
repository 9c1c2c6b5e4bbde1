package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Smoother eases a rendered offset toward a target offset with a critically
// damped spring. It only affects presentation.
type Smoother struct {
	spring   harmonica.Spring
	pos      float64
	vel      float64
	settleAt float64
}

// NewSmoother creates a smoother stepped fps times per second.
func NewSmoother(fps int) *Smoother {
	if fps <= 0 {
		fps = 60
	}
	return &Smoother{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 20.0, 1.0),
		settleAt: 0.5,
	}
}

// Step advances one frame toward target and returns the new position.
func (s *Smoother) Step(target float64) float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if math.Abs(s.pos-target) < s.settleAt && math.Abs(s.vel) < s.settleAt {
		s.pos, s.vel = target, 0
	}
	return s.pos
}

// Settled reports whether the position rests on target.
func (s *Smoother) Settled(target float64) bool {
	return s.pos == target && s.vel == 0
}

// Jump places the position on target without animating.
func (s *Smoother) Jump(target float64) {
	s.pos, s.vel = target, 0
}

// Position returns the current rendered offset.
func (s *Smoother) Position() float64 { return s.pos }
