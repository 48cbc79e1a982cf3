package main

import (
	"time"

	"github.com/marisvali/cutrope/world"
)

// Animation represents an instance of a running animation. Everything is
// drawn with vector shapes, so an animation is only a clock: it knows how
// far along it is and the drawing code decides what that looks like.
// It is cheap to copy this struct. Make a copy for every instance of an
// animation that you need.
type Animation struct {
	NFrames  int64
	FrameIdx int64
}

// NewAnimation returns an animation that lasts d. Animations advance once
// per simulation step, so d is rounded to a whole number of steps.
func NewAnimation(d time.Duration) Animation {
	return Animation{NFrames: max(1, int64(d/world.FixedDt))}
}

func (a *Animation) Step() {
	if a.FrameIdx < a.NFrames {
		a.FrameIdx++
	}
}

func (a *Animation) Done() bool {
	return a.FrameIdx >= a.NFrames
}

// Progress goes from 0 when the animation starts to 1 when it is done.
func (a *Animation) Progress() float64 {
	return float64(a.FrameIdx) / float64(a.NFrames)
}
