package main

import (
	"time"

	"github.com/marisvali/cutrope/world"
)

type EffectKind int64

const (
	// FallingRope is the lower piece of a cut rope, dropping away.
	FallingRope EffectKind = iota
	// RetractingRope is the upper piece of a cut rope, shrinking back to its
	// anchor.
	RetractingRope
	Sparkle
	Pop
	Flash
)

var effectDurations = map[EffectKind]time.Duration{
	FallingRope:    600 * time.Millisecond,
	RetractingRope: 400 * time.Millisecond,
	Sparkle:        500 * time.Millisecond,
	Pop:            300 * time.Millisecond,
	Flash:          700 * time.Millisecond,
}

// TemporaryEffect represents an effect that appears in one place, runs for a
// while and then goes away. It doesn't represent an ongoing entity in the
// World, it is a standalone effect, like the pieces of a cut rope.
type TemporaryEffect struct {
	Kind      EffectKind
	Pos       world.Pt
	Piece     world.Segment
	Animation Animation
}

// VisWorld is a world parallel to World that holds "visual logic". Its role is
// to store data and execute logic for ongoing visual effects like animations.
// Draw() relies on the information in VisWorld to draw things, just like it
// relies on World.
//
// VisWorld runs parallel to World and is fed the events of every step, in
// the Update() function.
type VisWorld struct {
	Temporary []*TemporaryEffect
}

func NewVisWorld() (v VisWorld) {
	return v
}

func (v *VisWorld) add(kind EffectKind, pos world.Pt, piece world.Segment) {
	v.Temporary = append(v.Temporary, &TemporaryEffect{
		Kind:      kind,
		Pos:       pos,
		Piece:     piece,
		Animation: NewAnimation(effectDurations[kind]),
	})
}

func (v *VisWorld) Step(events []world.Event) {
	// Step existing effects.
	for _, e := range v.Temporary {
		e.Animation.Step()
	}

	// Filter out obsolete effects.
	n := 0
	for i := range v.Temporary {
		if !v.Temporary[i].Animation.Done() {
			v.Temporary[n] = v.Temporary[i]
			n++
		}
	}
	v.Temporary = v.Temporary[:n]

	// Create new effects if necessary.
	for _, e := range events {
		switch e := e.(type) {
		case world.RopeCut:
			v.add(RetractingRope, e.Cut.Point, e.Cut.Upper)
			v.add(FallingRope, e.Cut.Point, e.Cut.Lower)
		case world.StarCollected:
			v.add(Sparkle, e.Pos, world.Segment{})
		case world.BubblePopped:
			v.add(Pop, e.Pos, world.Segment{})
		case world.SpikeHit:
			v.add(Flash, world.Pt{}, world.Segment{})
		}
	}
}
