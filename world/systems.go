package world

// collectStars marks every star the candy touches for the first time as
// collected. Collected stars are never reported again, even if the candy
// comes back.
func (w *World) collectStars(events []Event) []Event {
	for _, id := range sortedKeys(w.Stars) {
		s := w.Stars[id]
		if s.Collected {
			continue
		}
		if !CirclesOverlap(w.Candy.Pos, w.Candy.Radius, s.Pos, s.Radius) {
			continue
		}
		s.Collected = true
		w.Stars[id] = s
		events = append(events, StarCollected{Star: id, Pos: s.Pos})
	}
	return events
}

// applyBubbles lifts the candy while its center is inside an active bubble.
// The lift cancels gravity and drives the velocity towards a constant upward
// drift. Only one bubble lifts the candy at a time, the first one by id.
func (w *World) applyBubbles() {
	lifted := false
	for _, id := range sortedKeys(w.Bubbles) {
		b := w.Bubbles[id]
		inside := b.Active && Dist(w.Candy.Pos, b.Pos) < b.Radius
		b.CapturedByBody = inside && !lifted
		w.Bubbles[id] = b
		if !b.CapturedByBody {
			continue
		}
		lifted = true

		m := w.Candy.Mass()
		g := w.Params.Gravity()
		target := w.up().Mul(w.Params.BubbleRiseSpeed)
		drive := target.Sub(w.Candy.Vel).Mul(w.Params.BubbleDrive)
		w.Candy.ApplyForce(g.Mul(-m).Add(drive.Mul(m)))
	}
}

// up is the direction opposite to gravity.
func (w *World) up() Pt {
	g := w.Params.Gravity()
	if g.Norm() < epsilon {
		return Pt{Y: -1}
	}
	return g.Normalize().Mul(-1)
}

// applyWind pushes the candy along the direction of every active wind zone
// it is close enough to. The push is strongest at the zone's position and
// fades linearly to nothing at the zone's range.
func (w *World) applyWind() {
	for _, id := range sortedKeys(w.Winds) {
		z := w.Winds[id]
		if !z.Active {
			continue
		}
		d := Dist(w.Candy.Pos, z.Pos)
		if d >= z.Range {
			continue
		}
		falloff := 1 - d/z.Range
		w.Candy.ApplyForce(z.Dir.Mul(z.Strength * falloff * w.Candy.Mass()))
	}
}

// checkSpikes reports the first spike that the center of the candy touched
// on its way from prev to where it is now. Speed doesn't matter, any contact
// is fatal, including passing through a spike strip within a single step.
func (w *World) checkSpikes(prev Pt) (Event, bool) {
	path := Segment{Start: prev, End: w.Candy.Pos}
	for _, id := range sortedKeys(w.Spikes) {
		if w.Spikes[id].Bounds.IntersectsSegment(path) {
			return SpikeHit{Spike: id, Frame: w.Frame}, true
		}
	}
	return nil, false
}

func (w *World) reachedGoal() bool {
	return CirclesOverlap(w.Candy.Pos, w.Candy.Radius, w.Goal.Pos, w.Goal.Radius)
}

func (w *World) outOfBounds() bool {
	m := w.Params.BoundsMargin
	p := w.Candy.Pos
	return p.X < -m || p.X > w.Level.Width+m ||
		p.Y < -m || p.Y > w.Level.Height+m
}

// popBubble deactivates the first active bubble that contains pos.
func (w *World) popBubble(pos Pt) (BubbleId, bool) {
	for _, id := range sortedKeys(w.Bubbles) {
		b := w.Bubbles[id]
		if !b.Active || Dist(pos, b.Pos) >= b.Radius {
			continue
		}
		b.Active = false
		b.CapturedByBody = false
		w.Bubbles[id] = b
		return id, true
	}
	return "", false
}
