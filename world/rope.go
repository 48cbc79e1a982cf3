package world

// Rope is a distance constraint between a fixed anchor point and the candy.
// It only pulls: when the candy is closer to the anchor than RestLength the
// rope is slack and does nothing.
type Rope struct {
	Id         RopeId
	Anchor     AnchorId
	AnchorPos  Pt
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// Segment returns the current line of the rope, from the anchor to the
// candy.
func (r *Rope) Segment(b *Body) Segment {
	return Segment{Start: r.AnchorPos, End: b.Pos}
}

// stretch returns the unit vector from the anchor to the body and how much
// longer than RestLength the rope currently is. ok is false if the rope is
// degenerate and must be skipped.
func (r *Rope) stretch(b *Body) (n Pt, excess float64, ok bool) {
	if r.RestLength <= epsilon {
		return Pt{}, 0, false
	}
	d := b.Pos.Sub(r.AnchorPos)
	dist := d.Norm()
	if dist <= epsilon {
		return Pt{}, 0, false
	}
	return d.Mul(1 / dist), dist - r.RestLength, true
}

// solvePosition moves the body back towards RestLength along the rope.
func (r *Rope) solvePosition(b *Body) {
	n, excess, ok := r.stretch(b)
	if !ok || excess <= 0 {
		return
	}
	b.Pos = b.Pos.Sub(n.Mul(excess * r.Stiffness))
}

// tautSlack is how much shorter than RestLength a rope can be and still be
// considered taut by the velocity pass. Position projection never brings the
// rope exactly to RestLength, so an exact comparison would miss ropes that
// are holding the body.
const tautSlack = 1e-3

// solveVelocity removes the part of the body's velocity that would stretch
// the rope and damps the motion along the rope.
func (r *Rope) solveVelocity(b *Body) {
	n, excess, ok := r.stretch(b)
	if !ok || excess < -tautSlack {
		return
	}
	if vn := b.Vel.Dot(n); vn > 0 {
		b.Vel = b.Vel.Sub(n.Mul(vn * r.Stiffness))
	}
	b.Vel = b.Vel.Sub(n.Mul(b.Vel.Dot(n) * r.Damping))
}
